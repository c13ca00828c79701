package catalogsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/services.json":
			_, _ = w.Write([]byte(`[{"id":"banho"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/data", srv.Client())
	require.NoError(t, err)

	body, err := src.Fetch(context.Background(), ServicesFile)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"banho"}]`, string(body))

	_, err = src.Fetch(context.Background(), ProductsFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFSSource_Fetch(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		ProductsFile: {Data: []byte(`{"categories":[]}`)},
	})

	body, err := src.Fetch(context.Background(), ProductsFile)
	require.NoError(t, err)
	assert.Equal(t, `{"categories":[]}`, string(body))

	_, err = src.Fetch(context.Background(), ServicesFile)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx, ProductsFile)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	src, err := New("https://cdn.example.com/petflu", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	src, err = New(t.TempDir(), time.Second)
	require.NoError(t, err)
	assert.IsType(t, &FSSource{}, src)

	_, err = New("/definitely/not/here", time.Second)
	assert.Error(t, err)
}
