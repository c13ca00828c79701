package catalogsource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Dataset file names, relative to the source location.
const (
	ProductsFile = "products.json"
	ServicesFile = "services.json"
)

// maxDatasetBytes bounds a single dataset download.
const maxDatasetBytes = 4 << 20

// Source retrieves a named static dataset.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// New returns an HTTPSource for http(s) locations and an FSSource for directories.
func New(location string, timeout time.Duration) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, &http.Client{Timeout: timeout})
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("catalog source %q: %w", location, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog source %q is not a directory", location)
	}
	return NewFSSource(os.DirFS(location)), nil
}

// HTTPSource fetches datasets from a static file server or CDN.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates an HTTPSource rooted at baseURL.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Fetch downloads base/name and fails on any non-200 response.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := s.base.ResolveReference(&url.URL{Path: name})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return body, nil
}

// FSSource reads datasets from a file system, typically a local directory.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates an FSSource over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// FS returns the underlying file system so it can also be served over HTTP.
func (s *FSSource) FS() fs.FS { return s.fsys }

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
