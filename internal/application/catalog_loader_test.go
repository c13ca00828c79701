package application

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/petflu/service-storefront/internal/catalogsource"
	"github.com/petflu/service-storefront/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	productsJSON = `{"categories":[
		{"name":"Alimentação","items":[
			{"id":"racao-premium","name":"Ração Premium 10kg","price":189.9,"desc":"Sabor frango","img":"img/racao.jpg"}]},
		{"name":"Acessórios","items":[
			{"id":"coleira","name":"Coleira Ajustável","price":39.9,"desc":"Nylon","img":""}]}]}`

	servicesJSON = `[
		{"id":"banho","name":"Banho","base_price":50},
		{"id":"tosa","name":"Tosa","base_price":60},
		{"id":"banho-tosa","name":"Banho & Tosa","base_price":99.9},
		{"id":"tele-busca","name":"Tele-busca","base_price":20}]`
)

type erroringSource struct{ err error }

func (s erroringSource) Fetch(context.Context, string) ([]byte, error) { return nil, s.err }

func newLoader(src catalogsource.Source) (*CatalogLoader, *metrics.Metrics) {
	m := metrics.New("test", prometheus.NewRegistry())
	return NewCatalogLoader(src, m, zap.NewNop()), m
}

func TestCatalogLoader_Load(t *testing.T) {
	src := catalogsource.NewFSSource(fstest.MapFS{
		catalogsource.ProductsFile: {Data: []byte(productsJSON)},
		catalogsource.ServicesFile: {Data: []byte(servicesJSON)},
	})
	loader, m := newLoader(src)

	cat, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, cat.Categories(), 2)
	assert.Equal(t, "Alimentação", cat.Categories()[0].Name)
	require.Len(t, cat.Services(), 4)

	it, err := cat.FindItem("coleira")
	require.NoError(t, err)
	assert.True(t, it.Price.Equal(decimal.RequireFromString("39.90")))

	price, err := cat.ServicePrice("banho-tosa")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("99.9")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CatalogLoadFailures))
}

func TestCatalogLoader_FailsWhenEitherDatasetFails(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"missing services": {
			catalogsource.ProductsFile: {Data: []byte(productsJSON)},
		},
		"malformed products": {
			catalogsource.ProductsFile: {Data: []byte(`{"categories":`)},
			catalogsource.ServicesFile: {Data: []byte(servicesJSON)},
		},
		"products without categories": {
			catalogsource.ProductsFile: {Data: []byte(`{}`)},
			catalogsource.ServicesFile: {Data: []byte(servicesJSON)},
		},
		"services not a list": {
			catalogsource.ProductsFile: {Data: []byte(productsJSON)},
			catalogsource.ServicesFile: {Data: []byte(`{"banho":50}`)},
		},
		"duplicate item id across categories": {
			catalogsource.ProductsFile: {Data: []byte(`{"categories":[
				{"name":"Higiene","items":[{"id":"shampoo","name":"Shampoo","price":24.9}]},
				{"name":"Promoções","items":[{"id":"shampoo","name":"Shampoo em oferta","price":19.9}]}]}`)},
			catalogsource.ServicesFile: {Data: []byte(servicesJSON)},
		},
		"missing tele-busca": {
			catalogsource.ProductsFile: {Data: []byte(productsJSON)},
			catalogsource.ServicesFile: {Data: []byte(`[{"id":"banho","base_price":50},{"id":"tosa","base_price":60},{"id":"banho-tosa","base_price":95}]`)},
		},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			loader, m := newLoader(catalogsource.NewFSSource(files))

			cat, err := loader.Load(context.Background())
			assert.Error(t, err)
			assert.Nil(t, cat)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLoadFailures))
		})
	}
}

func TestCatalogLoader_SourceError(t *testing.T) {
	loader, _ := newLoader(erroringSource{err: errors.New("connection refused")})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
