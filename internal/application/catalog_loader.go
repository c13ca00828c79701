package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/petflu/service-storefront/internal/catalogsource"
	"github.com/petflu/service-storefront/internal/domain/catalog"
	"github.com/petflu/service-storefront/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// productsDocument is the top-level shape of products.json.
type productsDocument struct {
	Categories []catalog.Category `json:"categories"`
}

// CatalogLoader fetches the product and service datasets and builds the catalog.
type CatalogLoader struct {
	source  catalogsource.Source
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCatalogLoader creates a new CatalogLoader.
func NewCatalogLoader(source catalogsource.Source, m *metrics.Metrics, logger *zap.Logger) *CatalogLoader {
	return &CatalogLoader{
		source:  source,
		metrics: m,
		logger:  logger,
	}
}

// Load fetches both datasets concurrently. Either failing fails the whole load.
func (l *CatalogLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()

	var (
		categories []catalog.Category
		services   []catalog.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := l.source.Fetch(gctx, catalogsource.ProductsFile)
		if err != nil {
			return err
		}
		var doc productsDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", catalogsource.ProductsFile, err)
		}
		if doc.Categories == nil {
			return fmt.Errorf("%s: missing categories", catalogsource.ProductsFile)
		}
		categories = doc.Categories
		return nil
	})
	g.Go(func() error {
		raw, err := l.source.Fetch(gctx, catalogsource.ServicesFile)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &services); err != nil {
			return fmt.Errorf("failed to parse %s: %w", catalogsource.ServicesFile, err)
		}
		if services == nil {
			return errors.New(catalogsource.ServicesFile + ": expected a list of services")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.metrics.CatalogLoadFailures.Inc()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c := catalog.New(categories, services)
	if err := c.Validate(); err != nil {
		l.metrics.CatalogLoadFailures.Inc()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	elapsed := time.Since(start)
	l.metrics.CatalogLoadDuration.Observe(elapsed.Seconds())
	l.logger.Info("catalog loaded",
		zap.Int("categories", len(categories)),
		zap.Int("services", len(services)),
		zap.Duration("elapsed", elapsed),
	)
	return c, nil
}
