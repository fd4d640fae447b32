// Package search answers free-text catalog queries.
package search

import (
	"context"

	"github.com/livinglux/coliving-site/internal/catalog"
	"go.uber.org/zap"
)

// Searcher finds properties matching a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]catalog.Property, error)
}

// Local searches the in-memory catalog.
type Local struct {
	Catalog *catalog.Catalog
}

func (l Local) Search(_ context.Context, query string) ([]catalog.Property, error) {
	return l.Catalog.Search(query), nil
}

// Fallback queries Primary and answers from Secondary when it fails.
type Fallback struct {
	Primary   Searcher
	Secondary Searcher
	Logger    *zap.Logger
}

func (f Fallback) Search(ctx context.Context, query string) ([]catalog.Property, error) {
	results, err := f.Primary.Search(ctx, query)
	if err == nil {
		return results, nil
	}
	f.Logger.Warn("search backend failed, using local catalog search", zap.Error(err))
	return f.Secondary.Search(ctx, query)
}
