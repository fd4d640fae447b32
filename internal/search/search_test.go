package search

import (
	"context"
	"errors"
	"testing"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string) ([]catalog.Property, error) {
	return nil, errors.New("connection refused")
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestFallbackUsesLocalSearch(t *testing.T) {
	c := testCatalog(t)
	s := Fallback{Primary: failingSearcher{}, Secondary: Local{Catalog: c}, Logger: zap.NewNop()}

	results, err := s.Search(context.Background(), "Étoile")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "limpertsberg-house", results[0].ID)
}

func TestDocuments(t *testing.T) {
	c := testCatalog(t)
	docs := Documents(c)
	require.Len(t, docs, len(c.Properties))

	byID := map[string]Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}
	assert.Contains(t, byID["limpertsberg-house"].Folded, "etoile")
	assert.Equal(t, 8, byID["dom-house"].Available)
}

func TestResolveSkipsUnknownHits(t *testing.T) {
	m := &Meilisearch{catalog: testCatalog(t)}
	hits := []interface{}{
		map[string]interface{}{"id": "dom-house"},
		map[string]interface{}{"id": "demolished"},
		"garbage",
	}

	results := m.resolve(hits)
	require.Len(t, results, 1)
	assert.Equal(t, "dom-house", results[0].ID)
}

func TestMeilisearchEmptyQueryListsCatalog(t *testing.T) {
	c := testCatalog(t)
	m := NewMeilisearch("http://127.0.0.1:0", "", c)

	results, err := m.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, results, len(c.Properties))
}
