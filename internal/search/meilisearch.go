package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/meilisearch/meilisearch-go"
)

const indexUID = "properties"

// Document is the indexed form of a property.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Highlights  []string `json:"highlights"`
	// Folded carries the accent-free text so "etoile" finds "Étoile".
	Folded    string `json:"folded"`
	Available int    `json:"available"`
}

// Documents builds the index documents for every property in c.
func Documents(c *catalog.Catalog) []Document {
	docs := make([]Document, 0, len(c.Properties))
	for _, p := range c.Properties {
		highlights := make([]string, 0, len(p.LocationHighlights))
		for _, h := range p.LocationHighlights {
			highlights = append(highlights, h.Text)
		}
		docs = append(docs, Document{
			ID:          p.ID,
			Title:       p.Title,
			Location:    p.Location,
			Address:     p.Address,
			Type:        string(p.Type),
			Tags:        p.Tags,
			Description: p.Description,
			Amenities:   p.Amenities,
			Highlights:  highlights,
			Folded:      catalog.Fold(catalog.SearchText(p)),
			Available:   catalog.Summarize(p.Rooms).Count,
		})
	}
	return docs
}

// Meilisearch queries a Meilisearch index and maps hits back onto the
// catalog.
type Meilisearch struct {
	client  *meilisearch.Client
	catalog *catalog.Catalog
	limit   int64
}

// NewMeilisearch returns a client for host. Call Index before searching.
func NewMeilisearch(host, apiKey string, c *catalog.Catalog) *Meilisearch {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &Meilisearch{client: client, catalog: c, limit: 20}
}

// Index creates the index when missing, configures it and uploads the
// catalog.
func (m *Meilisearch) Index() error {
	_, err := m.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        indexUID,
		PrimaryKey: "id",
	})
	if err != nil && !isIndexExists(err) {
		return fmt.Errorf("create search index: %w", err)
	}

	index := m.client.Index(indexUID)
	if _, err := index.UpdateSearchableAttributes(&[]string{
		"title", "location", "address", "tags", "highlights", "amenities", "description", "folded",
	}); err != nil {
		return fmt.Errorf("configure searchable attributes: %w", err)
	}
	if _, err := index.UpdateFilterableAttributes(&[]string{"type", "available"}); err != nil {
		return fmt.Errorf("configure filterable attributes: %w", err)
	}
	if _, err := index.AddDocuments(Documents(m.catalog)); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	return nil
}

func (m *Meilisearch) Search(ctx context.Context, query string) ([]catalog.Property, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]catalog.Property(nil), m.catalog.Properties...), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := m.client.Index(indexUID).Search(catalog.Fold(query), &meilisearch.SearchRequest{
		Limit:                m.limit,
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("meilisearch query: %w", err)
	}
	return m.resolve(res.Hits), nil
}

// resolve maps raw hits onto catalog properties, skipping ids the catalog
// no longer knows.
func (m *Meilisearch) resolve(hits []interface{}) []catalog.Property {
	out := make([]catalog.Property, 0, len(hits))
	for _, hit := range hits {
		fields, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := fields["id"].(string)
		p, err := m.catalog.Property(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isIndexExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "index_already_exists") || strings.Contains(msg, "already exists")
}
