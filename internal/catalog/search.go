package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases text and strips diacritics so "etoile" matches "Étoile".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}

// Search matches every query term against the searchable text of each
// property. Terms are ANDed; an empty query returns all properties.
func (c *Catalog) Search(query string) []Property {
	terms := strings.Fields(Fold(query))
	result := make([]Property, 0, len(c.Properties))
	for _, p := range c.Properties {
		haystack := Fold(SearchText(p))
		matched := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, p)
		}
	}
	return result
}

// SearchText concatenates the fields a visitor is likely to search on.
func SearchText(p Property) string {
	parts := []string{p.Title, p.Location, p.Address, string(p.Type), p.Description}
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Amenities...)
	for _, h := range p.LocationHighlights {
		parts = append(parts, h.Text)
	}
	return strings.Join(parts, " ")
}
