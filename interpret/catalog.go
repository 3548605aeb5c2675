package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// CatalogEntry is one row of the content catalog export: an emoji character
// and the URL-safe slug the content system uses for its page.
type CatalogEntry struct {
	Character string `json:"character"`
	Slug      string `json:"slug"`
}

// Catalog maps emoji characters to content catalog slugs. It is immutable
// after construction, so concurrent interpretation requests may share one
// Catalog without synchronization. Replacing catalog data means building a
// new Catalog and swapping the reference, never mutating in place.
type Catalog struct {
	slugs map[string]string
}

// NewCatalog builds a catalog from entries. Entries with an empty character
// or slug are skipped; when the same character appears twice the first slug
// wins. A nil or empty entry list yields a usable empty catalog.
func NewCatalog(entries []CatalogEntry) *Catalog {
	slugs := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Character == "" || e.Slug == "" {
			continue
		}
		if _, ok := slugs[e.Character]; ok {
			continue
		}
		slugs[e.Character] = e.Slug
	}
	return &Catalog{slugs: slugs}
}

// LoadCatalog reads a catalog export file: a JSON array of
// {character, slug} objects.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("LoadCatalog: path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: read file: %w", err)
	}
	var entries []CatalogEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("LoadCatalog: unmarshal %s: %w", path, err)
	}
	return NewCatalog(entries), nil
}

// LookupSlug returns the slug for an emoji character. Unknown characters
// report ok=false, never an error. Safe on a nil Catalog.
func (c *Catalog) LookupSlug(character string) (string, bool) {
	if c == nil {
		return "", false
	}
	slug, ok := c.slugs[character]
	return slug, ok
}

// Len reports how many characters the catalog knows.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.slugs)
}

// BuildSlugMap resolves a batch of extracted emoji to their slugs.
// Characters are deduplicated before lookup, so a character repeated in the
// message costs one lookup and one map entry. Unknown characters are left
// out of the map entirely.
func (c *Catalog) BuildSlugMap(extracted []ExtractedEmoji) map[string]string {
	out := make(map[string]string, len(extracted))
	seen := make(map[string]struct{}, len(extracted))
	for _, e := range extracted {
		if _, ok := seen[e.Character]; ok {
			continue
		}
		seen[e.Character] = struct{}{}
		if slug, ok := c.LookupSlug(e.Character); ok {
			out[e.Character] = slug
		}
	}
	return out
}
