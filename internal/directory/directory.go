// Package directory answers the browse/filter queries of the busca page
// against an in-memory snapshot of the vendor list.
package directory

import (
	"encoding/json"
	"fmt"
	"strings"

	"feirarinos/internal/backend"
	"feirarinos/internal/catalog"
	"feirarinos/internal/domain"
)

// Entry pairs a vendor record with its document id.
type Entry struct {
	ID     string
	Vendor domain.Vendor
}

// Engine holds one snapshot of the vendor list plus the category list
// derived from the master catalog, and filters against it. Not safe for
// concurrent use; build one per request.
type Engine struct {
	store          backend.DocumentStore
	entries        []Entry
	categories     []string
	term           string
	activeCategory string
}

func New(store backend.DocumentStore) *Engine { return &Engine{store: store} }

// Load fetches the produtos catalog and the banca collection. Either
// read failing leaves the engine untouched; on success any previous
// filter is reset.
func (e *Engine) Load() error {
	prodDocs, err := e.store.ReadAll(backend.CollectionProducts)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	vendorDocs, err := e.store.ReadAll(backend.CollectionVendors)
	if err != nil {
		return fmt.Errorf("load vendors: %w", err)
	}

	labels := make([]string, 0, len(prodDocs))
	for _, d := range prodDocs {
		var p domain.CatalogEntry
		if err := d.Decode(&p); err != nil {
			return fmt.Errorf("decode catalog entry %s: %w", d.ID, err)
		}
		labels = append(labels, p.Name)
	}
	entries := make([]Entry, 0, len(vendorDocs))
	for _, d := range vendorDocs {
		var v domain.Vendor
		if err := d.Decode(&v); err != nil {
			return fmt.Errorf("decode vendor %s: %w", d.ID, err)
		}
		entries = append(entries, Entry{ID: d.ID, Vendor: v})
	}

	e.categories = catalog.ExtractCategories(labels)
	e.entries = entries
	e.term, e.activeCategory = "", ""
	return nil
}

// Categories returns the derived category list, sorted.
func (e *Engine) Categories() []string { return e.categories }

// ActiveCategory returns the currently selected category chip, if any.
func (e *Engine) ActiveCategory() string { return e.activeCategory }

// Term returns the active free-text filter term.
func (e *Engine) Term() string { return e.term }

// FilterByTerm matches term case-insensitively against the serialized
// vendor record. The empty term matches everything.
func (e *Engine) FilterByTerm(term string) []Entry {
	e.term = term
	e.activeCategory = ""
	return e.filter(term)
}

// FilterByCategory toggles: selecting the active category clears the
// filter, any other category replaces it. The category is matched with
// the same substring engine as free-text terms.
func (e *Engine) FilterByCategory(category string) []Entry {
	if category == e.activeCategory {
		return e.Clear()
	}
	e.activeCategory = category
	e.term = ""
	return e.filter(category)
}

// Clear resets term and category and returns the full list.
func (e *Engine) Clear() []Entry {
	e.term = ""
	e.activeCategory = ""
	return e.entries
}

func (e *Engine) filter(term string) []Entry {
	if term == "" {
		return e.entries
	}
	needle := strings.ToLower(term)
	out := []Entry{}
	for _, en := range e.entries {
		b, err := json.Marshal(en.Vendor)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(b)), needle) {
			out = append(out, en)
		}
	}
	return out
}
