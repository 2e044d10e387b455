// Package catalog derives category views from the flat label list of
// the produtos master catalog.
package catalog

import (
	"feirarinos/internal/domain"
	"feirarinos/internal/textutil"
)

// ExtractCategories returns the unique category names found in labels,
// case-insensitively sorted. Deterministic for any permutation of the
// same input multiset.
func ExtractCategories(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	cats := []string{}
	for _, l := range labels {
		c := domain.ParseProductLabel(l).Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	return textutil.OrderStrings(cats)
}

// CategoryProducts groups the items offered under one category.
type CategoryProducts struct {
	Category string
	Items    []string
}

// GroupByCategory splits every label and buckets the items under their
// category, categories in sorted order, items in input order. Labels
// without an item part are counted for their category but add no item.
func GroupByCategory(labels []string) []CategoryProducts {
	cats := ExtractCategories(labels)
	index := make(map[string]int, len(cats))
	out := make([]CategoryProducts, len(cats))
	for i, c := range cats {
		out[i] = CategoryProducts{Category: c}
		index[c] = i
	}
	for _, l := range labels {
		p := domain.ParseProductLabel(l)
		if p.Item == "" {
			continue
		}
		out[index[p.Category]].Items = append(out[index[p.Category]].Items, p.Item)
	}
	return out
}
