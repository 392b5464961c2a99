// Package query derives filtered, faceted and paginated views of a recipe
// collection.
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Criteria selects recipes from a collection.
type Criteria struct {
	Search     string   `json:"search"`
	Categories []string `json:"categories"`
}

// Facet is a distinct category present in the collection.
type Facet struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// NormalizeCategory trims and lower-cases a category for grouping.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Categories returns the distinct normalized categories in first-seen order.
func Categories(recipes []model.Recipe) []string {
	seen := make(map[string]struct{}, len(recipes))
	out := make([]string, 0)
	for _, r := range recipes {
		c := NormalizeCategory(r.Category)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Facets returns the categories of recipes with display labels, marking
// those present in selected.
func Facets(recipes []model.Recipe, selected []string) []Facet {
	sel := selectionSet(selected)
	cats := Categories(recipes)
	out := make([]Facet, 0, len(cats))
	for _, c := range cats {
		_, ok := sel[c]
		out = append(out, Facet{Key: c, Label: label(c), Selected: ok})
	}
	return out
}

// Match reports whether r passes both the category and the text filter.
func Match(r model.Recipe, c Criteria) bool {
	return matchCategory(r, selectionSet(c.Categories)) && matchText(r, normalizeText(c.Search))
}

// Filter returns the recipes matching c, keeping their order.
func Filter(recipes []model.Recipe, c Criteria) []model.Recipe {
	sel := selectionSet(c.Categories)
	search := normalizeText(c.Search)

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matchCategory(r, sel) && matchText(r, search) {
			out = append(out, r)
		}
	}
	return out
}

func matchCategory(r model.Recipe, sel map[string]struct{}) bool {
	if len(sel) == 0 {
		return true
	}
	_, ok := sel[NormalizeCategory(r.Category)]
	return ok
}

// matchText expects an already normalized search string.
func matchText(r model.Recipe, search string) bool {
	if strings.Contains(normalizeText(r.Title), search) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(normalizeText(ing.Name), search) {
			return true
		}
	}
	return false
}

func selectionSet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if n := NormalizeCategory(c); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func label(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}
