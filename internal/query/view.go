package query

import (
	"slices"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Result is the derived list view.
type Result struct {
	Page
	Facets   []Facet  `json:"categories"`
	Criteria Criteria `json:"criteria"`
}

// View holds the list-view state: search text, selected categories and the
// current page. Changing the search or the selection returns to page 1.
type View struct {
	search   string
	selected []string
	page     int
	pageSize int
}

// NewView creates a view on page 1 with the given page size.
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{page: 1, pageSize: pageSize}
}

// SetSearch updates the search text.
func (v *View) SetSearch(search string) {
	if search == v.search {
		return
	}
	v.search = search
	v.page = 1
}

// ToggleCategory selects or deselects a category.
func (v *View) ToggleCategory(category string) {
	key := NormalizeCategory(category)
	if key == "" {
		return
	}
	if i := slices.Index(v.selected, key); i >= 0 {
		v.selected = slices.Delete(v.selected, i, i+1)
	} else {
		v.selected = append(v.selected, key)
	}
	v.page = 1
}

// SelectCategories replaces the selection.
func (v *View) SelectCategories(categories []string) {
	next := make([]string, 0, len(categories))
	for _, c := range categories {
		key := NormalizeCategory(c)
		if key != "" && !slices.Contains(next, key) {
			next = append(next, key)
		}
	}
	if slices.Equal(next, v.selected) {
		return
	}
	v.selected = next
	v.page = 1
}

// ClearCategories selects "All".
func (v *View) ClearCategories() {
	v.SelectCategories(nil)
}

// SetPage moves to page p. It is clamped when the view is applied.
func (v *View) SetPage(p int) {
	v.page = p
}

// CurrentPage returns the requested page index.
func (v *View) CurrentPage() int {
	return v.page
}

// Criteria returns the active filter.
func (v *View) Criteria() Criteria {
	return Criteria{Search: v.search, Categories: slices.Clone(v.selected)}
}

// Apply derives the current page from recipes.
func (v *View) Apply(recipes []model.Recipe) Result {
	c := v.Criteria()
	return Result{
		Page:     Paginate(Filter(recipes, c), v.page, v.pageSize),
		Facets:   Facets(recipes, c.Categories),
		Criteria: c,
	}
}
