package query

import "github.com/pageza/recipebox/backend/internal/model"

// DefaultPageSize is the number of recipe cards per list page.
const DefaultPageSize = 6

// Page is one page of a filtered collection.
type Page struct {
	Recipes    []model.Recipe `json:"recipes"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int            `json:"total_count"`
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate slices recipes into the requested page. The page index is clamped
// to [1, TotalPages]; an empty collection yields page 1 with no recipes.
func Paginate(recipes []model.Recipe, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(recipes), pageSize)

	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(recipes) {
		start = len(recipes)
	}
	if end > len(recipes) {
		end = len(recipes)
	}

	out := make([]model.Recipe, end-start)
	copy(out, recipes[start:end])

	return Page{
		Recipes:    out,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total,
		TotalCount: len(recipes),
	}
}
