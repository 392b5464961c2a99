package service

import (
	"context"
	"io"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	ListRecipes(ctx context.Context, view *query.View) (*RecipeList, error)
	Categories(ctx context.Context, selected []string) ([]query.Facet, error)
	Statistics(ctx context.Context) (*StatsReport, error)
}

// IImageStore stores uploaded recipe images and returns their public URL
type IImageStore interface {
	UploadImage(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

var _ IRecipeService = (*RecipeService)(nil)
