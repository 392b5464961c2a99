package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
	"github.com/pageza/recipebox/backend/internal/stats"
	"github.com/pageza/recipebox/backend/internal/store"
)

// RecipeCard is a list entry with its calorie highlight.
type RecipeCard struct {
	model.Recipe
	CalorieTier stats.Tier `json:"calorie_tier"`
}

// RecipeList is the list view response.
type RecipeList struct {
	Recipes      []RecipeCard       `json:"recipes"`
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	TotalPages   int                `json:"total_pages"`
	TotalCount   int                `json:"total_count"`
	Categories   []query.Facet      `json:"categories"`
	Criteria     query.Criteria     `json:"criteria"`
	CalorieStats stats.CalorieStats `json:"calorie_stats"`
}

// StatsReport is the statistics view response.
type StatsReport struct {
	stats.Snapshot
	Pending bool `json:"pending"`
}

// RecipeService handles recipe operations
type RecipeService struct {
	store      *store.RecipeStore
	recomputer *stats.Recomputer
	metrics    *metrics.Metrics
	newID      func() string
}

// NewRecipeService creates a new RecipeService instance. Every change to the
// store triggers a statistics recomputation. m may be nil.
func NewRecipeService(s *store.RecipeStore, recomputer *stats.Recomputer, m *metrics.Metrics) *RecipeService {
	svc := &RecipeService{
		store:      s,
		recomputer: recomputer,
		metrics:    m,
		newID:      func() string { return uuid.New().String() },
	}

	s.OnChange(func(snapshot []model.Recipe) {
		if m != nil {
			m.SetStored(len(snapshot))
		}
		recomputer.Trigger(snapshot)
	})
	if m != nil {
		m.SetStored(s.Len())
	}
	recomputer.Trigger(s.List())

	return svc
}

// CreateRecipe validates a submitted recipe, assigns fresh ids and appends it
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	r := normalize(recipe.Clone())
	if err := ValidateRecipe(r); err != nil {
		s.validationFailed("create", err)
		return nil, err
	}

	r.ID = s.newID()
	s.assignIngredientIDs(&r)

	if err := s.store.Add(r); err != nil {
		return nil, fmt.Errorf("failed to add recipe: %w", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	slog.Info("Recipe created", "recipe_id", r.ID, "title", r.Title)

	return &r, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return &r, nil
}

// UpdateRecipe overwrites the recipe with the given id
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, recipe *model.Recipe) (*model.Recipe, error) {
	if _, ok := s.store.Get(id); !ok {
		return nil, ErrRecipeNotFound
	}

	r := normalize(recipe.Clone())
	r.ID = id
	if err := ValidateRecipe(r); err != nil {
		s.validationFailed("update", err)
		return nil, err
	}
	s.assignIngredientIDs(&r)

	if !s.store.Update(r) {
		// deleted between the lookup and the update
		return nil, ErrRecipeNotFound
	}
	if s.metrics != nil {
		s.metrics.IncrementUpdated()
	}
	slog.Info("Recipe updated", "recipe_id", id)

	return &r, nil
}

// DeleteRecipe deletes a recipe. Deleting an unknown id is not an error.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	if !s.store.Delete(id) {
		slog.Debug("Delete of unknown recipe ignored", "recipe_id", id)
		return nil
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	slog.Info("Recipe deleted", "recipe_id", id)
	return nil
}

// ListRecipes applies view to the collection and classifies each card
func (s *RecipeService) ListRecipes(ctx context.Context, view *query.View) (*RecipeList, error) {
	if view == nil {
		view = query.NewView(query.DefaultPageSize)
	}
	all := s.store.List()
	res := view.Apply(all)
	cs := stats.CalorieStatsOf(all)

	cards := make([]RecipeCard, 0, len(res.Recipes))
	for _, r := range res.Recipes {
		cards = append(cards, RecipeCard{
			Recipe:      r,
			CalorieTier: stats.Classify(r.NutritionalInfo.Calories, cs),
		})
	}

	return &RecipeList{
		Recipes:      cards,
		Page:         res.Page.Page,
		PageSize:     res.PageSize,
		TotalPages:   res.TotalPages,
		TotalCount:   res.TotalCount,
		Categories:   res.Facets,
		Criteria:     res.Criteria,
		CalorieStats: cs,
	}, nil
}

// Categories returns the category facets of the whole collection
func (s *RecipeService) Categories(ctx context.Context, selected []string) ([]query.Facet, error) {
	return query.Facets(s.store.List(), selected), nil
}

// Statistics returns the latest published statistics. Before the first
// publication they are computed on the spot.
func (s *RecipeService) Statistics(ctx context.Context) (*StatsReport, error) {
	snap, ok, pending := s.recomputer.Latest()
	if !ok {
		snap = stats.Compute(s.store.List())
	}
	return &StatsReport{Snapshot: snap, Pending: pending}, nil
}

func (s *RecipeService) assignIngredientIDs(r *model.Recipe) {
	seen := make(map[string]struct{}, len(r.Ingredients))
	for i := range r.Ingredients {
		id := r.Ingredients[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = s.newID()
			r.Ingredients[i].ID = id
		}
		seen[id] = struct{}{}
	}
}

func (s *RecipeService) validationFailed(operation string, err error) {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure(operation)
	}
	slog.Warn("Recipe rejected", "operation", operation, "reason", err.Error())
}

func normalize(r model.Recipe) model.Recipe {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Image = strings.TrimSpace(r.Image)
	// Blank or incomplete ingredient rows from the form are dropped
	kept := make([]model.Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Unit = strings.TrimSpace(ing.Unit)
		if ValidIngredient(ing) {
			kept = append(kept, ing)
		}
	}
	r.Ingredients = kept
	return r
}
