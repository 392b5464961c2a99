package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
	"github.com/pageza/recipebox/backend/internal/stats"
	"github.com/pageza/recipebox/backend/internal/store"
)

func validRecipe(title string) *model.Recipe {
	return &model.Recipe{
		Title:           title,
		Category:        "Breakfast",
		Image:           "pancakes.jpg",
		PreparationTime: 10,
		CookingTime:     15,
		Servings:        2,
		Ingredients: []model.Ingredient{
			{Name: "Flour", Quantity: 200, Unit: "g"},
			{Name: "Milk", Quantity: 300, Unit: "ml"},
		},
		Directions:      "Mix and fry.",
		NutritionalInfo: model.NutritionalInfo{Calories: 350, Proteins: 9},
	}
}

func newTestService(t *testing.T) (*RecipeService, *store.RecipeStore, *metrics.Metrics) {
	t.Helper()
	s := store.New()
	m := metrics.New(prometheus.NewRegistry())
	r := stats.NewRecomputer(0, m)
	t.Cleanup(r.Close)
	return NewRecipeService(s, r, m), s, m
}

func TestCreateRecipe(t *testing.T) {
	svc, s, m := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, s.Len())

	for _, ing := range created.Ingredients {
		assert.NotEmpty(t, ing.ID)
	}
	assert.NotEqual(t, created.Ingredients[0].ID, created.Ingredients[1].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesStored))
}

func TestCreateRecipeAssignsUniqueIDs(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		r, err := svc.CreateRecipe(ctx, validRecipe(fmt.Sprintf("Recipe %d", i)))
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "id %s reused", r.ID)
		seen[r.ID] = true
		assert.Equal(t, i+1, s.Len())
	}
}

func TestCreateRecipeIgnoresCallerID(t *testing.T) {
	svc, _, _ := newTestService(t)
	in := validRecipe("Pancakes")
	in.ID = "chosen-by-client"

	created, err := svc.CreateRecipe(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, "chosen-by-client", created.ID)
}

func TestCreateRecipeValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.Recipe)
		reason string
	}{
		{"missing title", func(r *model.Recipe) { r.Title = "  " }, ReasonRequiredFields},
		{"missing category", func(r *model.Recipe) { r.Category = "" }, ReasonRequiredFields},
		{"missing directions", func(r *model.Recipe) { r.Directions = "" }, ReasonRequiredFields},
		{"zero prep time", func(r *model.Recipe) { r.PreparationTime = 0 }, ReasonPositiveNumbers},
		{"negative cooking time", func(r *model.Recipe) { r.CookingTime = -5 }, ReasonPositiveNumbers},
		{"zero servings", func(r *model.Recipe) { r.Servings = 0 }, ReasonPositiveNumbers},
		{"no ingredients", func(r *model.Recipe) { r.Ingredients = nil }, ReasonIngredientRequired},
		{"only blank ingredient rows", func(r *model.Recipe) { r.Ingredients = []model.Ingredient{{}, {Name: " "}} }, ReasonIngredientRequired},
		{"ingredients without quantity", func(r *model.Recipe) {
			r.Ingredients[0].Quantity = 0
			r.Ingredients[1].Quantity = -1
		}, ReasonIngredientRequired},
		{"ingredients without unit", func(r *model.Recipe) {
			r.Ingredients[0].Unit = " "
			r.Ingredients[1].Unit = ""
		}, ReasonIngredientRequired},
		{"negative calories", func(r *model.Recipe) { r.NutritionalInfo.Calories = -1 }, ReasonNegativeNutrition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s, m := newTestService(t)
			r := validRecipe("Pancakes")
			tt.mutate(r)

			created, err := svc.CreateRecipe(context.Background(), r)
			assert.Nil(t, created)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.reason, err.Error())
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("create")))
		})
	}
}

func TestCreateRecipeDropsIncompleteIngredientRows(t *testing.T) {
	svc, s, _ := newTestService(t)
	r := validRecipe("Pancakes")
	r.Ingredients = append(r.Ingredients,
		model.Ingredient{},
		model.Ingredient{Name: "Salt", Quantity: 0, Unit: "pinch"},
	)

	created, err := svc.CreateRecipe(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, "Flour", created.Ingredients[0].Name)
	assert.Equal(t, "Milk", created.Ingredients[1].Name)

	stored, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Len(t, stored.Ingredients, 2)
}

func TestValidateRecipeEmptyForm(t *testing.T) {
	err := ValidateRecipe(model.Recipe{Servings: 1})
	require.Error(t, err)
	assert.Equal(t, ReasonRequiredFields, err.Error())
}

func TestGetRecipe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetRecipe(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestUpdateRecipe(t *testing.T) {
	svc, s, m := newTestService(t)
	ctx := context.Background()
	first, _ := svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	second, _ := svc.CreateRecipe(ctx, validRecipe("Waffles"))
	third, _ := svc.CreateRecipe(ctx, validRecipe("Crepes"))

	edit := validRecipe("Blueberry Waffles")
	edit.ID = "ignored"
	updated, err := svc.UpdateRecipe(ctx, second.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.ID)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "Blueberry Waffles", list[1].Title)
	assert.Equal(t, third.ID, list[2].ID)
	assert.Equal(t, "Crepes", list[2].Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesUpdated))
}

func TestUpdateRecipeNotFound(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	before := s.List()

	_, err := svc.UpdateRecipe(ctx, "missing", validRecipe("Ghost"))
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.Equal(t, before, s.List())
}

func TestUpdateRecipeValidation(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	created, _ := svc.CreateRecipe(ctx, validRecipe("Pancakes"))

	edit := validRecipe("")
	_, err := svc.UpdateRecipe(ctx, created.ID, edit)
	assert.True(t, IsValidationError(err))

	got, _ := s.Get(created.ID)
	assert.Equal(t, "Pancakes", got.Title)
}

func TestUpdateRecipeKeepsIngredientIDs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, _ := svc.CreateRecipe(ctx, validRecipe("Pancakes"))

	edit := created.Clone()
	edit.Ingredients = append(edit.Ingredients, model.Ingredient{Name: "Egg", Quantity: 1, Unit: "pcs"})
	updated, err := svc.UpdateRecipe(ctx, created.ID, &edit)
	require.NoError(t, err)

	assert.Equal(t, created.Ingredients[0].ID, updated.Ingredients[0].ID)
	assert.Equal(t, created.Ingredients[1].ID, updated.Ingredients[1].ID)
	assert.NotEmpty(t, updated.Ingredients[2].ID)
}

func TestDeleteRecipe(t *testing.T) {
	svc, s, m := newTestService(t)
	ctx := context.Background()
	created, _ := svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	_, _ = svc.CreateRecipe(ctx, validRecipe("Waffles"))

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	for _, r := range s.List() {
		assert.NotEqual(t, created.ID, r.ID)
	}
	assert.Equal(t, 1, s.Len())

	before := s.List()
	require.NoError(t, svc.DeleteRecipe(ctx, "missing"))
	assert.Equal(t, before, s.List())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecipesDeleted))
}

func TestListRecipesClassifiesCards(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for i, cal := range []float64{100, 200, 300, 195} {
		r := validRecipe(fmt.Sprintf("Recipe %d", i))
		r.NutritionalInfo.Calories = cal
		_, err := svc.CreateRecipe(ctx, r)
		require.NoError(t, err)
	}

	list, err := svc.ListRecipes(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Recipes, 4)

	tiers := []stats.Tier{}
	for _, c := range list.Recipes {
		tiers = append(tiers, c.CalorieTier)
	}
	// avg is 198.75
	assert.Equal(t, []stats.Tier{stats.TierMin, stats.TierNearAverage, stats.TierMax, stats.TierNearAverage}, tiers)
	assert.Equal(t, 300.0, list.CalorieStats.Max)
}

func TestListRecipesTiersUseWholeCollection(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	low := validRecipe("Salad")
	low.Category = "Lunch"
	low.NutritionalInfo.Calories = 100
	high := validRecipe("Burger")
	high.Category = "Dinner"
	high.NutritionalInfo.Calories = 900
	_, _ = svc.CreateRecipe(ctx, low)
	_, _ = svc.CreateRecipe(ctx, high)

	view := query.NewView(query.DefaultPageSize)
	view.ToggleCategory("lunch")
	list, err := svc.ListRecipes(ctx, view)
	require.NoError(t, err)

	require.Len(t, list.Recipes, 1)
	assert.Equal(t, stats.TierMin, list.Recipes[0].CalorieTier)
	assert.Len(t, list.Categories, 2)
}

func TestListRecipesPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 13; i++ {
		_, err := svc.CreateRecipe(ctx, validRecipe(fmt.Sprintf("Recipe %d", i)))
		require.NoError(t, err)
	}

	view := query.NewView(query.DefaultPageSize)
	view.SetPage(3)
	list, err := svc.ListRecipes(ctx, view)
	require.NoError(t, err)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 3, list.Page)
	assert.Len(t, list.Recipes, 1)
	assert.Equal(t, "Recipe 12", list.Recipes[0].Title)
}

func TestStatisticsFollowStore(t *testing.T) {
	svc, _, m := newTestService(t)
	ctx := context.Background()

	report, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Calories)
	assert.Equal(t, stats.CalorieStats{}, report.CalorieStats)

	created, _ := svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	report, _ = svc.Statistics(ctx)
	require.Len(t, report.Calories, 1)
	assert.Equal(t, "Pancakes", report.Calories[0].Name)
	assert.False(t, report.Pending)

	_ = svc.DeleteRecipe(ctx, created.ID)
	report, _ = svc.Statistics(ctx)
	assert.Empty(t, report.Calories)

	// initial trigger plus create plus delete
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StatsRecomputed))
}

func TestCategories(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	lunch := validRecipe("Soup")
	lunch.Category = " Lunch "
	_, _ = svc.CreateRecipe(ctx, validRecipe("Pancakes"))
	_, _ = svc.CreateRecipe(ctx, lunch)

	facets, err := svc.Categories(ctx, []string{"LUNCH"})
	require.NoError(t, err)
	assert.Equal(t, []query.Facet{
		{Key: "breakfast", Label: "Breakfast"},
		{Key: "lunch", Label: "Lunch", Selected: true},
	}, facets)
}
