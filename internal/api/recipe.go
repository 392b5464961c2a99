package api

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
	"github.com/pageza/recipebox/backend/internal/service"
)

// RecipeDetail is the detail view response
type RecipeDetail struct {
	Recipe        *model.Recipe `json:"recipe"`
	ShowNutrition bool          `json:"show_nutrition"`
}

type RecipeHandler struct {
	recipeService service.IRecipeService
	pageSize      int
}

func NewRecipeHandler(recipeService service.IRecipeService, pageSize int) *RecipeHandler {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &RecipeHandler{
		recipeService: recipeService,
		pageSize:      pageSize,
	}
}

// RegisterRoutes registers the recipe routes. mutate runs before create, edit and delete.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, mutate ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/categories", h.ListCategories)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", slices.Concat(mutate, []gin.HandlerFunc{h.CreateRecipe})...)
		recipes.PUT("/:id", slices.Concat(mutate, []gin.HandlerFunc{h.UpdateRecipe})...)
		recipes.DELETE("/:id", slices.Concat(mutate, []gin.HandlerFunc{h.DeleteRecipe})...)
	}
	router.GET("/stats", h.GetStatistics)
}

// ListRecipes serves one page of the filtered collection.
// Query parameters: q, category (repeatable or comma separated), page.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		page = n
	}

	view := query.NewView(h.pageSize)
	view.SetSearch(c.Query("q"))
	view.SelectCategories(categoryParams(c))
	view.SetPage(page)

	list, err := h.recipeService.ListRecipes(c.Request.Context(), view)
	if err != nil {
		slog.Error("Failed to list recipes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	facets, err := h.recipeService.Categories(c.Request.Context(), categoryParams(c))
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": facets})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, RecipeDetail{
		Recipe:        recipe,
		ShowNutrition: recipe.NutritionalInfo.HasAny(),
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe data"})
		return
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		h.respondError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": created})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe data"})
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), c.Param("id"), &recipe)
	if err != nil {
		h.respondError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": updated})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GetStatistics(c *gin.Context) {
	report, err := h.recipeService.Statistics(c.Request.Context())
	if err != nil {
		slog.Error("Failed to compute statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *RecipeHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error(fallback, "recipe_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func categoryParams(c *gin.Context) []string {
	var out []string
	for _, v := range c.QueryArray("category") {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
