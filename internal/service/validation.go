package service

import (
	"errors"
	"slices"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Validation failure reasons shown to the user.
const (
	ReasonRequiredFields     = "Please fill in all required fields"
	ReasonPositiveNumbers    = "Preparation, cooking time, and servings must be greater than 0"
	ReasonIngredientRequired = "At least one valid ingredient is required"
	ReasonNegativeNutrition  = "Nutritional values cannot be negative"
)

// ErrRecipeNotFound is returned when no recipe has the requested id.
var ErrRecipeNotFound = errors.New("recipe not found")

// ValidationError reports why a submitted recipe was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateRecipe checks a submitted recipe against the form rules. The first
// failing rule wins.
func ValidateRecipe(r model.Recipe) error {
	if blank(r.Title) || blank(r.Category) || blank(r.Directions) {
		return &ValidationError{Reason: ReasonRequiredFields}
	}
	if r.PreparationTime <= 0 || r.CookingTime <= 0 || r.Servings <= 0 {
		return &ValidationError{Reason: ReasonPositiveNumbers}
	}
	if !slices.ContainsFunc(r.Ingredients, ValidIngredient) {
		return &ValidationError{Reason: ReasonIngredientRequired}
	}
	n := r.NutritionalInfo
	if n.Calories < 0 || n.Proteins < 0 || n.Fats < 0 || n.Carbs < 0 || n.Fiber < 0 {
		return &ValidationError{Reason: ReasonNegativeNutrition}
	}
	return nil
}

// ValidIngredient reports whether an ingredient row has a name, a positive
// quantity and a unit.
func ValidIngredient(ing model.Ingredient) bool {
	return !blank(ing.Name) && ing.Quantity > 0 && !blank(ing.Unit)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
