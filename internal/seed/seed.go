// Package seed provides the sample recipes the collection starts with.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pageza/recipebox/backend/internal/model"
)

//go:embed recipes.json
var defaultRecipes []byte

// Adder is the part of the store seeding needs.
type Adder interface {
	Add(recipe model.Recipe) error
}

// Default returns the bundled sample recipes.
func Default() ([]model.Recipe, error) {
	return Parse(defaultRecipes)
}

// LoadFile reads recipes from a JSON file. An empty path loads the bundled
// samples.
func LoadFile(path string) ([]model.Recipe, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of recipes and checks that recipe ids are
// present and unique, and ingredient ids unique within their recipe.
func Parse(data []byte) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode seed recipes: %w", err)
	}

	seen := make(map[string]struct{}, len(recipes))
	for i, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("seed recipe %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate seed recipe id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		ingredients := make(map[string]struct{}, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			if _, dup := ingredients[ing.ID]; dup {
				return nil, fmt.Errorf("duplicate ingredient id %q in recipe %q", ing.ID, r.ID)
			}
			ingredients[ing.ID] = struct{}{}
		}
	}
	return recipes, nil
}

// Into adds recipes to dst in order.
func Into(dst Adder, recipes []model.Recipe) error {
	for _, r := range recipes {
		if err := dst.Add(r); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", r.ID, err)
		}
	}
	return nil
}
