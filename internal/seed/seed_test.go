package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
)

func TestDefaultRecipesAreValid(t *testing.T) {
	recipes, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, recipes)
	assert.Equal(t, "1", recipes[0].ID)

	for _, r := range recipes {
		assert.NoError(t, service.ValidateRecipe(r), r.Title)
	}
}

func TestIntoStore(t *testing.T) {
	recipes, err := Default()
	require.NoError(t, err)

	s := store.New()
	require.NoError(t, Into(s, recipes))
	assert.Equal(t, len(recipes), s.Len())

	first, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, recipes[0].Title, first.Title)
}

func TestIntoRejectsExistingIDs(t *testing.T) {
	recipes, _ := Default()
	s := store.New()
	require.NoError(t, Into(s, recipes))

	err := Into(s, recipes[:1])
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[{"title": "no id"}]`))
	assert.ErrorContains(t, err, "has no id")

	_, err = Parse([]byte(`[{"id": "1"}, {"id": "1"}]`))
	assert.ErrorContains(t, err, "duplicate seed recipe id")

	_, err = Parse([]byte(`[{"id": "1", "ingredients": [{"id": "a"}, {"id": "a"}]}]`))
	assert.ErrorContains(t, err, "duplicate ingredient id")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "title": "Toast"}]`), 0o600))

	recipes, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Toast", recipes[0].Title)

	recipes, err = LoadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
