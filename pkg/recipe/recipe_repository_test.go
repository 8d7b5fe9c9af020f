package recipe

import (
	"context"
	"testing"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugs(t *testing.T, repo RecipeRepository, filter domain.RecipeFilter) []string {
	t.Helper()
	recipes, err := repo.GetRecipes(context.Background(), filter)
	require.NoError(t, err)

	out := []string{}
	for _, r := range recipes {
		out = append(out, r.Slug)
	}
	return out
}

func TestGetRecipes_Filters(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t, true))

	tests := []struct {
		name   string
		filter domain.RecipeFilter
		want   []string
	}{
		{"no filter ordered by name", domain.RecipeFilter{}, []string{"moong-dal-khichdi", "paneer-butter-masala"}},
		{"diabetic safe", domain.RecipeFilter{RequireDiabeticSafe: true}, []string{"moong-dal-khichdi"}},
		{"vegan", domain.RecipeFilter{RequireVegan: true}, []string{"moong-dal-khichdi"}},
		{"renal and gluten free", domain.RecipeFilter{RequireRenalSafe: true, RequireGlutenFree: true}, []string{"moong-dal-khichdi", "paneer-butter-masala"}},
		{"excluded ingredient", domain.RecipeFilter{ExcludeIngredients: []string{" Tomato "}}, []string{"moong-dal-khichdi"}},
		{"excluded ingredient is longer", domain.RecipeFilter{ExcludeIngredients: []string{"Spicy Tomato Sauce"}}, []string{"moong-dal-khichdi"}},
		{"blank exclusion ignored", domain.RecipeFilter{ExcludeIngredients: []string{"", "  "}}, []string{"moong-dal-khichdi", "paneer-butter-masala"}},
		{"everything excluded", domain.RecipeFilter{ExcludeIngredients: []string{"rice", "paneer"}}, []string{}},
		{"limit", domain.RecipeFilter{Limit: 1}, []string{"moong-dal-khichdi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugs(t, repo, tt.filter))
		})
	}
}

func TestGetRecipeBySlug(t *testing.T) {
	repo := NewRecipeRepository(testutil.NewTestDB(t, true))

	recipe, err := repo.GetRecipeBySlug(context.Background(), "moong-dal-khichdi")
	require.NoError(t, err)
	assert.Equal(t, "Moong Dal Khichdi", recipe.Name)

	out := toDomainRecipe(recipe)
	assert.Equal(t, "moong-dal-khichdi", out.ID)
	assert.Equal(t, []string{"moong dal", "rice", "ghee", "salt"}, out.Ingredients)
	assert.True(t, out.DietaryProfile.DiabeticSafe)
	assert.Equal(t, 2, out.Nutrition.SugarG)

	_, err = repo.GetRecipeBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
