package recipe

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"gorm.io/gorm"
	"strings"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error)
		GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeByName matches the display name case-insensitively.
func (r *recipeRepository) GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	name = strings.ToLower(strings.TrimSpace(name))
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", name).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipes applies the dietary flags in SQL and drops recipes with an
// excluded ingredient afterwards. Exclusion matches case-insensitive
// substrings in both directions, so "milk" excludes "whole milk" and an
// excluded "whole milk" excludes a recipe listing "milk".
func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if filter.RequireDiabeticSafe {
		query = query.Where("diabetic_safe = ?", true)
	}
	if filter.RequireRenalSafe {
		query = query.Where("renal_safe = ?", true)
	}
	if filter.RequireGlutenFree {
		query = query.Where("gluten_free = ?", true)
	}
	if filter.RequireVegan {
		query = query.Where("vegan = ?", true)
	}

	var recipes []*entities.Recipe
	if err := query.Order("name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}

	excluded := normalizeTerms(filter.ExcludeIngredients)
	out := make([]*entities.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if hasExcludedIngredient(ingredientsOf(recipe), excluded) {
			continue
		}
		out = append(out, recipe)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func ingredientsOf(recipe *entities.Recipe) []string {
	var ingredients []string
	if len(recipe.Ingredients) == 0 {
		return nil
	}
	if err := json.Unmarshal(recipe.Ingredients, &ingredients); err != nil {
		return nil
	}
	return ingredients
}

func hasExcludedIngredient(ingredients, excluded []string) bool {
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" {
			continue
		}
		for _, ex := range excluded {
			if strings.Contains(ing, ex) || strings.Contains(ex, ing) {
				return true
			}
		}
	}
	return false
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func toDomainRecipe(r *entities.Recipe) domain.Recipe {
	ingredients := ingredientsOf(r)
	if ingredients == nil {
		ingredients = []string{}
	}
	return domain.Recipe{
		ID:      r.Slug,
		Name:    r.Name,
		Cuisine: r.Cuisine,
		DietaryProfile: domain.DietaryProfile{
			GlutenFree:   r.GlutenFree,
			Vegan:        r.Vegan,
			DiabeticSafe: r.DiabeticSafe,
			RenalSafe:    r.RenalSafe,
		},
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		Nutrition: domain.NutritionFacts{
			Calories: r.Calories,
			SugarG:   r.SugarG,
			SodiumMg: r.SodiumMg,
		},
	}
}
