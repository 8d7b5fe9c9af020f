package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessGetRecipes        = "success get recipes"
	MessageSuccessSearchRecipes     = "success search recipes"
	MessageSuccessRefineRecipes     = "recipes refined successfully"
	MessageSuccessGetRecommendation = "success get recipe recommendations"
	MessageSuccessAskAssistant      = "kitchen assistant answered"

	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedSearchRecipes     = "failed to search recipes"
	MessageFailedRefineRecipes     = "failed to refine recipes"
	MessageFailedGetRecommendation = "failed to get recipe recommendations"
	MessageFailedAskAssistant      = "failed to answer cooking question"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeAPIFailed    = errors.New("recipe search API request failed")
	ErrRecipeAPINotConfig = errors.New("recipe search API is not configured")
	ErrGeminiAPIFailed    = errors.New("gemini API processing failed")
	ErrNoIngredients      = errors.New("no safe ingredients available for recipe search")
)

type (
	// RecipeFilter narrows the recipe store to recipes a patient may eat.
	RecipeFilter struct {
		RequireDiabeticSafe bool
		RequireRenalSafe    bool
		RequireGlutenFree   bool
		RequireVegan        bool
		ExcludeIngredients  []string
		Limit               int
	}

	DietaryProfile struct {
		GlutenFree   bool `json:"gluten_free"`
		Vegan        bool `json:"vegan"`
		DiabeticSafe bool `json:"diabetic_safe"`
		RenalSafe    bool `json:"renal_safe"`
	}

	NutritionFacts struct {
		Calories int `json:"calories"`
		SugarG   int `json:"sugar_g"`
		SodiumMg int `json:"sodium_mg"`
	}

	Recipe struct {
		ID             string         `json:"id"`
		Name           string         `json:"name"`
		Cuisine        string         `json:"cuisine"`
		DietaryProfile DietaryProfile `json:"dietary_profile"`
		Ingredients    []string       `json:"ingredients"`
		Instructions   string         `json:"instructions"`
		Nutrition      NutritionFacts `json:"nutrition"`
	}

	// ExternalRecipe is one hit from the remote recipe search API.
	ExternalRecipe struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Image string `json:"image,omitempty"`
	}

	RecipeSearchResponse struct {
		Results      []ExternalRecipe `json:"results"`
		TotalResults int              `json:"totalResults"`
	}

	RefinedRecipe struct {
		RecipeName     string `json:"recipe_name"`
		WhySafe        string `json:"why_safe"`
		MedicalBenefit string `json:"medical_benefit"`
		ServingAdvice  string `json:"serving_advice"`
		CautionNote    string `json:"caution_note"`
	}

	// RefinementResult holds parsed recipes, or the model's raw text when it
	// did not return JSON.
	RefinementResult struct {
		Recipes   []RefinedRecipe `json:"recipes,omitempty"`
		RawOutput string          `json:"raw_output,omitempty"`
	}

	RefineRecipesRequest struct {
		Recipes []ExternalRecipe `json:"recipes" validate:"omitempty,dive"`
	}

	RecommendationResponse struct {
		StoreRecipes  []Recipe         `json:"store_recipes"`
		RemoteRecipes []ExternalRecipe `json:"remote_recipes"`
		RemoteError   string           `json:"remote_error,omitempty"`
	}

	AskAssistantRequest struct {
		RecipeName string `json:"recipe_name" validate:"required"`
		Question   string `json:"question" validate:"required"`
	}

	// MeasurementConversion is one known kitchen unit equivalence, e.g.
	// 1 cup of flour is about 120 grams.
	MeasurementConversion struct {
		Ingredient string `json:"ingredient"`
		From       string `json:"from"`
		To         string `json:"to"`
	}

	AssistantAnswer struct {
		RecipeName      string                  `json:"recipe_name"`
		Answer          string                  `json:"answer"`
		ConversionHints []MeasurementConversion `json:"conversion_hints"`
	}
)

func (m MeasurementConversion) String() string {
	return fmt.Sprintf("%s %s ≈ %s", m.From, m.Ingredient, m.To)
}
