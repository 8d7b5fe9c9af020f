package recipe

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/pkg/gemini"
	"context"
	"errors"
	"fmt"
	"strings"
)

// conversionTable lists the unit equivalences the assistant offers as hints.
var conversionTable = []domain.MeasurementConversion{
	{Ingredient: "flour", From: "1 cup", To: "120 grams"},
	{Ingredient: "sugar", From: "1 cup", To: "200 grams"},
	{Ingredient: "rice", From: "1 cup", To: "185 grams"},
	{Ingredient: "water", From: "1 cup", To: "240 ml"},
	{Ingredient: "milk", From: "1 cup", To: "240 ml"},
	{Ingredient: "oil", From: "1 tbsp", To: "15 ml"},
	{Ingredient: "butter", From: "1 tbsp", To: "14 grams"},
}

var unitWords = []string{"gram", "cup", "ml", "tbsp", "tablespoon", "teaspoon", "tsp"}

type (
	KitchenAssistant interface {
		AnswerQuery(ctx context.Context, recipeName, question string) (domain.AssistantAnswer, error)
	}

	kitchenAssistant struct {
		recipeRepository RecipeRepository
		gemini           gemini.GeminiClient
	}
)

func NewKitchenAssistant(recipeRepository RecipeRepository, client gemini.GeminiClient) KitchenAssistant {
	return &kitchenAssistant{
		recipeRepository: recipeRepository,
		gemini:           client,
	}
}

// ConvertMeasurement returns the known conversion for an ingredient.
func ConvertMeasurement(ingredient string) (domain.MeasurementConversion, bool) {
	ingredient = strings.ToLower(strings.TrimSpace(ingredient))
	for _, c := range conversionTable {
		if c.Ingredient == ingredient {
			return c, true
		}
	}
	return domain.MeasurementConversion{}, false
}

// ConversionHints returns the conversions for table ingredients named in a
// question that asks about units. Hints follow table order.
func ConversionHints(question string) []domain.MeasurementConversion {
	hints := []domain.MeasurementConversion{}
	words := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})

	asksUnits := false
	named := make(map[string]bool, len(words))
	for _, w := range words {
		named[strings.TrimSuffix(w, "s")] = true
		named[w] = true
		for _, unit := range unitWords {
			if strings.HasPrefix(w, unit) {
				asksUnits = true
			}
		}
	}
	if !asksUnits {
		return hints
	}

	for _, c := range conversionTable {
		if named[c.Ingredient] {
			hints = append(hints, c)
		}
	}
	return hints
}

// AnswerQuery answers a cooking question about one stored recipe, looked up
// by name and then by slug. The model is told to stay within the recipe.
func (a *kitchenAssistant) AnswerQuery(ctx context.Context, recipeName, question string) (domain.AssistantAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.AssistantAnswer{}, &domain.ValidationError{Field: "question", Reason: "required"}
	}

	recipe, err := a.recipeRepository.GetRecipeByName(ctx, recipeName)
	if errors.Is(err, domain.ErrRecipeNotFound) {
		recipe, err = a.recipeRepository.GetRecipeBySlug(ctx, strings.TrimSpace(recipeName))
	}
	if err != nil {
		return domain.AssistantAnswer{}, err
	}

	text, err := a.gemini.GenerateContent(ctx, []gemini.Part{
		{Text: assistantPrompt(toDomainRecipe(recipe))},
		{Text: "Question: " + question},
	}, gemini.GenerationConfig{
		Temperature: 0.4,
		TopP:        0.9,
		TopK:        40,
	})
	if err != nil {
		return domain.AssistantAnswer{}, err
	}

	return domain.AssistantAnswer{
		RecipeName:      recipe.Name,
		Answer:          strings.TrimSpace(text),
		ConversionHints: ConversionHints(question),
	}, nil
}

func assistantPrompt(r domain.Recipe) string {
	instructions := r.Instructions
	if instructions == "" {
		instructions = "No instructions found."
	}

	return fmt.Sprintf(`You are a kitchen assistant. DO NOT invent recipes.
Context Recipe: %s
Ingredients: %s
Instructions: %s

Your tasks:
- Answer doubts about measurements, ingredient substitution, cooking steps, units
- DO NOT create a new recipe
- DO NOT mention ingredients that are not listed
- If unsure, say: "I am not sure, please verify manually."
`, r.Name, strings.Join(r.Ingredients, ", "), instructions)
}
