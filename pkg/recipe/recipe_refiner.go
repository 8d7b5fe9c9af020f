package recipe

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/pkg/gemini"
	"Health-Kitchen-Backend/pkg/profile"
	"context"
	"encoding/json"
	"fmt"
)

type (
	RecipeRefiner interface {
		Refine(ctx context.Context, master domain.MasterProfile, recipes []domain.ExternalRecipe) (domain.RefinementResult, error)
	}

	recipeRefiner struct {
		gemini gemini.GeminiClient
	}
)

func NewRecipeRefiner(client gemini.GeminiClient) RecipeRefiner {
	return &recipeRefiner{gemini: client}
}

// Refine asks the model to drop recipes with unsafe ingredients and annotate
// the rest. A reply that is not a JSON list of recipes is returned verbatim
// in RawOutput.
func (r *recipeRefiner) Refine(ctx context.Context, master domain.MasterProfile, recipes []domain.ExternalRecipe) (domain.RefinementResult, error) {
	prompt, err := refinementPrompt(master, recipes)
	if err != nil {
		return domain.RefinementResult{}, err
	}

	text, err := r.gemini.GenerateContent(ctx, []gemini.Part{{Text: prompt}}, gemini.GenerationConfig{
		Temperature: 0.2,
		TopP:        0.8,
		TopK:        40,
	})
	if err != nil {
		return domain.RefinementResult{}, err
	}

	return parseRefinement(text), nil
}

func parseRefinement(text string) domain.RefinementResult {
	var refined []domain.RefinedRecipe
	if err := json.Unmarshal([]byte(gemini.ExtractArray(text)), &refined); err == nil && len(refined) > 0 {
		return domain.RefinementResult{Recipes: refined}
	}

	var wrapped struct {
		Recipes []domain.RefinedRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(gemini.ExtractObject(text)), &wrapped); err == nil && len(wrapped.Recipes) > 0 {
		return domain.RefinementResult{Recipes: wrapped.Recipes}
	}

	return domain.RefinementResult{RawOutput: text}
}

func refinementPrompt(master domain.MasterProfile, recipes []domain.ExternalRecipe) (string, error) {
	split := profile.Split(master)

	sections := []struct {
		title string
		value any
	}{
		{"Patient profile", master.PatientProfile},
		{"Patient Conditions", master.MedicalReport.Conditions},
		{"Safe Ingredients", split.Safe},
		{"Unsafe Ingredients", profile.UnsafeNames(split)},
		{"Raw API Recipes", recipes},
	}

	prompt := "You are a professional nutritionist AI.\n"
	for _, s := range sections {
		body, err := json.MarshalIndent(s.value, "", "  ")
		if err != nil {
			return "", err
		}
		prompt += fmt.Sprintf("\n%s:\n%s\n", s.title, body)
	}
	prompt += `
TASKS:
1. Remove any recipe containing unsafe ingredients.
2. For each safe recipe, output a JSON array of objects with the fields:
   recipe_name, why_safe, medical_benefit, serving_advice, caution_note
3. STRICT JSON ONLY.
`
	return prompt, nil
}
