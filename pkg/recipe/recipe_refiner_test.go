package recipe

import (
	"context"
	"errors"
	"testing"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	reply  string
	err    error
	prompt string
	cfg    gemini.GenerationConfig
}

func (f *fakeGemini) GenerateContent(ctx context.Context, parts []gemini.Part, cfg gemini.GenerationConfig) (string, error) {
	if len(parts) > 0 {
		f.prompt = parts[0].Text
	}
	f.cfg = cfg
	return f.reply, f.err
}

func sampleMaster() domain.MasterProfile {
	return domain.MasterProfile{
		PatientProfile: domain.PatientProfile{"name": "Asha"},
		MedicalReport: domain.MedicalRecord{
			Conditions: []string{"GERD"},
			Allergies:  domain.AllergyList{"peanut"},
		},
		IngredientsProfile: domain.IngredientsProfile{
			Items: []domain.IngredientRecord{
				{Name: "Rice", IsSafeForPatient: true, Reason: domain.SafeReason},
				{Name: "Tomato", Reason: "GERD trigger food"},
			},
		},
	}
}

func TestRefine_ParsesArray(t *testing.T) {
	fake := &fakeGemini{reply: "```json\n[{\"recipe_name\":\"Khichdi\",\"why_safe\":\"mild\",\"medical_benefit\":\"fibre\",\"serving_advice\":\"warm\",\"caution_note\":\"none\"}]\n```"}

	result, err := NewRecipeRefiner(fake).Refine(context.Background(), sampleMaster(), []domain.ExternalRecipe{{ID: 1, Title: "Khichdi"}})
	require.NoError(t, err)

	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Khichdi", result.Recipes[0].RecipeName)
	assert.Equal(t, "fibre", result.Recipes[0].MedicalBenefit)
	assert.Empty(t, result.RawOutput)

	assert.Equal(t, 0.2, fake.cfg.Temperature)
	assert.Contains(t, fake.prompt, "Patient Conditions")
	assert.Contains(t, fake.prompt, `"Tomato"`)
	assert.Contains(t, fake.prompt, `"title": "Khichdi"`)
}

func TestRefine_WrappedObject(t *testing.T) {
	fake := &fakeGemini{reply: `Here you go: {"recipes":[{"recipe_name":"Dal"}]}`}

	result, err := NewRecipeRefiner(fake).Refine(context.Background(), sampleMaster(), nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Dal", result.Recipes[0].RecipeName)
}

func TestRefine_RawFallback(t *testing.T) {
	fake := &fakeGemini{reply: "I could not find any safe recipe."}

	result, err := NewRecipeRefiner(fake).Refine(context.Background(), sampleMaster(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Recipes)
	assert.Equal(t, "I could not find any safe recipe.", result.RawOutput)
}

func TestRefine_ClientError(t *testing.T) {
	fake := &fakeGemini{err: errors.New("boom")}

	_, err := NewRecipeRefiner(fake).Refine(context.Background(), sampleMaster(), nil)
	assert.EqualError(t, err, "boom")
}
