package recipe

import (
	"context"
	"errors"
	"testing"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMeasurement(t *testing.T) {
	tests := []struct {
		ingredient string
		want       domain.MeasurementConversion
		found      bool
	}{
		{"flour", domain.MeasurementConversion{Ingredient: "flour", From: "1 cup", To: "120 grams"}, true},
		{" Butter ", domain.MeasurementConversion{Ingredient: "butter", From: "1 tbsp", To: "14 grams"}, true},
		{"MILK", domain.MeasurementConversion{Ingredient: "milk", From: "1 cup", To: "240 ml"}, true},
		{"saffron", domain.MeasurementConversion{}, false},
		{"", domain.MeasurementConversion{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			got, ok := ConvertMeasurement(tt.ingredient)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	flour, _ := ConvertMeasurement("flour")
	assert.Equal(t, "1 cup flour ≈ 120 grams", flour.String())
}

func TestConversionHints(t *testing.T) {
	hints := ConversionHints("How many grams is 1 cup of Sugar and flour?")
	assert.Equal(t, []domain.MeasurementConversion{
		{Ingredient: "flour", From: "1 cup", To: "120 grams"},
		{Ingredient: "sugar", From: "1 cup", To: "200 grams"},
	}, hints)

	assert.Empty(t, ConversionHints("Can I replace the butter with oil?"))
	assert.Empty(t, ConversionHints("How many cups of paneer?"))
}

func newTestAssistant(t *testing.T, fake *fakeGemini) KitchenAssistant {
	t.Helper()
	return NewKitchenAssistant(NewRecipeRepository(testutil.NewTestDB(t, true)), fake)
}

func TestAnswerQuery(t *testing.T) {
	fake := &fakeGemini{reply: "  Use about 185 grams of rice.\n"}
	assistant := newTestAssistant(t, fake)

	answer, err := assistant.AnswerQuery(context.Background(), "moong dal khichdi", "How many grams of rice in a cup?")
	require.NoError(t, err)

	assert.Equal(t, "Moong Dal Khichdi", answer.RecipeName)
	assert.Equal(t, "Use about 185 grams of rice.", answer.Answer)
	assert.Equal(t, []domain.MeasurementConversion{{Ingredient: "rice", From: "1 cup", To: "185 grams"}}, answer.ConversionHints)

	assert.Equal(t, 0.4, fake.cfg.Temperature)
	assert.Contains(t, fake.prompt, "Context Recipe: Moong Dal Khichdi")
	assert.Contains(t, fake.prompt, "Ingredients: moong dal, rice, ghee, salt")
	assert.Contains(t, fake.prompt, "Instructions: Pressure cook")
}

func TestAnswerQuery_BySlug(t *testing.T) {
	assistant := newTestAssistant(t, &fakeGemini{reply: "Yes, ghee works."})

	answer, err := assistant.AnswerQuery(context.Background(), "paneer-butter-masala", "Can I use ghee instead of butter?")
	require.NoError(t, err)
	assert.Equal(t, "Paneer Butter Masala", answer.RecipeName)
	assert.Empty(t, answer.ConversionHints)
}

func TestAnswerQuery_RecipeNotFound(t *testing.T) {
	fake := &fakeGemini{reply: "should not be asked"}
	assistant := newTestAssistant(t, fake)

	_, err := assistant.AnswerQuery(context.Background(), "Paneer Gravy", "How long do I fry the onions?")

	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.Empty(t, fake.prompt)
}

func TestAnswerQuery_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	assistant := newTestAssistant(t, &fakeGemini{err: boom})

	_, err := assistant.AnswerQuery(context.Background(), "Moong Dal Khichdi", "  ")
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "question", vErr.Field)

	_, err = assistant.AnswerQuery(context.Background(), "Moong Dal Khichdi", "How much salt?")
	assert.ErrorIs(t, err, boom)
}
