package safety

import (
	"os"
	"path/filepath"
	"testing"

	"Health-Kitchen-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_AnxietyCoffee(t *testing.T) {
	engine := NewEngine()

	v := engine.Evaluate(domain.NewConditionSet([]string{"anxiety"}), nil, nil, "Black Coffee")

	assert.False(t, v.IsSafe)
	assert.Contains(t, v.Reason(), "Caffeine may trigger anxiety/palpitations")
	require.Len(t, v.Triggers, 1)
	assert.Equal(t, "anxiety-caffeine", v.Triggers[0].RuleID)
	assert.Equal(t, domain.RuleKindCondition, v.Triggers[0].Kind)
}

func TestEvaluate_LorazepamCaffeine(t *testing.T) {
	engine := NewEngine()

	v := engine.Evaluate(domain.NewConditionSet(nil), nil, []string{"Lorazepam"}, "Caffeine Energy Drink")

	assert.False(t, v.IsSafe)
	assert.Equal(t, "⚠ Avoid caffeine while on benzodiazepines", v.Reason())
	assert.True(t, v.Has(domain.RuleKindMedication))
}

func TestEvaluate_NoClinicalDataIsSafe(t *testing.T) {
	engine := NewEngine()

	for _, name := range []string{"Black Coffee", "Grapefruit Juice", "Spicy Tomato Sauce", "Milk", ""} {
		v := engine.Evaluate(domain.NewConditionSet(nil), nil, nil, name)
		assert.True(t, v.IsSafe, name)
		assert.Equal(t, domain.SafeReason, v.Reason(), name)
		assert.Empty(t, v.Triggers, name)
	}
}

func TestEvaluate_AccumulatesInFamilyOrder(t *testing.T) {
	engine := NewEngine()
	conditions := domain.NewConditionSet([]string{"Anxiety", "GERD"})

	v := engine.Evaluate(conditions, []string{"coffee"}, []string{"Benzodiazepine"}, "Caffeine Coffee")

	require.Len(t, v.Triggers, 4)
	assert.Equal(t, []domain.RuleKind{
		domain.RuleKindCondition,
		domain.RuleKindCondition,
		domain.RuleKindAllergy,
		domain.RuleKindMedication,
	}, []domain.RuleKind{v.Triggers[0].Kind, v.Triggers[1].Kind, v.Triggers[2].Kind, v.Triggers[3].Kind})
	assert.Equal(t,
		"Caffeine may trigger anxiety/palpitations; GERD trigger food; Allergy match: coffee; ⚠ Avoid caffeine while on benzodiazepines",
		v.Reason())
}

func TestEvaluate_AllergyIsCaseInsensitive(t *testing.T) {
	engine := NewEngine()

	v := engine.Evaluate(domain.NewConditionSet(nil), []string{"Peanut", "  "}, nil, "Roasted PEANUTS")

	assert.False(t, v.IsSafe)
	assert.Equal(t, "Allergy match: Peanut", v.Reason())
	assert.True(t, v.Has(domain.RuleKindAllergy))
}

func TestEvaluate_MedicationRuleFiresOncePerItem(t *testing.T) {
	engine := NewEngine()

	v := engine.Evaluate(domain.NewConditionSet(nil), nil, []string{"Atorvastatin", "Simvastatin"}, "Grapefruit")

	require.Len(t, v.Triggers, 1)
	assert.Equal(t, "⚠ Grapefruit-medication interaction risk", v.Reason())
}

func TestEvaluate_ConditionNeedsExactMembership(t *testing.T) {
	engine := NewEngine()

	v := engine.Evaluate(domain.NewConditionSet([]string{"mild anxiety disorder"}), nil, nil, "Coffee")

	assert.True(t, v.IsSafe)
}

func TestNewEngine_CustomRules(t *testing.T) {
	engine := NewEngine(Rule{
		ID:        "diabetes-sugar",
		Kind:      domain.RuleKindCondition,
		Condition: "Diabetes",
		Keywords:  []string{"Sugar", "syrup"},
		Message:   "High sugar food",
	})

	v := engine.Evaluate(domain.NewConditionSet([]string{"diabetes"}), nil, nil, "Maple Syrup")
	assert.False(t, v.IsSafe)
	assert.Equal(t, "High sugar food", v.Reason())

	v = engine.Evaluate(domain.NewConditionSet([]string{"anxiety"}), nil, nil, "Coffee")
	assert.True(t, v.IsSafe)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - id: diabetes-sugar
    kind: condition
    condition: diabetes
    keywords: [sugar, syrup]
    message: High sugar food
  - id: warfarin-greens
    kind: medication_interaction
    keywords: [kale, spinach]
    medication_keywords: [warfarin]
    message: Vitamin K may affect warfarin
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	engine := NewEngine(append(DefaultRules(), rules...)...)
	v := engine.Evaluate(domain.NewConditionSet(nil), nil, []string{"Warfarin 5mg"}, "Baby Spinach")
	assert.False(t, v.IsSafe)
	assert.Equal(t, "Vitamin K may affect warfarin", v.Reason())
}

func TestLoadRules_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRules(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - id: x\n    kind: condition\n    keywords: [a]\n    message: m\n"), 0o600))
	_, err = LoadRules(path)
	assert.ErrorContains(t, err, "condition rule without condition")

	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - id: x\n    kind: allergy\n    keywords: [a]\n    message: m\n"), 0o600))
	_, err = LoadRules(path)
	assert.ErrorContains(t, err, "unsupported kind")
}
