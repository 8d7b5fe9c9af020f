package safety

import (
	"fmt"
	"os"
	"strings"

	"Health-Kitchen-Backend/domain"

	"gopkg.in/yaml.v2"
)

// Rule is one declarative entry of the rule table.
//
// Condition rules fire when Condition is among the patient's conditions and
// any of Keywords is in the ingredient name. Medication rules fire when any
// of Keywords is in the ingredient name and any of MedicationKeywords is in
// one of the patient's medications. Allergy matching is driven by the
// patient's own allergy list and needs no table entry.
type Rule struct {
	ID                 string          `yaml:"id"`
	Kind               domain.RuleKind `yaml:"kind"`
	Condition          string          `yaml:"condition,omitempty"`
	Keywords           []string        `yaml:"keywords"`
	MedicationKeywords []string        `yaml:"medication_keywords,omitempty"`
	Message            string          `yaml:"message"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the built-in rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        "anxiety-caffeine",
			Kind:      domain.RuleKindCondition,
			Condition: "anxiety",
			Keywords:  []string{"caffeine", "coffee"},
			Message:   "Caffeine may trigger anxiety/palpitations",
		},
		{
			ID:        "gerd-trigger-food",
			Kind:      domain.RuleKindCondition,
			Condition: "gerd",
			Keywords:  []string{"spicy", "acidic", "tomato", "coffee"},
			Message:   "GERD trigger food",
		},
		{
			ID:                 "grapefruit-interaction",
			Kind:               domain.RuleKindMedication,
			Keywords:           []string{"grapefruit"},
			MedicationKeywords: []string{"statin", "benzodiazepine"},
			Message:            "⚠ Grapefruit-medication interaction risk",
		},
		{
			ID:                 "caffeine-benzodiazepine",
			Kind:               domain.RuleKindMedication,
			Keywords:           []string{"caffeine"},
			MedicationKeywords: []string{"lorazepam", "benzodiazepine"},
			Message:            "⚠ Avoid caffeine while on benzodiazepines",
		},
	}
}

// LoadRules reads additional rules from a YAML file of the form
//
//	rules:
//	  - id: diabetes-sugar
//	    kind: condition
//	    condition: diabetes
//	    keywords: [sugar, syrup]
//	    message: High sugar food
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse rules file: %w", err)
	}

	for i, r := range file.Rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return file.Rules, nil
}

func (r Rule) validate() error {
	if r.ID == "" {
		return fmt.Errorf("missing id")
	}
	if r.Message == "" {
		return fmt.Errorf("%s: missing message", r.ID)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("%s: missing keywords", r.ID)
	}
	switch r.Kind {
	case domain.RuleKindCondition:
		if strings.TrimSpace(r.Condition) == "" {
			return fmt.Errorf("%s: condition rule without condition", r.ID)
		}
	case domain.RuleKindMedication:
		if len(r.MedicationKeywords) == 0 {
			return fmt.Errorf("%s: medication rule without medication_keywords", r.ID)
		}
	default:
		return fmt.Errorf("%s: unsupported kind %q", r.ID, r.Kind)
	}
	return nil
}
