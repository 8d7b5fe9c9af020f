package safety

import (
	"strings"

	"Health-Kitchen-Backend/domain"
)

const allergyRuleID = "allergy-match"

type (
	// Verdict is the outcome of evaluating one ingredient.
	Verdict struct {
		IsSafe   bool
		Triggers []domain.Trigger
	}

	Engine struct {
		conditionRules  []Rule
		medicationRules []Rule
	}
)

// NewEngine builds an engine over the given rules. With no rules it uses
// DefaultRules.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	e := &Engine{}
	for _, r := range rules {
		r = r.normalized()
		switch r.Kind {
		case domain.RuleKindCondition:
			e.conditionRules = append(e.conditionRules, r)
		case domain.RuleKindMedication:
			e.medicationRules = append(e.medicationRules, r)
		}
	}
	return e
}

// Evaluate runs condition, allergy and medication rules against itemName in
// that order and collects every rule that fires.
func (e *Engine) Evaluate(conditions domain.ConditionSet, allergies, medications []string, itemName string) Verdict {
	name := strings.ToLower(itemName)
	var triggers []domain.Trigger

	for _, r := range e.conditionRules {
		if conditions.Has(r.Condition) && containsAny(name, r.Keywords) {
			triggers = append(triggers, r.trigger())
		}
	}

	for _, allergy := range allergies {
		a := strings.ToLower(strings.TrimSpace(allergy))
		if a == "" || !strings.Contains(name, a) {
			continue
		}
		triggers = append(triggers, domain.Trigger{
			RuleID:  allergyRuleID,
			Kind:    domain.RuleKindAllergy,
			Message: "Allergy match: " + strings.TrimSpace(allergy),
		})
	}

	for _, r := range e.medicationRules {
		if !containsAny(name, r.Keywords) {
			continue
		}
		for _, med := range medications {
			if containsAny(strings.ToLower(med), r.MedicationKeywords) {
				triggers = append(triggers, r.trigger())
				break
			}
		}
	}

	return Verdict{IsSafe: len(triggers) == 0, Triggers: triggers}
}

// Reason joins the trigger messages, or returns domain.SafeReason.
func (v Verdict) Reason() string {
	if len(v.Triggers) == 0 {
		return domain.SafeReason
	}
	msgs := make([]string, len(v.Triggers))
	for i, t := range v.Triggers {
		msgs[i] = t.Message
	}
	return strings.Join(msgs, "; ")
}

func (v Verdict) Has(kind domain.RuleKind) bool {
	for _, t := range v.Triggers {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

func (r Rule) normalized() Rule {
	r.Condition = strings.ToLower(strings.TrimSpace(r.Condition))
	r.Keywords = lowerAll(r.Keywords)
	r.MedicationKeywords = lowerAll(r.MedicationKeywords)
	return r
}

func (r Rule) trigger() domain.Trigger {
	return domain.Trigger{RuleID: r.ID, Kind: r.Kind, Message: r.Message}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
