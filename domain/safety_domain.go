package domain

import "strings"

type RuleKind string

const (
	RuleKindCondition  RuleKind = "condition"
	RuleKindAllergy    RuleKind = "allergy"
	RuleKindMedication RuleKind = "medication_interaction"
)

// SafeReason is the reason text of an ingredient no rule fired for.
const SafeReason = "Safe to use"

type (
	// Trigger records one rule that fired for an ingredient.
	Trigger struct {
		RuleID  string   `json:"rule_id"`
		Kind    RuleKind `json:"kind"`
		Message string   `json:"message"`
	}

	// ConditionSet holds normalized (trimmed, lowercase) condition names.
	ConditionSet map[string]struct{}
)

func NewConditionSet(conditions []string) ConditionSet {
	set := make(ConditionSet, len(conditions))
	for _, c := range conditions {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}

func (s ConditionSet) Has(condition string) bool {
	_, ok := s[strings.ToLower(condition)]
	return ok
}

// HasMatching reports whether any condition contains keyword.
func (s ConditionSet) HasMatching(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for c := range s {
		if strings.Contains(c, keyword) {
			return true
		}
	}
	return false
}
