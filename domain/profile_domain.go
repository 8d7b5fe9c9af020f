package domain

import (
	"encoding/json"
	"errors"
)

var (
	MessageSuccessBuildProfile = "master profile built successfully"
	MessageSuccessGetProfile   = "master profile retrieved successfully"
	MessageSuccessSplitProfile = "ingredient split retrieved successfully"

	MessageFailedBuildProfile = "failed to build master profile"
	MessageFailedGetProfile   = "failed to retrieve master profile"
	MessageFailedSplitProfile = "failed to split ingredients"

	ErrProfileNotFound = errors.New("master profile not found")
	ErrMissingDocument = errors.New("medical_record and ingredients documents are required")
)

const CompatibilityNotes = "Generated based on conditions + allergies + medications + food rules."

type (
	// MasterProfile is the aggregate document consumed by every downstream
	// recipe step. Field order is the serialized key order.
	MasterProfile struct {
		PatientProfile       PatientProfile       `json:"patient_profile"`
		MedicalReport        MedicalRecord        `json:"medical_report"`
		IngredientsProfile   IngredientsProfile   `json:"ingredients_profile"`
		CompatibilitySummary CompatibilitySummary `json:"compatibility_summary"`
		NutritionCoach       NutritionCoach       `json:"nutrition_coach"`
	}

	IngredientsProfile struct {
		LastUpdated string             `json:"last_updated"`
		Items       []IngredientRecord `json:"items"`
	}

	CompatibilitySummary struct {
		SafeItems                     []string `json:"safe_items"`
		RiskyItems                    []string `json:"risky_items"`
		AvoidItems                    []string `json:"avoid_items"`
		ExpiryAlerts                  []string `json:"expiry_alerts"`
		MedicationInteractionWarnings []string `json:"medication_interaction_warnings"`
		Notes                         string   `json:"notes"`
	}

	NutritionCoach struct {
		DailyMealRecommendations []string `json:"daily_meal_recommendations"`
		FoodsToAvoidToday        []string `json:"foods_to_avoid_today"`
		SafeSubstitutes          []string `json:"safe_substitutes"`
	}

	UnsafeIngredient struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	}

	IngredientSplitResponse struct {
		Safe   []string           `json:"safe"`
		Unsafe []UnsafeIngredient `json:"unsafe"`
	}

	// BuildProfileRequest carries the two extraction documents verbatim so
	// they can be type-checked before decoding.
	BuildProfileRequest struct {
		MedicalRecord json.RawMessage `json:"medical_record"`
		Ingredients   json.RawMessage `json:"ingredients"`
		NotifyEmail   string          `json:"notify_email" validate:"omitempty,email"`
	}
)

// Conditions returns the condition set the profile was built against.
func (p MasterProfile) Conditions() ConditionSet {
	return p.MedicalReport.ConditionSet()
}
