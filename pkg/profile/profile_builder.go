package profile

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/pkg/expiry"
	"Health-Kitchen-Backend/pkg/nutrition"
	"Health-Kitchen-Backend/pkg/safety"
	"fmt"
	"github.com/go-playground/validator/v10"
	"time"
)

// Builder assembles master profiles. It holds no per-build state and is safe
// for concurrent use.
type Builder struct {
	engine   *safety.Engine
	validate *validator.Validate
}

func NewBuilder(engine *safety.Engine, validate *validator.Validate) *Builder {
	if engine == nil {
		engine = safety.NewEngine()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &Builder{engine: engine, validate: validate}
}

// Build evaluates every item against the medical record in input order and
// derives the compatibility summary and nutrition guidance. Items are
// validated first; a nameless item fails the whole build with a
// *domain.ValidationError.
func (b *Builder) Build(record domain.MedicalRecord, items []domain.IngredientItem, reference time.Time) (domain.MasterProfile, error) {
	for i := range items {
		if err := b.validate.Struct(items[i]); err != nil {
			return domain.MasterProfile{}, domain.NewValidationError(fmt.Sprintf("items[%d]", i), err)
		}
	}

	record = record.Normalized()
	conditions := record.ConditionSet()

	summary := domain.CompatibilitySummary{
		SafeItems:                     []string{},
		RiskyItems:                    []string{},
		AvoidItems:                    []string{},
		ExpiryAlerts:                  []string{},
		MedicationInteractionWarnings: []string{},
		Notes:                         domain.CompatibilityNotes,
	}
	records := make([]domain.IngredientRecord, 0, len(items))

	for _, item := range items {
		verdict := b.engine.Evaluate(conditions, record.Allergies, record.Medications, item.Name)
		status := expiry.Classify(item.ExpiryDate, reference)

		triggers := verdict.Triggers
		if triggers == nil {
			triggers = []domain.Trigger{}
		}
		rec := domain.IngredientRecord{
			Name:                  item.Name,
			Category:              item.Category,
			Quantity:              item.Quantity,
			ExpiryDate:            item.ExpiryDate,
			ExpiryStatus:          status.Label,
			ExpiryCategory:        status.Category,
			DietaryClassification: item.DietaryClassification,
			IsSafeForPatient:      verdict.IsSafe,
			Reason:                verdict.Reason(),
			Triggers:              triggers,
		}
		records = append(records, rec)

		switch {
		case rec.IsSafeForPatient:
			summary.SafeItems = append(summary.SafeItems, rec.Name)
		case verdict.Has(domain.RuleKindAllergy):
			summary.AvoidItems = append(summary.AvoidItems, rec.Name)
		default:
			summary.RiskyItems = append(summary.RiskyItems, rec.Name)
		}

		if status.Category.NeedsAlert() {
			summary.ExpiryAlerts = append(summary.ExpiryAlerts, rec.Name)
		}

		if verdict.Has(domain.RuleKindMedication) {
			summary.MedicationInteractionWarnings = append(summary.MedicationInteractionWarnings,
				fmt.Sprintf("%s - %s", rec.Name, rec.Reason))
		}
	}

	avoidToday := make([]string, 0, len(summary.RiskyItems)+len(summary.AvoidItems))
	avoidToday = append(avoidToday, summary.RiskyItems...)
	avoidToday = append(avoidToday, summary.AvoidItems...)

	return domain.MasterProfile{
		PatientProfile: record.PatientProfile,
		MedicalReport:  record,
		IngredientsProfile: domain.IngredientsProfile{
			LastUpdated: reference.Format(domain.DateLayout),
			Items:       records,
		},
		CompatibilitySummary: summary,
		NutritionCoach: domain.NutritionCoach{
			DailyMealRecommendations: nutrition.Recommend(conditions, records),
			FoodsToAvoidToday:        avoidToday,
			SafeSubstitutes:          nutrition.Substitutes(summary.AvoidItems),
		},
	}, nil
}
