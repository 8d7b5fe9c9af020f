// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Slug         string         `gorm:"uniqueIndex" json:"slug"`
	Name         string         `json:"name"`
	Cuisine      string         `json:"cuisine"`
	GlutenFree   bool           `json:"gluten_free"`
	Vegan        bool           `json:"vegan"`
	DiabeticSafe bool           `gorm:"index" json:"diabetic_safe"`
	RenalSafe    bool           `gorm:"index" json:"renal_safe"`
	Ingredients  datatypes.JSON `json:"ingredients"`
	Instructions string         `json:"instructions" gorm:"type:text"`
	Calories     int            `json:"calories"`
	SugarG       int            `json:"sugar_g"`
	SodiumMg     int            `json:"sodium_mg"`

	Timestamp
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
