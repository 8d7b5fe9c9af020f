package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScanKindMedical     = "medical"
	ScanKindIngredients = "ingredients"

	ScanStatusProcessed = "Processed"
	ScanStatusFailed    = "Failed"
)

// ExtractionScan logs one document or photo sent to the extraction model.
type ExtractionScan struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"` // "Processed", "Failed"
	RawOutput string    `json:"raw_output,omitempty" gorm:"type:text"`
	Error     string    `json:"error,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

func (s *ExtractionScan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
