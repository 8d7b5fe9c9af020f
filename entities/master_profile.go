package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MasterProfileSnapshot is the persisted master profile of one user. A new
// build replaces the whole row.
type MasterProfileSnapshot struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	LastUpdated string         `json:"last_updated"`
	SafeCount   int            `json:"safe_count"`
	UnsafeCount int            `json:"unsafe_count"`
	Document    datatypes.JSON `json:"document"`
	ArchiveKey  string         `json:"archive_key,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

func (p *MasterProfileSnapshot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
