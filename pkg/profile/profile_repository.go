package profile

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/entities"
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProfileRepository interface {
		SaveProfile(ctx context.Context, snapshot *entities.MasterProfileSnapshot) error
		GetProfileByUserID(ctx context.Context, userID string) (*entities.MasterProfileSnapshot, error)
		UpdateArchiveKey(ctx context.Context, userID string, key string) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// SaveProfile writes the snapshot, replacing any earlier snapshot of the
// same user in full.
func (r *profileRepository) SaveProfile(ctx context.Context, snapshot *entities.MasterProfileSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"last_updated",
				"safe_count",
				"unsafe_count",
				"document",
				"archive_key",
				"updated_at",
			}),
		}).
		Create(snapshot).Error
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.MasterProfileSnapshot, error) {
	var snapshot entities.MasterProfileSnapshot
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *profileRepository) UpdateArchiveKey(ctx context.Context, userID string, key string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MasterProfileSnapshot{}).
		Where("user_id = ?", userID).
		Update("archive_key", key).Error
}
