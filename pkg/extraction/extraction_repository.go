package extraction

import (
	"Health-Kitchen-Backend/entities"
	"context"
	"gorm.io/gorm"
)

type (
	ExtractionRepository interface {
		CreateScan(ctx context.Context, scan *entities.ExtractionScan) error
		GetScansByUserID(ctx context.Context, userID string, limit int) ([]*entities.ExtractionScan, error)
	}

	extractionRepository struct {
		db *gorm.DB
	}
)

func NewExtractionRepository(db *gorm.DB) ExtractionRepository {
	return &extractionRepository{db: db}
}

func (r *extractionRepository) CreateScan(ctx context.Context, scan *entities.ExtractionScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

// GetScansByUserID returns the newest scans first.
func (r *extractionRepository) GetScansByUserID(ctx context.Context, userID string, limit int) ([]*entities.ExtractionScan, error) {
	var scans []*entities.ExtractionScan
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}
