package repository

import (
	"context"
	"errors"

	"github.com/timmy/imagen/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageRepository handles read-model rows for generated images.
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ImageRepository: repository instance bound to db.
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Upsert inserts or fully replaces the row keyed by ID. Replaying the same
// event any number of times leaves identical state.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - rec: record to create or replace.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ImageRepository) Upsert(ctx context.Context, rec *domain.ImageRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// GetByID retrieves an image record by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: image ID.
// Returns:
//   - *domain.ImageRecord: record if found.
//   - error: domain.ErrNotFound when no row exists, otherwise the query error.
func (r *ImageRepository) GetByID(ctx context.Context, id string) (*domain.ImageRecord, error) {
	var rec domain.ImageRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
