package repository

import (
	"context"
	"errors"

	"github.com/timmy/imagen/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClassifiedImageRepository handles read-model rows for classified images.
type ClassifiedImageRepository struct {
	db *gorm.DB
}

// NewClassifiedImageRepository creates a new ClassifiedImageRepository.
func NewClassifiedImageRepository(db *gorm.DB) *ClassifiedImageRepository {
	return &ClassifiedImageRepository{db: db}
}

// Upsert inserts or fully replaces the row keyed by ID.
func (r *ClassifiedImageRepository) Upsert(ctx context.Context, rec *domain.ClassifiedImageRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// GetByID retrieves a classified image record by its ID. Returns
// domain.ErrNotFound when no row exists.
func (r *ClassifiedImageRepository) GetByID(ctx context.Context, id string) (*domain.ClassifiedImageRecord, error) {
	var rec domain.ClassifiedImageRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
