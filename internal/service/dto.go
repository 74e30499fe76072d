package service

import (
	"time"

	"github.com/timmy/imagen/internal/domain"
)

// ImageDTO is the read model for a generated image. The same shape is
// returned synchronously by CreateImage and served from the cache/store
// by queries.
type ImageDTO struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Base64Data   string    `json:"base64Data"`
	PlatformUsed string    `json:"platformUsed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClassifiedImageDTO is the read model for a classified image.
type ClassifiedImageDTO struct {
	ID                    string    `json:"id"`
	OriginalURL           string    `json:"originalUrl"`
	ClassifiedImageBase64 string    `json:"classifiedImageBase64"`
	ClassificationResult  string    `json:"classificationResult"`
	ClassifiedAt          time.Time `json:"classifiedAt"`
}

// ImageDTOFromRecord maps a read-model row to its DTO.
func ImageDTOFromRecord(rec *domain.ImageRecord) *ImageDTO {
	return &ImageDTO{
		ID:           rec.ID,
		Description:  rec.Description,
		Base64Data:   rec.Base64Data,
		PlatformUsed: rec.PlatformUsed,
		CreatedAt:    rec.CreatedAt,
	}
}

// ClassifiedImageDTOFromRecord maps a read-model row to its DTO.
func ClassifiedImageDTOFromRecord(rec *domain.ClassifiedImageRecord) *ClassifiedImageDTO {
	return &ClassifiedImageDTO{
		ID:                    rec.ID,
		OriginalURL:           rec.OriginalURL,
		ClassifiedImageBase64: rec.ClassifiedImageBase64,
		ClassificationResult:  rec.ClassificationResult,
		ClassifiedAt:          rec.ClassifiedAt,
	}
}

// ClassifiedCacheKey namespaces cache entries for classified images so
// they never collide with generated-image entries for the same id.
func ClassifiedCacheKey(id string) string {
	return "classified_" + id
}
