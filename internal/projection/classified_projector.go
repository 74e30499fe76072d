package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timmy/imagen/internal/cache"
	"github.com/timmy/imagen/internal/domain"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/repository"
	"github.com/timmy/imagen/internal/service"
)

// ClassifiedImageProjector projects ImageClassifiedEvent into the
// classified_images table and the cache.
type ClassifiedImageProjector struct {
	repo  *repository.ClassifiedImageRepository
	cache cache.Cache
}

// NewClassifiedImageProjector creates a ClassifiedImageProjector.
// Parameters:
//   - repo: classified-image read-model repository.
//   - c: cache client.
// Returns:
//   - *ClassifiedImageProjector: initialized projector.
func NewClassifiedImageProjector(repo *repository.ClassifiedImageRepository, c cache.Cache) *ClassifiedImageProjector {
	return &ClassifiedImageProjector{repo: repo, cache: c}
}

// Apply upserts the read-model row and overwrites the cache entry for one
// event.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ev: decoded classification event.
// Returns:
//   - error: non-nil when validation or the database write fails.
func (p *ClassifiedImageProjector) Apply(ctx context.Context, ev *domain.ImageClassifiedEvent) error {
	originalURL, err := domain.NewImageURL(ev.OriginalURL)
	if err != nil {
		return fmt.Errorf("invalid URL in event %s: %w", ev.ID, err)
	}
	data, err := domain.NewBase64Data(ev.ClassifiedImageBase64)
	if err != nil {
		return fmt.Errorf("invalid image data in event %s: %w", ev.ID, err)
	}
	result, err := domain.NewClassificationResult(ev.ClassificationResult)
	if err != nil {
		return fmt.Errorf("invalid classification in event %s: %w", ev.ID, err)
	}

	record := domain.NewClassifiedImageRecord(ev.ID, originalURL, data, result, ev.Timestamp)
	if err := p.repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert classified image %s: %w", ev.ID, err)
	}

	payload, err := json.Marshal(service.ClassifiedImageDTOFromRecord(record))
	if err != nil {
		return fmt.Errorf("failed to encode classified image %s for cache: %w", ev.ID, err)
	}
	if err := p.cache.Set(ctx, service.ClassifiedCacheKey(ev.ID), string(payload)); err != nil {
		logger.CtxWarn(ctx, "Cache write failed for classified image %s: %v", ev.ID, err)
	}
	return nil
}
