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

// ImageProjector projects ImageCreatedEvent into the images table and the
// cache.
type ImageProjector struct {
	repo  *repository.ImageRepository
	cache cache.Cache
}

// NewImageProjector creates an ImageProjector.
// Parameters:
//   - repo: image read-model repository.
//   - c: cache client.
// Returns:
//   - *ImageProjector: initialized projector.
func NewImageProjector(repo *repository.ImageRepository, c cache.Cache) *ImageProjector {
	return &ImageProjector{repo: repo, cache: c}
}

// Apply upserts the read-model row and overwrites the cache entry for one
// event. Payload fields are revalidated through the value objects before
// anything is persisted; redelivery of the same event is a no-op in effect.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ev: decoded creation event.
// Returns:
//   - error: non-nil when validation or the database write fails.
func (p *ImageProjector) Apply(ctx context.Context, ev *domain.ImageCreatedEvent) error {
	desc, err := domain.NewImageDescription(ev.Description)
	if err != nil {
		return fmt.Errorf("invalid description in event %s: %w", ev.ID, err)
	}
	data, err := domain.NewBase64Data(ev.Base64Data)
	if err != nil {
		return fmt.Errorf("invalid image data in event %s: %w", ev.ID, err)
	}
	platform, err := domain.NewPlatform(ev.PlatformUsed)
	if err != nil {
		return fmt.Errorf("invalid platform in event %s: %w", ev.ID, err)
	}

	record := domain.NewImageRecord(ev.ID, desc, data, platform, ev.Timestamp)
	if err := p.repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert image %s: %w", ev.ID, err)
	}

	payload, err := json.Marshal(service.ImageDTOFromRecord(record))
	if err != nil {
		return fmt.Errorf("failed to encode image %s for cache: %w", ev.ID, err)
	}
	if err := p.cache.Set(ctx, ev.ID, string(payload)); err != nil {
		// The row is authoritative; a reader will repopulate on the next miss.
		logger.CtxWarn(ctx, "Cache write failed for image %s: %v", ev.ID, err)
	}
	return nil
}
