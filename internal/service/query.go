package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/timmy/imagen/internal/cache"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/repository"
)

// QueryService answers reads from the projected read models, cache first.
// Cache failures never fail a read; the relational store is the
// authoritative fallback.
type QueryService struct {
	images     *repository.ImageRepository
	classified *repository.ClassifiedImageRepository
	cache      cache.Cache
}

// NewQueryService creates a QueryService.
// Parameters:
//   - images: image read-model repository.
//   - classified: classified-image read-model repository.
//   - c: cache client.
// Returns:
//   - *QueryService: initialized service.
func NewQueryService(images *repository.ImageRepository, classified *repository.ClassifiedImageRepository, c cache.Cache) *QueryService {
	return &QueryService{images: images, classified: classified, cache: c}
}

// GetImageByID returns the full image DTO for an ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: image identifier.
// Returns:
//   - *ImageDTO: the image, from cache or store.
//   - error: domain.ErrNotFound when no projection exists yet.
func (s *QueryService) GetImageByID(ctx context.Context, id string) (*ImageDTO, error) {
	var dto ImageDTO
	if s.cacheGet(ctx, id, &dto) {
		return &dto, nil
	}

	record, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := ImageDTOFromRecord(record)
	s.cacheSet(ctx, id, result)
	return result, nil
}

// GetImageBase64 returns only the base64 payload for an ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: image identifier.
// Returns:
//   - string: base64-encoded image data.
//   - error: domain.ErrNotFound when no projection exists yet.
func (s *QueryService) GetImageBase64(ctx context.Context, id string) (string, error) {
	dto, err := s.GetImageByID(ctx, id)
	if err != nil {
		return "", err
	}
	return dto.Base64Data, nil
}

// GetClassifiedImageByID returns the classified-image DTO for an ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: classified image identifier.
// Returns:
//   - *ClassifiedImageDTO: the classified image, from cache or store.
//   - error: domain.ErrNotFound when no projection exists yet.
func (s *QueryService) GetClassifiedImageByID(ctx context.Context, id string) (*ClassifiedImageDTO, error) {
	key := ClassifiedCacheKey(id)

	var dto ClassifiedImageDTO
	if s.cacheGet(ctx, key, &dto) {
		return &dto, nil
	}

	record, err := s.classified.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := ClassifiedImageDTOFromRecord(record)
	s.cacheSet(ctx, key, result)
	return result, nil
}

// cacheGet loads and decodes a cached DTO. A corrupt entry counts as a
// miss so the store can repair it.
func (s *QueryService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.CtxWarn(ctx, "Cache read failed for key %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.CtxWarn(ctx, "Corrupt cache entry for key %s, falling back to store: %v", key, err)
		return false
	}
	return true
}

// cacheSet repopulates the cache after a store read, best effort.
func (s *QueryService) cacheSet(ctx context.Context, key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil && !errors.Is(err, context.Canceled) {
		logger.CtxWarn(ctx, "Cache write failed for key %s: %v", key, err)
	}
}
