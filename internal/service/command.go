package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/imagen/internal/domain"
	"github.com/timmy/imagen/internal/eventlog"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/provider"
)

// GeneratorResolver resolves an image generator by platform name.
// *provider.Factory implements it.
type GeneratorResolver interface {
	Generator(platform string) provider.ImageGenerator
}

// CommandService handles the two write commands. Each successful command
// appends exactly one event to the log and returns a DTO built from the
// command's own outputs; read-model persistence belongs to the
// projection dispatcher, never to this path.
type CommandService struct {
	generators GeneratorResolver
	converter  provider.URLConverter
	classifier provider.ImageClassifier
	log        eventlog.Log
	stream     string
}

// NewCommandService creates a CommandService.
// Parameters:
//   - generators: per-platform image generator resolver.
//   - converter: URL download capability.
//   - classifier: image classification capability.
//   - log: event log client.
//   - stream: stream identifier events are appended to.
// Returns:
//   - *CommandService: initialized service.
func NewCommandService(
	generators GeneratorResolver,
	converter provider.URLConverter,
	classifier provider.ImageClassifier,
	log eventlog.Log,
	stream string,
) *CommandService {
	return &CommandService{
		generators: generators,
		converter:  converter,
		classifier: classifier,
		log:        log,
		stream:     stream,
	}
}

// CreateImage generates an image for a description on the requested
// platform (default "public") and appends an ImageCreatedEvent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - description: prompt text.
//   - platformRequested: optional platform name; empty means "public".
// Returns:
//   - *ImageDTO: response built from the command outputs.
//   - error: *domain.ValidationError on bad input, *domain.ProviderError on
//     generation failure, or a wrapped append error.
func (s *CommandService) CreateImage(ctx context.Context, description, platformRequested string) (*ImageDTO, error) {
	desc, err := domain.NewImageDescription(description)
	if err != nil {
		return nil, err
	}

	platformName := strings.ToLower(strings.TrimSpace(platformRequested))
	if platformName == "" {
		platformName = "public"
	}
	platform, err := domain.NewPlatform(platformName)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Generating image on platform %q for description: %q", platformName, description)

	b64, err := s.generators.Generator(platformName).GenerateImage(ctx, desc.String())
	if err != nil {
		return nil, &domain.ProviderError{Op: "generate", Err: err}
	}
	if b64 == "" {
		return nil, &domain.ProviderError{Op: "generate", Err: fmt.Errorf("empty image data")}
	}
	data, err := domain.NewBase64Data(b64)
	if err != nil {
		return nil, &domain.ProviderError{Op: "generate", Err: err}
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()
	record := domain.NewImageRecord(id, desc, data, platform, createdAt)

	if err := s.append(ctx, record.Event()); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "ImageCreatedEvent appended for ID: %s", id)

	return &ImageDTO{
		ID:           id,
		Description:  record.Description,
		Base64Data:   record.Base64Data,
		PlatformUsed: record.PlatformUsed,
		CreatedAt:    createdAt,
	}, nil
}

// ClassifyImage downloads the image at a URL, classifies it, and appends
// an ImageClassifiedEvent.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageURL: URL of the image to classify.
// Returns:
//   - *ClassifiedImageDTO: response built from the command outputs.
//   - error: *domain.ValidationError on a bad URL, *domain.ProviderError on
//     download/classification failure, or a wrapped append error.
func (s *CommandService) ClassifyImage(ctx context.Context, imageURL string) (*ClassifiedImageDTO, error) {
	urlVO, err := domain.NewImageURL(imageURL)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Classifying image at URL: %s", imageURL)

	b64, err := s.converter.ConvertURLToBase64(ctx, urlVO.String())
	if err != nil {
		return nil, &domain.ProviderError{Op: "download", Err: err}
	}
	if b64 == "" {
		return nil, &domain.ProviderError{Op: "download", Err: fmt.Errorf("empty image data")}
	}

	label, err := s.classifier.Classify(ctx, urlVO.String())
	if err != nil {
		return nil, &domain.ProviderError{Op: "classify", Err: err}
	}

	data, err := domain.NewBase64Data(b64)
	if err != nil {
		return nil, &domain.ProviderError{Op: "download", Err: err}
	}
	result, err := domain.NewClassificationResult(label)
	if err != nil {
		// The provider produced a label outside the domain set.
		return nil, &domain.ProviderError{Op: "classify", Err: err}
	}

	id := uuid.New().String()
	classifiedAt := time.Now().UTC()
	record := domain.NewClassifiedImageRecord(id, urlVO, data, result, classifiedAt)

	if err := s.append(ctx, record.Event()); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "ImageClassifiedEvent appended for ID: %s, result: %s", id, result.String())

	return &ClassifiedImageDTO{
		ID:                    id,
		OriginalURL:           record.OriginalURL,
		ClassifiedImageBase64: record.ClassifiedImageBase64,
		ClassificationResult:  record.ClassificationResult,
		ClassifiedAt:          classifiedAt,
	}, nil
}

// append serializes one domain event and writes it to the log.
func (s *CommandService) append(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", ev.EventType(), err)
	}
	if err := s.log.Append(ctx, s.stream, eventlog.EventData{
		EventID: uuid.New().String(),
		Type:    ev.EventType(),
		Data:    payload,
	}); err != nil {
		return fmt.Errorf("failed to append %s: %w", ev.EventType(), err)
	}
	return nil
}
