package service

import (
	"context"
	"math"
	"time"

	"go-image-describer/internal/config"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/imagemeta"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/provider"
	"go-image-describer/pkg/models"
	"go-image-describer/pkg/validation"
)

// DescribeService runs the full pipeline for one uploaded image: validate,
// extract metadata, produce a description.
type DescribeService interface {
	Describe(ctx context.Context, data []byte) (*models.DescribeResponse, error)
}

// RemoteFailure carries the metadata that was already computed when the
// remote description path failed, so the boundary can still attach it to the
// error response.
type RemoteFailure struct {
	Metadata *models.MetadataPayload
	Err      error
}

// Error implements the error interface
func (e *RemoteFailure) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RemoteFailure) Unwrap() error {
	return e.Err
}

type describeService struct {
	cfg       *config.Config
	validator *validation.UploadValidator
	extractor imagemeta.Extractor
	provider  provider.Provider
	events    observer.Subject
}

// NewDescribeService creates the describe pipeline service
func NewDescribeService(
	cfg *config.Config,
	extractor imagemeta.Extractor,
	descProvider provider.Provider,
	events observer.Subject,
) DescribeService {
	return &describeService{
		cfg:       cfg,
		validator: validation.NewUploadValidator(cfg.MaxImageSizeBytes()),
		extractor: extractor,
		provider:  descProvider,
		events:    events,
	}
}

// Describe validates the upload, extracts metadata and asks the configured
// provider for a description. All state is request-local; concurrent calls
// are independent.
func (s *describeService) Describe(ctx context.Context, data []byte) (*models.DescribeResponse, error) {
	start := time.Now()
	s.events.NotifyObservers(ctx, observer.Event{
		Type:      observer.DescribeStarted,
		Timestamp: start,
		Success:   true,
		Fields:    map[string]interface{}{"upload_bytes": len(data)},
	})

	if err := s.validator.Validate(data); err != nil {
		s.publishFailure(ctx, start, err)
		return nil, err
	}

	meta, err := s.extractor.Extract(data)
	if err != nil {
		appErr := apperrors.NewDecodeError("Failed to process image", err)
		s.publishFailure(ctx, start, appErr)
		return nil, appErr
	}

	result, err := s.provider.Describe(ctx, meta)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeRemote) {
			err = apperrors.NewRemoteError("LLM service unavailable", err)
		}
		s.publishFailure(ctx, start, err)
		payload := meta.Payload()
		return nil, &RemoteFailure{Metadata: &payload, Err: err}
	}

	elapsed := time.Since(start)
	response := &models.DescribeResponse{
		Description: result.Description,
		Metadata:    meta.Payload(),
		ModelInfo: models.ModelInfo{
			ModelUsed:      result.ModelUsed,
			ModelType:      result.ModelType,
			LocalMode:      s.cfg.UseLocalLLM,
			FallbackReason: result.FallbackReason,
		},
		ProcessingTime: roundSeconds(elapsed),
		Status:         "success",
	}

	s.events.NotifyObservers(ctx, observer.Event{
		Type:           observer.DescribeCompleted,
		Timestamp:      time.Now(),
		ProcessingTime: elapsed,
		Success:        true,
		Fields: map[string]interface{}{
			"model_used": result.ModelUsed,
			"model_type": result.ModelType,
			"width":      meta.Width,
			"height":     meta.Height,
		},
	})

	return response, nil
}

func (s *describeService) publishFailure(ctx context.Context, start time.Time, err error) {
	s.events.NotifyObservers(ctx, observer.Event{
		Type:           observer.DescribeFailed,
		Timestamp:      time.Now(),
		ProcessingTime: time.Since(start),
		Success:        false,
		ErrorMessage:   err.Error(),
	})
}

// roundSeconds reports a duration as seconds with two decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
