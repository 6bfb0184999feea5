package provider

import (
	"context"
	"fmt"

	"go-image-describer/internal/describe"
	"go-image-describer/internal/inference"
	"go-image-describer/pkg/models"
)

// generalFallbackDescription is returned when the heuristic path fails
// unexpectedly; the local provider never fails a request.
const generalFallbackDescription = "This appears to be a well-composed photograph with good technical quality and interesting visual elements that create an engaging composition."

// LocalProvider generates descriptions from the rule-based inference engine
// without any external calls.
type LocalProvider struct{}

// NewLocalProvider creates the local heuristic provider
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Name returns the provider name
func (p *LocalProvider) Name() string {
	return "local"
}

// Describe runs inference over the color set and geometry and composes the
// templated description. A panic anywhere in the heuristic path degrades to
// the canned fallback description instead of failing the request.
func (p *LocalProvider) Describe(_ context.Context, meta *models.ImageMetadata) (result *models.DescriptionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = &models.DescriptionResult{
				Description:    generalFallbackDescription,
				ModelUsed:      "general_fallback",
				ModelType:      "local",
				FallbackReason: fmt.Sprint(r),
			}
			err = nil
		}
	}()

	analysis := inference.Infer(inference.Input{
		Colors:      inference.NewColorSet(meta.ColorNames()...),
		AspectRatio: meta.AspectRatio,
		Width:       meta.Width,
		Height:      meta.Height,
	})

	return &models.DescriptionResult{
		Description: describe.Compose(analysis, meta),
		ModelUsed:   "intelligent_visual_analyzer",
		ModelType:   "local",
	}, nil
}
