// Package provider holds the description strategies: the local heuristic
// engine and the remote text-generation clients. All implementations satisfy
// the same Provider interface and are selected once at startup by the
// factory.
package provider

import (
	"context"

	"go-image-describer/pkg/models"
)

// Provider produces a natural-language description for extracted image
// metadata.
type Provider interface {
	Describe(ctx context.Context, meta *models.ImageMetadata) (*models.DescriptionResult, error)
	Name() string
}
