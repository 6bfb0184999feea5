package imagemeta

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go-image-describer/pkg/models"
)

// dominantColorCount is the number of swatches requested per image.
const dominantColorCount = 5

// Extractor turns raw image bytes into ImageMetadata.
type Extractor interface {
	Extract(data []byte) (*models.ImageMetadata, error)
}

type extractor struct{}

// NewExtractor creates a metadata extractor
func NewExtractor() Extractor {
	return &extractor{}
}

// Extract decodes the image and computes dimensions, aspect ratio, pixel
// count and the dominant color palette. Bytes that cannot be decoded as one
// of the registered raster formats (JPEG, PNG, GIF, BMP, WebP) return an error.
func (e *extractor) Extract(data []byte) (*models.ImageMetadata, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	return &models.ImageMetadata{
		Width:          width,
		Height:         height,
		AspectRatio:    math.Round(float64(width)/float64(height)*100) / 100,
		TotalPixels:    width * height,
		DominantColors: DominantColors(img, dominantColorCount),
	}, nil
}
