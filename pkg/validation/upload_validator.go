// Package validation checks uploaded image payloads before the pipeline
// spends any work on them.
package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	apperrors "go-image-describer/internal/errors"
)

// allowedFormats are the raster formats accepted for upload, keyed by the
// format name reported by image.DecodeConfig.
var allowedFormats = map[string]struct{}{
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// UploadValidator validates uploaded image bytes against a size cap and the
// allowed raster formats.
type UploadValidator struct {
	maxBytes int64
}

// NewUploadValidator creates a validator with the given byte cap
func NewUploadValidator(maxBytes int64) *UploadValidator {
	return &UploadValidator{maxBytes: maxBytes}
}

// Validate checks size and format. Format detection reads only the image
// header, it does not decode pixel data.
func (v *UploadValidator) Validate(data []byte) error {
	if len(data) == 0 {
		return apperrors.NewValidationError("image file is empty", nil)
	}
	if int64(len(data)) > v.maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("Image file too large. Maximum size: %dMB", v.maxBytes/(1024*1024)), nil)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return apperrors.NewDecodeError("Invalid image file format", err)
	}
	if _, ok := allowedFormats[format]; !ok {
		return apperrors.NewValidationError(
			fmt.Sprintf("Unsupported image format %q. Allowed: %s", format, allowedFormatList()), nil)
	}
	return nil
}

func allowedFormatList() string {
	names := make([]string, 0, len(allowedFormats))
	for name := range allowedFormats {
		names = append(names, name)
	}
	// map order is random; keep the message stable
	sort.Strings(names)
	return strings.Join(names, ", ")
}
