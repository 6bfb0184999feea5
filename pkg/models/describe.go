package models

// RGB holds one channel-decomposed color value.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ColorSwatch is one dominant color of an image. Swatches within a single
// ImageMetadata are pairwise distinct under a Manhattan distance of 60.
type ColorSwatch struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// ImageMetadata holds the measurements extracted from one uploaded image.
// It is computed once per request and never mutated afterwards.
type ImageMetadata struct {
	Width          int
	Height         int
	AspectRatio    float64
	TotalPixels    int
	DominantColors []ColorSwatch
}

// ColorNames returns the swatch names in dominance order.
func (m *ImageMetadata) ColorNames() []string {
	names := make([]string, 0, len(m.DominantColors))
	for _, c := range m.DominantColors {
		names = append(names, c.Name)
	}
	return names
}

// Payload converts the metadata into its wire representation.
func (m *ImageMetadata) Payload() MetadataPayload {
	return MetadataPayload{
		Dimensions: Dimensions{
			Width:       m.Width,
			Height:      m.Height,
			AspectRatio: m.AspectRatio,
		},
		Colors:      m.DominantColors,
		TotalPixels: m.TotalPixels,
	}
}

// Dimensions is the nested dimensions block of the response metadata.
type Dimensions struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// MetadataPayload is the metadata block returned to API clients.
type MetadataPayload struct {
	Dimensions  Dimensions    `json:"dimensions"`
	Colors      []ColorSwatch `json:"colors"`
	TotalPixels int           `json:"total_pixels"`
}

// DescriptionResult is produced by a description provider.
type DescriptionResult struct {
	Description    string
	ModelUsed      string
	ModelType      string // "local" or "remote"
	FallbackReason string
}

// ModelInfo reports which inference path produced the description.
type ModelInfo struct {
	ModelUsed      string `json:"model_used"`
	ModelType      string `json:"model_type"`
	LocalMode      bool   `json:"local_mode"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// DescribeResponse is the success body of POST /describe/.
type DescribeResponse struct {
	Description    string          `json:"description"`
	Metadata       MetadataPayload `json:"metadata"`
	ModelInfo      ModelInfo       `json:"model_info"`
	ProcessingTime float64         `json:"processing_time"`
	Status         string          `json:"status"`
}

// ErrorResponse is the body of every non-2xx response. Metadata is attached
// when it was already computed before the failure (remote path errors).
type ErrorResponse struct {
	Error          string           `json:"error"`
	Status         string           `json:"status"`
	Metadata       *MetadataPayload `json:"metadata,omitempty"`
	ProcessingTime float64          `json:"processing_time,omitempty"`
}

// HealthResponse is the body of GET /health/.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	LLMMode string `json:"llm_mode"`
}
