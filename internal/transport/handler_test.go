package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-image-describer/internal/config"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/imagemeta"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/provider"
	"go-image-describer/internal/service"
	"go-image-describer/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingProvider struct{}

func (failingProvider) Describe(_ context.Context, _ *models.ImageMetadata) (*models.DescriptionResult, error) {
	return nil, apperrors.NewRemoteError("backend down", nil)
}

func (failingProvider) Name() string { return "failing" }

func testConfig() *config.Config {
	return &config.Config{
		Host:           "0.0.0.0",
		Port:           "8000",
		MaxImageSizeMB: 10,
		UseLocalLLM:    true,
		OllamaModel:    "llama3",
		RequestTimeout: 20 * time.Second,
	}
}

func newTestHandler(cfg *config.Config, p provider.Provider) http.Handler {
	svc := service.NewDescribeService(cfg, imagemeta.NewExtractor(), p, observer.NewEventPublisher())
	return NewHandler(svc, cfg)
}

func pngUpload(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/describe/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestDescribeEndpointSuccess(t *testing.T) {
	handler := newTestHandler(testConfig(), provider.NewLocalProvider())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartRequest(t, "image", "red.png", pngUpload(t, 100, 200, color.RGBA{R: 255, A: 255})))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.DescribeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
	if resp.Description == "" {
		t.Error("description must not be empty")
	}
	if resp.Metadata.Dimensions.Width != 100 || resp.Metadata.Dimensions.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 100x200", resp.Metadata.Dimensions.Width, resp.Metadata.Dimensions.Height)
	}
	if resp.Metadata.Dimensions.AspectRatio != 0.5 {
		t.Errorf("aspect ratio = %v, want 0.5", resp.Metadata.Dimensions.AspectRatio)
	}
	if len(resp.Metadata.Colors) == 0 {
		t.Fatal("expected at least one dominant color")
	}
	if resp.Metadata.Colors[0].Hex != "#ff0000" {
		t.Errorf("top color = %q, want #ff0000", resp.Metadata.Colors[0].Hex)
	}
	if resp.ModelInfo.ModelUsed != "intelligent_visual_analyzer" {
		t.Errorf("model used = %q", resp.ModelInfo.ModelUsed)
	}
	if !resp.ModelInfo.LocalMode {
		t.Error("local mode flag should be true")
	}
}

func TestDescribeEndpointMissingFile(t *testing.T) {
	handler := newTestHandler(testConfig(), provider.NewLocalProvider())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("note", "no image here"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/describe/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "No image file provided" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Status != "error" {
		t.Errorf("status field = %q, want error", resp.Status)
	}
}

func TestDescribeEndpointNonImage(t *testing.T) {
	handler := newTestHandler(testConfig(), provider.NewLocalProvider())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartRequest(t, "image", "notes.txt", []byte("definitely not an image")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "Invalid image file format") {
		t.Errorf("error = %q, want invalid format message", resp.Error)
	}
}

func TestDescribeEndpointOversized(t *testing.T) {
	cfg := testConfig()
	cfg.MaxImageSizeMB = 1
	handler := newTestHandler(cfg, provider.NewLocalProvider())

	oversized := make([]byte, cfg.MaxImageSizeBytes()+1024)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartRequest(t, "image", "huge.png", oversized))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "too large") {
		t.Errorf("error = %q, want a size violation message", resp.Error)
	}
}

func TestDescribeEndpointGrosslyOversized(t *testing.T) {
	// A body far past the cap fails the size limiter during multipart
	// parsing, before the form field is read; the response must still report
	// the size violation.
	cfg := testConfig()
	cfg.MaxImageSizeMB = 1
	handler := newTestHandler(cfg, provider.NewLocalProvider())

	oversized := make([]byte, 3*1024*1024)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartRequest(t, "image", "huge.png", oversized))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "too large") {
		t.Errorf("error = %q, want a size violation message", resp.Error)
	}
}

func TestDescribeEndpointRemoteFailure(t *testing.T) {
	cfg := testConfig()
	cfg.UseLocalLLM = false
	handler := newTestHandler(cfg, failingProvider{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartRequest(t, "image", "blue.png", pngUpload(t, 64, 64, color.RGBA{B: 255, A: 255})))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("status field = %q, want error", resp.Status)
	}
	if resp.Metadata == nil {
		t.Fatal("remote failures must still include the extracted metadata")
	}
	if resp.Metadata.Dimensions.Width != 64 {
		t.Errorf("metadata width = %d, want 64", resp.Metadata.Dimensions.Width)
	}
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		local    bool
		wantMode string
	}{
		{"local mode", true, "local"},
		{"remote mode", false, "remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.UseLocalLLM = tt.local
			handler := newTestHandler(cfg, provider.NewLocalProvider())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp models.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != "healthy" {
				t.Errorf("status = %q, want healthy", resp.Status)
			}
			if resp.Service != serviceName {
				t.Errorf("service = %q", resp.Service)
			}
			if resp.LLMMode != tt.wantMode {
				t.Errorf("llm_mode = %q, want %q", resp.LLMMode, tt.wantMode)
			}
		})
	}
}
