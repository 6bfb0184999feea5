package provider

import (
	"context"
	"strings"
	"testing"

	"go-image-describer/pkg/models"
)

func naturalSceneMetadata() *models.ImageMetadata {
	return &models.ImageMetadata{
		Width:       1920,
		Height:      1080,
		AspectRatio: 1.78,
		TotalPixels: 1920 * 1080,
		DominantColors: []models.ColorSwatch{
			{Hex: "#228b22", RGB: models.RGB{R: 34, G: 139, B: 34}, Name: "green", Percentage: 55.0},
			{Hex: "#87ceeb", RGB: models.RGB{R: 135, G: 206, B: 235}, Name: "blue", Percentage: 30.0},
			{Hex: "#ffffff", RGB: models.RGB{R: 255, G: 255, B: 255}, Name: "white", Percentage: 15.0},
		},
	}
}

func TestLocalProviderDescribe(t *testing.T) {
	p := NewLocalProvider()

	result, err := p.Describe(context.Background(), naturalSceneMetadata())
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if result.ModelUsed != "intelligent_visual_analyzer" {
		t.Errorf("model used = %q, want intelligent_visual_analyzer", result.ModelUsed)
	}
	if result.ModelType != "local" {
		t.Errorf("model type = %q, want local", result.ModelType)
	}
	if result.FallbackReason != "" {
		t.Errorf("unexpected fallback reason %q", result.FallbackReason)
	}
	if result.Description == "" {
		t.Fatal("description must not be empty")
	}
	if !strings.Contains(result.Description, "1920 x 1080") {
		t.Errorf("description missing dimension clause: %s", result.Description)
	}
	// Green+blue palette drives the landscape rules end to end.
	if !strings.Contains(result.Description, "landscape photograph featuring natural outdoor elements") {
		t.Errorf("description missing landscape subject clause: %s", result.Description)
	}
}

func TestLocalProviderDeterministic(t *testing.T) {
	p := NewLocalProvider()
	meta := naturalSceneMetadata()

	first, err := p.Describe(context.Background(), meta)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	second, err := p.Describe(context.Background(), meta)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if first.Description != second.Description {
		t.Error("local descriptions must be identical for identical input")
	}
}

func TestLocalProviderNeverFails(t *testing.T) {
	p := NewLocalProvider()

	// A nil metadata pointer panics inside the heuristic path; the provider
	// must degrade to the canned fallback instead of propagating.
	result, err := p.Describe(context.Background(), nil)
	if err != nil {
		t.Fatalf("Describe must not fail, got %v", err)
	}
	if result.ModelUsed != "general_fallback" {
		t.Errorf("model used = %q, want general_fallback", result.ModelUsed)
	}
	if result.ModelType != "local" {
		t.Errorf("model type = %q, want local", result.ModelType)
	}
	if result.FallbackReason == "" {
		t.Error("fallback reason should record the failure")
	}
	if result.Description != generalFallbackDescription {
		t.Errorf("description = %q, want canned fallback", result.Description)
	}
}
