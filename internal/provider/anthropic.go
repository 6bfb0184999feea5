package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-image-describer/internal/describe"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

const anthropicModel = "claude-3-haiku-20240307"

const anthropicPromptTemplate = `Based on the following image metadata, provide a detailed description of what this image likely contains:

%s

Describe the probable subject matter, composition, visual characteristics, and overall impression in a natural, engaging way.`

// AnthropicProvider sends the metadata prompt to the Anthropic messages API
// and returns the response text verbatim.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAnthropicProvider creates an Anthropic-backed description provider
func NewAnthropicProvider(apiKey string, timeout time.Duration) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com",
		client:  newHTTPClient(timeout),
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Describe performs a single, non-retried messages call.
func (p *AnthropicProvider) Describe(ctx context.Context, meta *models.ImageMetadata) (*models.DescriptionResult, error) {
	payload := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: 300,
		Messages: []anthropicMessage{
			{Role: "user", Content: fmt.Sprintf(anthropicPromptTemplate, describe.Prompt(meta))},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewRemoteError("failed to encode Anthropic request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewRemoteError("failed to build Anthropic request", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteError("Anthropic request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteError(fmt.Sprintf("Anthropic returned status %d", resp.StatusCode), nil)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewRemoteError("failed to decode Anthropic response", err)
	}
	if len(parsed.Content) == 0 {
		return nil, apperrors.NewRemoteError("Anthropic returned no content", nil)
	}

	return &models.DescriptionResult{
		Description: strings.TrimSpace(parsed.Content[0].Text),
		ModelUsed:   "anthropic_claude-3-haiku",
		ModelType:   "remote",
	}, nil
}
