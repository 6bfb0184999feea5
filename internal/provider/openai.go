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

const openAIModel = "gpt-3.5-turbo"

const openAIPromptTemplate = `Based on the following image metadata, provide a detailed and realistic description of what this image likely contains:

%s

Please describe:
1. The likely subject matter and main elements
2. The composition and visual style
3. The mood and atmosphere
4. The technical quality and characteristics
5. What type of photography this appears to be

Provide a natural, flowing description that helps someone understand what they would see in this image.`

// OpenAIProvider sends the metadata prompt to the OpenAI chat completions
// API and returns the response text verbatim.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed description provider
func NewOpenAIProvider(apiKey string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com",
		client:  newHTTPClient(timeout),
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// Describe performs a single, non-retried chat completion call.
func (p *OpenAIProvider) Describe(ctx context.Context, meta *models.ImageMetadata) (*models.DescriptionResult, error) {
	payload := openAIRequest{
		Model: openAIModel,
		Messages: []openAIMessage{
			{Role: "user", Content: fmt.Sprintf(openAIPromptTemplate, describe.Prompt(meta))},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewRemoteError("failed to encode OpenAI request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewRemoteError("failed to build OpenAI request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteError("OpenAI request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteError(fmt.Sprintf("OpenAI returned status %d", resp.StatusCode), nil)
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewRemoteError("failed to decode OpenAI response", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, apperrors.NewRemoteError("OpenAI returned no choices", nil)
	}

	return &models.DescriptionResult{
		Description: strings.TrimSpace(parsed.Choices[0].Message.Content),
		ModelUsed:   "openai_" + openAIModel,
		ModelType:   "remote",
	}, nil
}
