package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"go-image-describer/internal/describe"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/pkg/models"
)

// OllamaProvider sends the metadata prompt to a self-hosted Ollama instance.
type OllamaProvider struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllamaProvider creates a provider talking to the Ollama API at host.
func NewOllamaProvider(host, model string, timeout time.Duration) (*OllamaProvider, error) {
	baseURL, err := ollamaBaseURL(host)
	if err != nil {
		return nil, err
	}

	return &OllamaProvider{
		client:  api.NewClient(baseURL, http.DefaultClient),
		model:   model,
		timeout: timeout,
	}, nil
}

// ollamaBaseURL derives the API base URL from an OLLAMA_HOST value. A
// scheme-less value like "localhost:11434" defaults to http, and any path is
// stripped so a configured /api/chat does not double up in the client.
func ollamaBaseURL(host string) (*url.URL, error) {
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: missing host", host)
	}

	return &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Describe performs a single non-streaming chat call.
func (p *OllamaProvider) Describe(ctx context.Context, meta *models.ImageMetadata) (*models.DescriptionResult, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	stream := false
	req := &api.ChatRequest{
		Model: p.model,
		Messages: []api.Message{
			{Role: "user", Content: describe.Prompt(meta)},
		},
		Stream: &stream,
	}

	var content string
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, apperrors.NewRemoteError("Ollama chat failed", err)
	}
	if content == "" {
		return nil, apperrors.NewRemoteError("empty response from Ollama", nil)
	}

	return &models.DescriptionResult{
		Description: strings.TrimSpace(content),
		ModelUsed:   "ollama_" + p.model,
		ModelType:   "remote",
	}, nil
}
