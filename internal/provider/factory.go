package provider

import (
	"fmt"

	"go-image-describer/internal/config"
)

// Type identifies a description provider implementation.
type Type string

const (
	// TypeLocal is the rule-based heuristic engine
	TypeLocal Type = "local"
	// TypeOpenAI is the OpenAI chat completions API
	TypeOpenAI Type = "openai"
	// TypeAnthropic is the Anthropic messages API
	TypeAnthropic Type = "anthropic"
	// TypeOllama is a self-hosted Ollama instance
	TypeOllama Type = "ollama"
	// TypeFreeFallback is the keyless canned remote response
	TypeFreeFallback Type = "free_fallback"
)

// Factory creates description providers from configuration.
type Factory struct {
	cfg *config.Config
}

// NewFactory creates a provider factory
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{cfg: cfg}
}

// ForConfig creates the provider selected by the configured mode. In remote
// mode the backends take precedence in order: OpenAI key, Anthropic key,
// Ollama host, keyless fallback.
func (f *Factory) ForConfig() (Provider, error) {
	return f.Create(f.resolveType())
}

// Create builds a provider of the given type.
func (f *Factory) Create(t Type) (Provider, error) {
	switch t {
	case TypeLocal:
		return NewLocalProvider(), nil
	case TypeOpenAI:
		return NewOpenAIProvider(f.cfg.OpenAIAPIKey, f.cfg.RequestTimeout), nil
	case TypeAnthropic:
		return NewAnthropicProvider(f.cfg.AnthropicAPIKey, f.cfg.RequestTimeout), nil
	case TypeOllama:
		return NewOllamaProvider(f.cfg.OllamaHost, f.cfg.OllamaModel, f.cfg.RequestTimeout)
	case TypeFreeFallback:
		return NewFreeFallbackProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", t)
	}
}

func (f *Factory) resolveType() Type {
	if f.cfg.UseLocalLLM {
		return TypeLocal
	}
	switch {
	case f.cfg.OpenAIAPIKey != "":
		return TypeOpenAI
	case f.cfg.AnthropicAPIKey != "":
		return TypeAnthropic
	case f.cfg.OllamaHost != "":
		return TypeOllama
	default:
		return TypeFreeFallback
	}
}
