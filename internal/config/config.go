package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host            string
	Port            string
	MaxImageSizeMB  int64
	UseLocalLLM     bool
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
	OllamaModel     string
	RequestTimeout  time.Duration
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// MaxImageSizeBytes returns the upload cap in bytes.
func (c *Config) MaxImageSizeBytes() int64 {
	return c.MaxImageSizeMB * 1024 * 1024
}

// LLMMode reports which description path is configured.
func (c *Config) LLMMode() string {
	if c.UseLocalLLM {
		return "local"
	}
	return "remote"
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		Port:            getEnvOrDefault("PORT", "8080"),
		MaxImageSizeMB:  parseIntOrDefault("MAX_IMAGE_SIZE_MB", 10),
		UseLocalLLM:     parseBoolOrDefault("USE_LOCAL_LLM", true),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		OllamaModel:     getEnvOrDefault("OLLAMA_MODEL", "llama3"),
		RequestTimeout:  parseDurationOrDefault("REQUEST_TIMEOUT", 20*time.Second),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxImageSizeMB <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_SIZE_MB must be > 0 (got %d)", cfg.MaxImageSizeMB)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", cfg.RequestTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
