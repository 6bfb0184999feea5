package container

import (
	"fmt"
	"net/http"

	"go-image-describer/internal/config"
	"go-image-describer/internal/imagemeta"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/provider"
	"go-image-describer/internal/service"
	"go-image-describer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	extractor       imagemeta.Extractor
	provider        provider.Provider
	events          observer.Subject
	describeService service.DescribeService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	extractor := imagemeta.NewExtractor()

	descProvider, err := provider.NewFactory(cfg).ForConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build description provider: %w", err)
	}

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(observer.NewMetricsObserver())

	describeService := service.NewDescribeService(cfg, extractor, descProvider, events)
	handler := transport.NewHandler(describeService, cfg)

	return &Container{
		config:          cfg,
		extractor:       extractor,
		provider:        descProvider,
		events:          events,
		describeService: describeService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Provider returns the configured description provider
func (c *Container) Provider() provider.Provider {
	return c.provider
}
