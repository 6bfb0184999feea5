package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents the type of describe-pipeline event
type EventType string

const (
	// DescribeStarted when a describe request enters the pipeline
	DescribeStarted EventType = "describe_started"
	// DescribeCompleted when a description was produced
	DescribeCompleted EventType = "describe_completed"
	// DescribeFailed when the pipeline returned an error
	DescribeFailed EventType = "describe_failed"
)

// Event represents one describe-pipeline event
type Event struct {
	Type           EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Fields         map[string]interface{} `json:"fields,omitempty"`
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event Event)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event Event)
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles events by logging them
func (o *LoggingObserver) OnEvent(_ context.Context, event Event) {
	fields := logrus.Fields{
		"event_type":      event.Type,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Fields {
		fields[k] = v
	}

	switch event.Type {
	case DescribeStarted:
		o.logger.WithFields(fields).Debug("Image description started")
	case DescribeCompleted:
		o.logger.WithFields(fields).Info("Image description completed")
	case DescribeFailed:
		o.logger.WithFields(fields).Error("Image description failed")
	default:
		o.logger.WithFields(fields).Info("Description event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from pipeline events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalRequests       int64
	completedRequests   int64
	failedRequests      int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles events by updating counters
func (o *MetricsObserver) OnEvent(_ context.Context, event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.Type {
	case DescribeStarted:
		o.totalRequests++
	case DescribeCompleted:
		o.completedRequests++
		o.totalProcessingTime += event.ProcessingTime
	case DescribeFailed:
		o.failedRequests++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.completedRequests > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.completedRequests)
	}

	return map[string]interface{}{
		"total_requests":        o.totalRequests,
		"completed_requests":    o.completedRequests,
		"failed_requests":       o.failedRequests,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event Event) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
