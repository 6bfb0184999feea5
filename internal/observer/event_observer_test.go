package observer

import (
	"context"
	"testing"
	"time"
)

type channelObserver struct {
	name   string
	events chan Event
}

func (o *channelObserver) OnEvent(_ context.Context, event Event) {
	o.events <- event
}

func (o *channelObserver) GetObserverName() string { return o.name }

func TestMetricsObserverCounters(t *testing.T) {
	o := NewMetricsObserver()
	ctx := context.Background()

	o.OnEvent(ctx, Event{Type: DescribeStarted})
	o.OnEvent(ctx, Event{Type: DescribeStarted})
	o.OnEvent(ctx, Event{Type: DescribeCompleted, ProcessingTime: 2 * time.Second})
	o.OnEvent(ctx, Event{Type: DescribeFailed})

	metrics := o.GetMetrics()
	if metrics["total_requests"] != int64(2) {
		t.Errorf("total_requests = %v, want 2", metrics["total_requests"])
	}
	if metrics["completed_requests"] != int64(1) {
		t.Errorf("completed_requests = %v, want 1", metrics["completed_requests"])
	}
	if metrics["failed_requests"] != int64(1) {
		t.Errorf("failed_requests = %v, want 1", metrics["failed_requests"])
	}
	if metrics["avg_processing_time"] != 2*time.Second {
		t.Errorf("avg_processing_time = %v, want 2s", metrics["avg_processing_time"])
	}
}

func TestEventPublisherNotifiesSubscribers(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &channelObserver{name: "test_observer", events: make(chan Event, 1)}
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), Event{Type: DescribeCompleted, Success: true})

	select {
	case event := <-obs.events:
		if event.Type != DescribeCompleted {
			t.Errorf("event type = %q, want %q", event.Type, DescribeCompleted)
		}
	case <-time.After(time.Second):
		t.Fatal("observer was not notified")
	}
}

func TestEventPublisherUnsubscribe(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &channelObserver{name: "test_observer", events: make(chan Event, 1)}
	publisher.Subscribe(obs)
	publisher.Unsubscribe(obs)

	publisher.NotifyObservers(context.Background(), Event{Type: DescribeStarted})

	select {
	case <-obs.events:
		t.Fatal("unsubscribed observer must not be notified")
	case <-time.After(50 * time.Millisecond):
	}
}
