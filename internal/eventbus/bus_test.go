package eventbus

import (
	"context"
	"errors"
	"testing"
)

type sampleEvent struct {
	ID string
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus()
	var received []sampleEvent
	bus.Subscribe(For[sampleEvent](), func(ctx context.Context, event any) error {
		received = append(received, event.(sampleEvent))
		return nil
	})

	if err := bus.Publish(context.Background(), sampleEvent{ID: "e-1"}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(received) != 1 || received[0].ID != "e-1" {
		t.Fatalf("unexpected delivery: %+v", received)
	}
}

func TestPublishRunsAllHandlersAndReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus()
	firstErr := errors.New("handler one failed")
	var calls int
	bus.Subscribe(For[sampleEvent](), func(ctx context.Context, event any) error {
		calls++
		return firstErr
	})
	bus.Subscribe(For[sampleEvent](), func(ctx context.Context, event any) error {
		calls++
		return errors.New("handler two failed")
	})

	err := bus.Publish(context.Background(), sampleEvent{ID: "e-2"})
	if !errors.Is(err, firstErr) {
		t.Fatalf("expected first handler error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d calls", calls)
	}
}

func TestPublishNilEvent(t *testing.T) {
	bus := NewInMemoryBus()
	if err := bus.Publish(context.Background(), nil); !errors.Is(err, ErrNilEvent) {
		t.Fatalf("expected ErrNilEvent, got %v", err)
	}
}

func TestTypeOfUnwrapsPointers(t *testing.T) {
	if TypeOf(&sampleEvent{}) != TypeOf(sampleEvent{}) {
		t.Fatal("pointer and value events must share a type name")
	}
	if TypeOf(sampleEvent{}) != For[sampleEvent]() {
		t.Fatal("For must agree with TypeOf")
	}
}
