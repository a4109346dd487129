package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type subscription struct {
	name    string
	handler Subscriber
}

// Dispatcher fans an event out to the subscribers registered for its type.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[model.EventType][]subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[model.EventType][]subscription)}
}

// Subscribe registers handler for every listed event type. Subscribers run
// in registration order.
func (d *Dispatcher) Subscribe(name string, handler Subscriber, types ...model.EventType) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range types {
		d.subs[t] = append(d.subs[t], subscription{name: name, handler: handler})
	}
}

// Subscribers returns the names subscribed to an event type.
func (d *Dispatcher) Subscribers(eventType model.EventType) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, len(d.subs[eventType]))
	for i, s := range d.subs[eventType] {
		names[i] = s.name
	}
	return names
}

// Dispatch runs every subscriber of the event, even when an earlier one
// fails, and returns their joined errors.
func (d *Dispatcher) Dispatch(ctx context.Context, event model.Event) error {
	d.mu.RLock()
	subs := d.subs[event.Type]
	d.mu.RUnlock()

	if len(subs) == 0 {
		slog.DebugContext(ctx, "no subscribers for event", "event_type", event.Type)
		return nil
	}

	var errs []error
	for _, sub := range subs {
		if err := runSubscriber(ctx, sub, event); err != nil {
			slog.WarnContext(ctx, "subscriber failed",
				"error", err,
				"subscriber", sub.name,
				"event_type", event.Type,
				"event_id", event.ID)
			errs = append(errs, fmt.Errorf("%s: %w", sub.name, err))
		}
	}
	return errors.Join(errs...)
}

func runSubscriber(ctx context.Context, sub subscription, event model.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in subscriber",
				"panic", r,
				"subscriber", sub.name,
				"event_id", event.ID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sub.handler(ctx, event)
}
