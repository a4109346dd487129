package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// EventPublisher hands committed mutations to the event stream.
// queue.Producer satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, model.Event) error { return nil }

// eventEmitter stamps and publishes events. Publishing happens after commit
// and never fails the caller; errors are logged.
type eventEmitter struct {
	publisher EventPublisher
}

func newEventEmitter(publisher EventPublisher) eventEmitter {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return eventEmitter{publisher: publisher}
}

func (e eventEmitter) emit(ctx context.Context, event model.Event, payload any) {
	event.ID = id.New()
	event.CreatedAt = time.Now().UTC()
	event.Attempt = 1
	if traceID := logger.TraceID(ctx); traceID != "" {
		event.TraceID = &traceID
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encode event payload", "error", err, "event_type", event.Type)
			return
		}
		event.Payload = raw
	}

	if err := e.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		slog.ErrorContext(ctx, "failed to publish event",
			"error", err,
			"event_type", event.Type,
			"event_id", event.ID)
	}
}

func taskEvent(eventType model.EventType, workspaceID int64, task *model.Task, actorID *int64) model.Event {
	return model.Event{
		Type:        eventType,
		WorkspaceID: workspaceID,
		ProjectID:   &task.ProjectID,
		TaskID:      &task.ID,
		ActorID:     actorID,
	}
}
