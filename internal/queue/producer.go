package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// Producer appends domain events to the event stream.
type Producer interface {
	Publish(ctx context.Context, event model.Event) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event model.Event) error {
	if event.Attempt <= 0 {
		event.Attempt = 1
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(event),
	}).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"workspace_id", event.WorkspaceID,
		"attempt", event.Attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
