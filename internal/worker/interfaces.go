package worker

import (
	"context"
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
)

// Consumer abstracts the event stream for testability.
// *queue.RedisConsumer satisfies it.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	RequeueWithAttempt(ctx context.Context, msg queue.Message, attempt int, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Claimer hands out entries another consumer left unacknowledged.
// *queue.RedisConsumer satisfies it.
type Claimer interface {
	ClaimStale(ctx context.Context, minIdle time.Duration, count int64) ([]queue.Claimed, error)
}

// Subscriber reacts to one event. Delivery is at-least-once, so subscribers
// must tolerate seeing the same event id twice.
type Subscriber func(ctx context.Context, event model.Event) error
