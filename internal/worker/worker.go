package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
)

type Config struct {
	MaxAttempts  int
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer   Consumer
	dispatcher *Dispatcher
	cfg        Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, dispatcher *Dispatcher, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:   consumer,
		dispatcher: dispatcher,
		cfg:        cfg,
		stopCh:     make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "kaneo.worker",
	})
	slog.InfoContext(ctx, "worker started", "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		_ = w.HandleMessage(ctx, msg)
	}
	return nil
}

// HandleMessage dispatches one message and settles it: ACK on success,
// requeue with the next attempt on failure, DLQ once attempts run out.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) error {
	event := msg.Event
	eventType := string(event.Type)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:   &msg.ID,
		EventID:     &event.ID,
		EventType:   &eventType,
		WorkspaceID: &event.WorkspaceID,
		ProjectID:   event.ProjectID,
		TaskID:      event.TaskID,
	})

	traceID := ""
	if event.TraceID != nil {
		traceID = *event.TraceID
	}
	sc := logger.StartSpanFromTraceID(ctx, traceID, "worker.dispatch "+eventType,
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	if err := w.dispatcher.Dispatch(ctx, event); err != nil {
		sc.RecordError(err)
		w.handleFailedMessage(ctx, msg, err)
		return err
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// the reclaimer redelivers it; subscribers are idempotent
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	slog.InfoContext(ctx, "event processed",
		"attempt", msg.Attempt(),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// HandleReclaimed settles a message taken over from a stalled consumer. An
// entry handed out more than MaxAttempts times without an ack keeps killing
// its consumer, so it goes to the DLQ without being dispatched again.
func (w *Worker) HandleReclaimed(ctx context.Context, claimed queue.Claimed) error {
	if claimed.Deliveries > int64(w.cfg.MaxAttempts) {
		msg := claimed.Message
		ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msg.ID, EventID: &msg.Event.ID})
		w.deadLetter(ctx, msg, fmt.Sprintf("delivered %d times without ack", claimed.Deliveries))
		return nil
	}
	return w.HandleMessage(ctx, claimed.Message)
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt() >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"error", err,
			"attempts", msg.Attempt())
		w.deadLetter(ctx, msg, err.Error())
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"error", err,
		"attempt", msg.Attempt())
	if requeueErr := w.consumer.RequeueWithAttempt(ctx, msg, msg.Attempt()+1, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}

func (w *Worker) deadLetter(ctx context.Context, msg queue.Message, reason string) {
	if err := w.consumer.SendDLQ(ctx, msg, reason); err != nil {
		slog.ErrorContext(ctx, "failed to send to DLQ", "error", err, "reason", reason)
	}
}
