package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter stream for messages out of attempts
	BatchSize    int64         // Messages per XREADGROUP
	Block        time.Duration // How long to block waiting for messages
	MaxAttempts  int           // Attempts before a message goes to the DLQ
	RequeueDelay time.Duration // Delay before a failed message is re-added
}

// Message is a stream entry decoded into the event it carries.
type Message struct {
	ID    string
	Event model.Event
	Raw   redis.XMessage
}

// Attempt is the delivery attempt of the carried event, starting at 1.
func (m Message) Attempt() int {
	return m.Event.Attempt
}

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
	}

	if err := consumer.ensureGroup(context.Background()); err != nil { //nolint:contextcheck
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) Config() ConsumerConfig {
	return c.cfg
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// "0" so a recreated group still sees entries already in the stream.
	if err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err(); err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "kaneo.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" only delivers new entries; pending ones belong to the reclaimer.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			parsed, parseErr := ParseMessage(msg)
			if parseErr != nil {
				slog.ErrorContext(ctx, "failed to parse message",
					"error", parseErr,
					"raw_message_id", msg.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
				continue
			}
			messages = append(messages, parsed)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}

	slog.DebugContext(ctx, "message acknowledged", "stream", c.cfg.Stream, "message_id", msg.ID)
	return nil
}

func (c *RedisConsumer) RequeueWithAttempt(ctx context.Context, msg Message, attempt int, errMsg string) error {
	if attempt <= 0 {
		attempt = max(msg.Attempt(), 1)
	}

	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking failed message for requeue: %w", err)
	}

	event := msg.Event
	event.Attempt = attempt
	values := eventValues(event)
	if errMsg != "" {
		values["last_error"] = errMsg
	}

	if c.cfg.RequeueDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(c.cfg.RequeueDelay):
		}
	}

	// the original entry is already acked, so the re-add must not be cancelled
	if err := c.client.XAdd(context.WithoutCancel(ctx), &redis.XAddArgs{
		Stream: c.cfg.Stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd requeue: %w", err)
	}

	slog.InfoContext(ctx, "message requeued for retry",
		"next_attempt", attempt,
		"reason", errMsg)
	return nil
}

func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking failed message for dlq: %w", err)
	}

	values := eventValues(msg.Event)
	values["error"] = errMsg
	values["source_message_id"] = msg.ID

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.DLQStream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}

	slog.ErrorContext(ctx, "message sent to DLQ",
		"final_error", errMsg,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

// Claimed is a pending entry taken over from a consumer that stalled before
// acking it.
type Claimed struct {
	Message
	// Deliveries counts every hand-out of the entry, this claim included.
	Deliveries int64
}

// ClaimStale takes over up to count entries that stayed pending for at least
// minIdle. Entries that no longer decode are acked and dropped.
func (c *RedisConsumer) ClaimStale(ctx context.Context, minIdle time.Duration, count int64) ([]Claimed, error) {
	pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.cfg.Stream,
		Group:  c.cfg.Group,
		Idle:   minIdle,
		Start:  "-",
		End:    "+",
		Count:  count,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("xpending: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	ids := make([]string, len(pending))
	for i, p := range pending {
		ids[i] = p.ID
	}
	// MinIdle again, so an entry another reclaimer took meanwhile is skipped
	raw, err := c.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   c.cfg.Stream,
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		MinIdle:  minIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("xclaim: %w", err)
	}

	claimed, broken := claimedMessages(pending, raw)
	for _, msg := range broken {
		slog.ErrorContext(ctx, "failed to parse reclaimed message, acknowledging to prevent loop",
			"raw_message_id", msg.ID,
			"stream", c.cfg.Stream)
		_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
	}
	return claimed, nil
}

// claimedMessages pairs claimed entries with their pending delivery counts.
// XPENDING reports deliveries before the claim, which adds one.
func claimedMessages(pending []redis.XPendingExt, raw []redis.XMessage) ([]Claimed, []redis.XMessage) {
	deliveries := make(map[string]int64, len(pending))
	for _, p := range pending {
		deliveries[p.ID] = p.RetryCount + 1
	}

	var (
		claimed []Claimed
		broken  []redis.XMessage
	)
	for _, msg := range raw {
		parsed, err := ParseMessage(msg)
		if err != nil {
			broken = append(broken, msg)
			continue
		}
		claimed = append(claimed, Claimed{Message: parsed, Deliveries: deliveries[msg.ID]})
	}
	return claimed, broken
}

// ParseMessage decodes a stream entry written by eventValues.
func ParseMessage(msg redis.XMessage) (Message, error) {
	eventID, err := parseInt64(msg.Values, "event_id")
	if err != nil {
		return Message{}, err
	}
	eventType, err := parseString(msg.Values, "event_type")
	if err != nil {
		return Message{}, err
	}
	if eventType == "" {
		return Message{}, fmt.Errorf("missing event_type")
	}
	workspaceID, err := parseInt64(msg.Values, "workspace_id")
	if err != nil {
		return Message{}, err
	}
	projectID, err := parseOptionalInt64(msg.Values, "project_id")
	if err != nil {
		return Message{}, err
	}
	taskID, err := parseOptionalInt64(msg.Values, "task_id")
	if err != nil {
		return Message{}, err
	}
	actorID, err := parseOptionalInt64(msg.Values, "actor_id")
	if err != nil {
		return Message{}, err
	}
	payload, err := parseOptionalString(msg.Values, "payload")
	if err != nil {
		return Message{}, err
	}
	traceID, err := parseOptionalString(msg.Values, "trace_id")
	if err != nil {
		return Message{}, err
	}
	createdAt, err := parseOptionalInt64(msg.Values, "created_at")
	if err != nil {
		return Message{}, err
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	event := model.Event{
		ID:          eventID,
		Type:        model.EventType(eventType),
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		TaskID:      taskID,
		ActorID:     actorID,
		Attempt:     attempt,
	}
	if payload != "" {
		event.Payload = []byte(payload)
	}
	if traceID != "" {
		event.TraceID = &traceID
	}
	if createdAt != nil {
		event.CreatedAt = time.UnixMilli(*createdAt).UTC()
	}

	return Message{
		ID:    msg.ID,
		Event: event,
		Raw:   msg,
	}, nil
}

func parseInt64(values map[string]any, key string) (int64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	str := fmt.Sprint(raw)
	num, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalInt64(values map[string]any, key string) (*int64, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	str := fmt.Sprint(raw)
	num, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &num, nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	str := fmt.Sprint(raw)
	num, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", nil
	}
	return fmt.Sprint(raw), nil
}

func eventValues(event model.Event) map[string]any {
	attempt := event.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	values := map[string]any{
		"event_id":     event.ID,
		"event_type":   string(event.Type),
		"workspace_id": event.WorkspaceID,
		"attempt":      attempt,
	}

	if event.ProjectID != nil {
		values["project_id"] = *event.ProjectID
	}
	if event.TaskID != nil {
		values["task_id"] = *event.TaskID
	}
	if event.ActorID != nil {
		values["actor_id"] = *event.ActorID
	}
	if len(event.Payload) > 0 {
		values["payload"] = string(event.Payload)
	}
	if event.TraceID != nil && *event.TraceID != "" {
		values["trace_id"] = *event.TraceID
	}
	if !event.CreatedAt.IsZero() {
		values["created_at"] = event.CreatedAt.UnixMilli()
	}

	return values
}
