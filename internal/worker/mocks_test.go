package worker_test

import (
	"context"
	"sync"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
)

type requeued struct {
	msg     queue.Message
	attempt int
	errMsg  string
}

type mockConsumer struct {
	mu       sync.Mutex
	batches  [][]queue.Message
	readErr  error
	acked    []string
	requeued []requeued
	dlq      []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	if len(m.batches) == 0 {
		return nil, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) RequeueWithAttempt(_ context.Context, msg queue.Message, attempt int, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, requeued{msg: msg, attempt: attempt, errMsg: errMsg})
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	return nil
}

func (m *mockConsumer) ackedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.acked...)
}

type mockRecorder struct {
	events []model.EventType
	err    error
}

func (m *mockRecorder) Record(_ context.Context, event model.Event) (bool, error) {
	m.events = append(m.events, event.Type)
	return m.err == nil, m.err
}

type mockNotifier struct {
	events []model.EventType
}

func (m *mockNotifier) Notify(_ context.Context, event model.Event) (int, error) {
	m.events = append(m.events, event.Type)
	return 1, nil
}

type mockSyncer struct {
	events []model.EventType
}

func (m *mockSyncer) SyncEvent(_ context.Context, event model.Event) error {
	m.events = append(m.events, event.Type)
	return nil
}

type mockIndexer struct {
	events []model.EventType
}

func (m *mockIndexer) EventTypes() []model.EventType {
	return []model.EventType{model.EventTaskCreated, model.EventProjectCreated}
}

func (m *mockIndexer) HandleEvent(_ context.Context, event model.Event) error {
	m.events = append(m.events, event.Type)
	return nil
}

func message(id string, eventType model.EventType, attempt int) queue.Message {
	taskID := int64(30)
	projectID := int64(20)
	return queue.Message{
		ID: id,
		Event: model.Event{
			ID:          9001,
			Type:        eventType,
			WorkspaceID: 10,
			ProjectID:   &projectID,
			TaskID:      &taskID,
			Attempt:     attempt,
		},
	}
}
