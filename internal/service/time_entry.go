package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type CreateTimeEntryParams struct {
	StartedAt   time.Time
	EndedAt     *time.Time
	Description *string
	TaskID      int64
	UserID      int64
}

type UpdateTimeEntryParams struct {
	StartedAt   *time.Time
	EndedAt     *time.Time
	Description *string
}

type TimeEntryService interface {
	ListForTask(ctx context.Context, taskID, userID int64) ([]model.TimeEntry, error)
	Get(ctx context.Context, entryID, userID int64) (*model.TimeEntry, error)
	Create(ctx context.Context, params CreateTimeEntryParams) (*model.TimeEntry, error)
	Update(ctx context.Context, entryID, userID int64, params UpdateTimeEntryParams) (*model.TimeEntry, error)
	Stop(ctx context.Context, entryID, userID int64) (*model.TimeEntry, error)
	Delete(ctx context.Context, entryID, userID int64) error
}

type timeEntryService struct {
	stores StoreProvider
	events eventEmitter
	access access
	now    func() time.Time
}

func NewTimeEntryService(stores StoreProvider, publisher EventPublisher) TimeEntryService {
	return &timeEntryService{
		stores: stores,
		events: newEventEmitter(publisher),
		access: access{stores: stores},
		now:    time.Now,
	}
}

func (s *timeEntryService) ListForTask(ctx context.Context, taskID, userID int64) ([]model.TimeEntry, error) {
	if _, _, err := s.access.task(ctx, taskID, userID); err != nil {
		return nil, err
	}
	entries, err := s.stores.TimeEntries().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}

func (s *timeEntryService) Get(ctx context.Context, entryID, userID int64) (*model.TimeEntry, error) {
	entry, err := s.stores.TimeEntries().GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	if _, _, err := s.access.task(ctx, entry.TaskID, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryService) Create(ctx context.Context, params CreateTimeEntryParams) (*model.TimeEntry, error) {
	task, project, err := s.access.task(ctx, params.TaskID, params.UserID)
	if err != nil {
		return nil, err
	}

	entry := &model.TimeEntry{
		ID:          id.New(),
		TaskID:      task.ID,
		UserID:      params.UserID,
		Description: params.Description,
		StartedAt:   params.StartedAt,
		EndedAt:     params.EndedAt,
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = s.now()
	}
	if err := computeDuration(entry); err != nil {
		return nil, err
	}

	if err := s.stores.TimeEntries().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating time entry: %w", err)
	}

	s.events.emit(ctx, taskEvent(model.EventTimeEntryCreated, project.WorkspaceID, task, &params.UserID), model.TimeEntryPayload{
		TimeEntryID:     entry.ID,
		DurationSeconds: entry.DurationSeconds,
		Running:         entry.EndedAt == nil,
	})
	return entry, nil
}

func (s *timeEntryService) Update(ctx context.Context, entryID, userID int64, params UpdateTimeEntryParams) (*model.TimeEntry, error) {
	entry, err := s.own(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}

	if params.StartedAt != nil {
		entry.StartedAt = *params.StartedAt
	}
	if params.EndedAt != nil {
		entry.EndedAt = params.EndedAt
	}
	if params.Description != nil {
		entry.Description = params.Description
	}
	if err := computeDuration(entry); err != nil {
		return nil, err
	}

	if err := s.stores.TimeEntries().Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("updating time entry: %w", err)
	}
	return entry, nil
}

func (s *timeEntryService) Stop(ctx context.Context, entryID, userID int64) (*model.TimeEntry, error) {
	entry, err := s.own(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if !entry.IsRunning() {
		return nil, fmt.Errorf("%w: time entry is already stopped", ErrConflict)
	}

	now := s.now()
	entry.EndedAt = &now
	if err := computeDuration(entry); err != nil {
		return nil, err
	}
	if err := s.stores.TimeEntries().Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("stopping time entry: %w", err)
	}
	return entry, nil
}

func (s *timeEntryService) Delete(ctx context.Context, entryID, userID int64) error {
	if _, err := s.own(ctx, entryID, userID); err != nil {
		return err
	}
	if err := s.stores.TimeEntries().Delete(ctx, entryID); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

func (s *timeEntryService) own(ctx context.Context, entryID, userID int64) (*model.TimeEntry, error) {
	entry, err := s.Get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return entry, nil
}

// computeDuration sets DurationSeconds for ended entries and rejects an end
// before the start. Running entries have a zero duration.
func computeDuration(entry *model.TimeEntry) error {
	if entry.EndedAt == nil {
		entry.DurationSeconds = 0
		return nil
	}
	if entry.EndedAt.Before(entry.StartedAt) {
		return invalid("end time must not be before start time")
	}
	entry.DurationSeconds = int64(entry.EndedAt.Sub(entry.StartedAt) / time.Second)
	return nil
}
