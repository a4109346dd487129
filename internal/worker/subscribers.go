package worker

import (
	"context"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

var activityEvents = []model.EventType{
	model.EventTaskCreated,
	model.EventTaskStatusChanged,
	model.EventTaskPriorityChanged,
	model.EventTaskAssigneeChanged,
	model.EventTaskDueDateChanged,
	model.EventTaskTitleChanged,
	model.EventTaskDescriptionChanged,
	model.EventTimeEntryCreated,
}

var notificationEvents = []model.EventType{
	model.EventTaskAssigneeChanged,
	model.EventTaskStatusChanged,
	model.EventCommentCreated,
	model.EventMemberAdded,
}

var syncEvents = []model.EventType{
	model.EventTaskCreated,
	model.EventTaskStatusChanged,
	model.EventTaskTitleChanged,
	model.EventTaskDescriptionChanged,
}

type ActivityRecorder interface {
	Record(ctx context.Context, event model.Event) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, event model.Event) (int, error)
}

type IssueSyncer interface {
	SyncEvent(ctx context.Context, event model.Event) error
}

type SearchIndexer interface {
	EventTypes() []model.EventType
	HandleEvent(ctx context.Context, event model.Event) error
}

// Subscribers are the event consumers of the worker. Nil fields are skipped.
type Subscribers struct {
	Activities    ActivityRecorder
	Notifications Notifier
	Integrations  IssueSyncer
	Search        SearchIndexer
}

// Register subscribes every configured consumer to the events it handles.
// Order per event type is activity, notification, integration, search.
func Register(d *Dispatcher, s Subscribers) {
	if s.Activities != nil {
		d.Subscribe("activity", func(ctx context.Context, event model.Event) error {
			_, err := s.Activities.Record(ctx, event)
			return err
		}, activityEvents...)
	}
	if s.Notifications != nil {
		d.Subscribe("notification", func(ctx context.Context, event model.Event) error {
			_, err := s.Notifications.Notify(ctx, event)
			return err
		}, notificationEvents...)
	}
	if s.Integrations != nil {
		d.Subscribe("integration", s.Integrations.SyncEvent, syncEvents...)
	}
	if s.Search != nil {
		d.Subscribe("search", s.Search.HandleEvent, s.Search.EventTypes()...)
	}
}
