package store

import (
	"context"
	"errors"
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByGitHubID(ctx context.Context, githubID string) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

// SessionStore defines the contract for session data access.
// Sessions are addressed by the hash of their token.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValidByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) // checks expiry
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error
	Update(ctx context.Context, ws *model.Workspace) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error)
}

type MemberStore interface {
	Add(ctx context.Context, member *model.Member) error
	Get(ctx context.Context, workspaceID, userID int64) (*model.Member, error)
	List(ctx context.Context, workspaceID int64) ([]model.Member, error)
	UpdateRole(ctx context.Context, workspaceID, userID int64, role model.MemberRole) (*model.Member, error)
	Remove(ctx context.Context, workspaceID, userID int64) error
}

type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetPendingByEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	UpdateStatus(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time) (*model.Invitation, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	GetBySlug(ctx context.Context, workspaceID int64, slug string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error)
	StatsByWorkspace(ctx context.Context, workspaceID int64) (map[int64]model.ProjectStats, error)
	// NextTaskNumber atomically reserves the next task number of the project.
	NextTaskNumber(ctx context.Context, projectID int64) (int32, error)
	ListAfter(ctx context.Context, afterID int64, limit int32) ([]model.Project, error)
}

type ColumnStore interface {
	GetByID(ctx context.Context, id int64) (*model.Column, error)
	Create(ctx context.Context, column *model.Column) error
	Update(ctx context.Context, column *model.Column) error
	UpdatePosition(ctx context.Context, id int64, position int32) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Column, error)
	CountTasks(ctx context.Context, projectID int64, status string) (int64, error)
}

type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	UpdatePosition(ctx context.Context, id int64, status string, position int32) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Task, error)
	// MaxPosition returns -1 for an empty column.
	MaxPosition(ctx context.Context, projectID int64, status string) (int32, error)
	Search(ctx context.Context, workspaceID int64, query string, limit int32) ([]model.SearchHit, error)
	ListDocuments(ctx context.Context, afterID int64, limit int32) ([]model.TaskDocument, error)
}

type LabelStore interface {
	GetByID(ctx context.Context, id int64) (*model.Label, error)
	Create(ctx context.Context, label *model.Label) error
	Update(ctx context.Context, label *model.Label) error
	Delete(ctx context.Context, id int64) error
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Label, error)
	ListByTask(ctx context.Context, taskID int64) ([]model.Label, error)
	ListByProject(ctx context.Context, projectID int64) (map[int64][]model.Label, error)
	Attach(ctx context.Context, taskID, labelID int64) error
	Detach(ctx context.Context, taskID, labelID int64) error
}

type ActivityStore interface {
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) error
	// CreateForEvent reports false when an activity for the event already exists.
	CreateForEvent(ctx context.Context, activity *model.Activity) (bool, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Activity, error)
	Delete(ctx context.Context, id int64) error
	ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error)
}

type NotificationStore interface {
	// Create reports false when the user was already notified of the event.
	Create(ctx context.Context, n *model.Notification) (bool, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

type TimeEntryStore interface {
	GetByID(ctx context.Context, id int64) (*model.TimeEntry, error)
	Create(ctx context.Context, entry *model.TimeEntry) error
	Update(ctx context.Context, entry *model.TimeEntry) error
	Delete(ctx context.Context, id int64) error
	ListByTask(ctx context.Context, taskID int64) ([]model.TimeEntry, error)
}

// IntegrationStore defines the contract for integration data access
type IntegrationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Integration, error)
	GetByProjectAndProvider(ctx context.Context, projectID int64, provider model.Provider) (*model.Integration, error)
	Create(ctx context.Context, integration *model.Integration) error
	Update(ctx context.Context, integration *model.Integration) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Integration, error)
	ListActiveByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error)
	DeactivateByInstallation(ctx context.Context, installationID int64) (int64, error)
}

type ExternalLinkStore interface {
	Create(ctx context.Context, link *model.ExternalLink) error
	GetByTask(ctx context.Context, taskID, integrationID int64) (*model.ExternalLink, error)
	GetByExternalID(ctx context.Context, integrationID, externalID int64) (*model.ExternalLink, error)
	ListByTask(ctx context.Context, taskID int64) ([]model.ExternalLink, error)
}
