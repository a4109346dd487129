package service

import (
	"context"

	"github.com/usekaneo/kaneo-sub002/core/db"
	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

// StoreProvider exposes the stores. It is implemented by *store.Stores, both
// for the pool and inside a transaction.
type StoreProvider interface {
	Users() store.UserStore
	Sessions() store.SessionStore
	Workspaces() store.WorkspaceStore
	Members() store.MemberStore
	Invitations() store.InvitationStore
	Projects() store.ProjectStore
	Columns() store.ColumnStore
	Tasks() store.TaskStore
	Labels() store.LabelStore
	Activities() store.ActivityStore
	Notifications() store.NotificationStore
	TimeEntries() store.TimeEntryStore
	Integrations() store.IntegrationStore
	ExternalLinks() store.ExternalLinkStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
