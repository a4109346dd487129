package service_test

import (
	"context"
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type mockUserStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*model.User, error)
	getByGitHubIDFn   func(ctx context.Context, githubID string) (*model.User, error)
	getByWorkOSIDFn   func(ctx context.Context, workosID string) (*model.User, error)
	createFn          func(ctx context.Context, user *model.User) error
	updateFn          func(ctx context.Context, user *model.User) error
	setPasswordHashFn func(ctx context.Context, id int64, hash string) error
	listByIDsFn       func(ctx context.Context, ids []int64) ([]model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	if m.getByGitHubIDFn != nil {
		return m.getByGitHubIDFn(ctx, githubID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	if m.getByWorkOSIDFn != nil {
		return m.getByWorkOSIDFn(ctx, workosID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	if m.setPasswordHashFn != nil {
		return m.setPasswordHashFn(ctx, id, hash)
	}
	return nil
}

func (m *mockUserStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

type mockSessionStore struct {
	createFn              func(ctx context.Context, session *model.Session) error
	getValidByTokenHashFn func(ctx context.Context, tokenHash string) (*model.Session, error)
	deleteByTokenHashFn   func(ctx context.Context, tokenHash string) error
	deleteByUserFn        func(ctx context.Context, userID int64) error
	deleteExpiredFn       func(ctx context.Context) (int64, error)
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetValidByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	if m.getValidByTokenHashFn != nil {
		return m.getValidByTokenHashFn(ctx, tokenHash)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if m.deleteByTokenHashFn != nil {
		return m.deleteByTokenHashFn(ctx, tokenHash)
	}
	return nil
}

func (m *mockSessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockWorkspaceStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.Workspace, error)
	getBySlugFn  func(ctx context.Context, slug string) (*model.Workspace, error)
	createFn     func(ctx context.Context, ws *model.Workspace) error
	updateFn     func(ctx context.Context, ws *model.Workspace) error
	deleteFn     func(ctx context.Context, id int64) error
	listByUserFn func(ctx context.Context, userID int64) ([]model.Workspace, error)
}

func (m *mockWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) GetBySlug(ctx context.Context, slug string) (*model.Workspace, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	if m.createFn != nil {
		return m.createFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockWorkspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

type mockMemberStore struct {
	addFn        func(ctx context.Context, member *model.Member) error
	getFn        func(ctx context.Context, workspaceID, userID int64) (*model.Member, error)
	listFn       func(ctx context.Context, workspaceID int64) ([]model.Member, error)
	updateRoleFn func(ctx context.Context, workspaceID, userID int64, role model.MemberRole) (*model.Member, error)
	removeFn     func(ctx context.Context, workspaceID, userID int64) error
}

func (m *mockMemberStore) Add(ctx context.Context, member *model.Member) error {
	if m.addFn != nil {
		return m.addFn(ctx, member)
	}
	return nil
}

func (m *mockMemberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.Member, error) {
	if m.getFn != nil {
		return m.getFn(ctx, workspaceID, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockMemberStore) List(ctx context.Context, workspaceID int64) ([]model.Member, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockMemberStore) UpdateRole(ctx context.Context, workspaceID, userID int64, role model.MemberRole) (*model.Member, error) {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, workspaceID, userID, role)
	}
	return nil, nil
}

func (m *mockMemberStore) Remove(ctx context.Context, workspaceID, userID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, workspaceID, userID)
	}
	return nil
}

type mockInvitationStore struct {
	createFn            func(ctx context.Context, inv *model.Invitation) error
	getByIDFn           func(ctx context.Context, id int64) (*model.Invitation, error)
	getByTokenFn        func(ctx context.Context, token string) (*model.Invitation, error)
	getPendingByEmailFn func(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	listByWorkspaceFn   func(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	updateStatusFn      func(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time) (*model.Invitation, error)
}

func (m *mockInvitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	return nil
}

func (m *mockInvitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) GetPendingByEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	if m.getPendingByEmailFn != nil {
		return m.getPendingByEmailFn(ctx, workspaceID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	if m.listByWorkspaceFn != nil {
		return m.listByWorkspaceFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockInvitationStore) UpdateStatus(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time) (*model.Invitation, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status, acceptedAt)
	}
	return nil, nil
}

type mockProjectStore struct {
	getByIDFn          func(ctx context.Context, id int64) (*model.Project, error)
	getBySlugFn        func(ctx context.Context, workspaceID int64, slug string) (*model.Project, error)
	createFn           func(ctx context.Context, project *model.Project) error
	updateFn           func(ctx context.Context, project *model.Project) error
	deleteFn           func(ctx context.Context, id int64) error
	listByWorkspaceFn  func(ctx context.Context, workspaceID int64) ([]model.Project, error)
	statsByWorkspaceFn func(ctx context.Context, workspaceID int64) (map[int64]model.ProjectStats, error)
	nextTaskNumberFn   func(ctx context.Context, projectID int64) (int32, error)
	listAfterFn        func(ctx context.Context, afterID int64, limit int32) ([]model.Project, error)
}

func (m *mockProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProjectStore) GetBySlug(ctx context.Context, workspaceID int64, slug string) (*model.Project, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, workspaceID, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockProjectStore) Create(ctx context.Context, project *model.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectStore) Update(ctx context.Context, project *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, project)
	}
	return nil
}

func (m *mockProjectStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProjectStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	if m.listByWorkspaceFn != nil {
		return m.listByWorkspaceFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockProjectStore) StatsByWorkspace(ctx context.Context, workspaceID int64) (map[int64]model.ProjectStats, error) {
	if m.statsByWorkspaceFn != nil {
		return m.statsByWorkspaceFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockProjectStore) NextTaskNumber(ctx context.Context, projectID int64) (int32, error) {
	if m.nextTaskNumberFn != nil {
		return m.nextTaskNumberFn(ctx, projectID)
	}
	return 0, nil
}

func (m *mockProjectStore) ListAfter(ctx context.Context, afterID int64, limit int32) ([]model.Project, error) {
	if m.listAfterFn != nil {
		return m.listAfterFn(ctx, afterID, limit)
	}
	return nil, nil
}

type mockColumnStore struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.Column, error)
	createFn         func(ctx context.Context, column *model.Column) error
	updateFn         func(ctx context.Context, column *model.Column) error
	updatePositionFn func(ctx context.Context, id int64, position int32) error
	deleteFn         func(ctx context.Context, id int64) error
	listByProjectFn  func(ctx context.Context, projectID int64) ([]model.Column, error)
	countTasksFn     func(ctx context.Context, projectID int64, status string) (int64, error)
}

func (m *mockColumnStore) GetByID(ctx context.Context, id int64) (*model.Column, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockColumnStore) Create(ctx context.Context, column *model.Column) error {
	if m.createFn != nil {
		return m.createFn(ctx, column)
	}
	return nil
}

func (m *mockColumnStore) Update(ctx context.Context, column *model.Column) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, column)
	}
	return nil
}

func (m *mockColumnStore) UpdatePosition(ctx context.Context, id int64, position int32) error {
	if m.updatePositionFn != nil {
		return m.updatePositionFn(ctx, id, position)
	}
	return nil
}

func (m *mockColumnStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockColumnStore) ListByProject(ctx context.Context, projectID int64) ([]model.Column, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockColumnStore) CountTasks(ctx context.Context, projectID int64, status string) (int64, error) {
	if m.countTasksFn != nil {
		return m.countTasksFn(ctx, projectID, status)
	}
	return 0, nil
}

type mockTaskStore struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.Task, error)
	createFn         func(ctx context.Context, task *model.Task) error
	updateFn         func(ctx context.Context, task *model.Task) error
	updatePositionFn func(ctx context.Context, id int64, status string, position int32) error
	deleteFn         func(ctx context.Context, id int64) error
	listByProjectFn  func(ctx context.Context, projectID int64) ([]model.Task, error)
	maxPositionFn    func(ctx context.Context, projectID int64, status string) (int32, error)
	searchFn         func(ctx context.Context, workspaceID int64, query string, limit int32) ([]model.SearchHit, error)
	listDocumentsFn  func(ctx context.Context, afterID int64, limit int32) ([]model.TaskDocument, error)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTaskStore) Create(ctx context.Context, task *model.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *model.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) UpdatePosition(ctx context.Context, id int64, status string, position int32) error {
	if m.updatePositionFn != nil {
		return m.updatePositionFn(ctx, id, status, position)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) ListByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockTaskStore) MaxPosition(ctx context.Context, projectID int64, status string) (int32, error) {
	if m.maxPositionFn != nil {
		return m.maxPositionFn(ctx, projectID, status)
	}
	return 0, nil
}

func (m *mockTaskStore) Search(ctx context.Context, workspaceID int64, query string, limit int32) ([]model.SearchHit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, workspaceID, query, limit)
	}
	return nil, nil
}

func (m *mockTaskStore) ListDocuments(ctx context.Context, afterID int64, limit int32) ([]model.TaskDocument, error) {
	if m.listDocumentsFn != nil {
		return m.listDocumentsFn(ctx, afterID, limit)
	}
	return nil, nil
}

type mockLabelStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*model.Label, error)
	createFn          func(ctx context.Context, label *model.Label) error
	updateFn          func(ctx context.Context, label *model.Label) error
	deleteFn          func(ctx context.Context, id int64) error
	listByWorkspaceFn func(ctx context.Context, workspaceID int64) ([]model.Label, error)
	listByTaskFn      func(ctx context.Context, taskID int64) ([]model.Label, error)
	listByProjectFn   func(ctx context.Context, projectID int64) (map[int64][]model.Label, error)
	attachFn          func(ctx context.Context, taskID, labelID int64) error
	detachFn          func(ctx context.Context, taskID, labelID int64) error
}

func (m *mockLabelStore) GetByID(ctx context.Context, id int64) (*model.Label, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLabelStore) Create(ctx context.Context, label *model.Label) error {
	if m.createFn != nil {
		return m.createFn(ctx, label)
	}
	return nil
}

func (m *mockLabelStore) Update(ctx context.Context, label *model.Label) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, label)
	}
	return nil
}

func (m *mockLabelStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockLabelStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Label, error) {
	if m.listByWorkspaceFn != nil {
		return m.listByWorkspaceFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockLabelStore) ListByTask(ctx context.Context, taskID int64) ([]model.Label, error) {
	if m.listByTaskFn != nil {
		return m.listByTaskFn(ctx, taskID)
	}
	return nil, nil
}

func (m *mockLabelStore) ListByProject(ctx context.Context, projectID int64) (map[int64][]model.Label, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockLabelStore) Attach(ctx context.Context, taskID, labelID int64) error {
	if m.attachFn != nil {
		return m.attachFn(ctx, taskID, labelID)
	}
	return nil
}

func (m *mockLabelStore) Detach(ctx context.Context, taskID, labelID int64) error {
	if m.detachFn != nil {
		return m.detachFn(ctx, taskID, labelID)
	}
	return nil
}

type mockActivityStore struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.Activity, error)
	createFn         func(ctx context.Context, activity *model.Activity) error
	createForEventFn func(ctx context.Context, activity *model.Activity) (bool, error)
	updateContentFn  func(ctx context.Context, id int64, content string) (*model.Activity, error)
	deleteFn         func(ctx context.Context, id int64) error
	listByTaskFn     func(ctx context.Context, taskID int64) ([]model.Activity, error)
}

func (m *mockActivityStore) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockActivityStore) Create(ctx context.Context, activity *model.Activity) error {
	if m.createFn != nil {
		return m.createFn(ctx, activity)
	}
	return nil
}

func (m *mockActivityStore) CreateForEvent(ctx context.Context, activity *model.Activity) (bool, error) {
	if m.createForEventFn != nil {
		return m.createForEventFn(ctx, activity)
	}
	return true, nil
}

func (m *mockActivityStore) UpdateContent(ctx context.Context, id int64, content string) (*model.Activity, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil, nil
}

func (m *mockActivityStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockActivityStore) ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error) {
	if m.listByTaskFn != nil {
		return m.listByTaskFn(ctx, taskID)
	}
	return nil, nil
}

type mockNotificationStore struct {
	createFn       func(ctx context.Context, n *model.Notification) (bool, error)
	listByUserFn   func(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	countUnreadFn  func(ctx context.Context, userID int64) (int64, error)
	markReadFn     func(ctx context.Context, id, userID int64) error
	markAllReadFn  func(ctx context.Context, userID int64) (int64, error)
	deleteByUserFn func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockNotificationStore) Create(ctx context.Context, n *model.Notification) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return true, nil
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, unreadOnly, limit)
	}
	return nil, nil
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id, userID int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, userID)
	}
	return nil
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return 0, nil
}

type mockTimeEntryStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.TimeEntry, error)
	createFn     func(ctx context.Context, entry *model.TimeEntry) error
	updateFn     func(ctx context.Context, entry *model.TimeEntry) error
	deleteFn     func(ctx context.Context, id int64) error
	listByTaskFn func(ctx context.Context, taskID int64) ([]model.TimeEntry, error)
}

func (m *mockTimeEntryStore) GetByID(ctx context.Context, id int64) (*model.TimeEntry, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTimeEntryStore) Create(ctx context.Context, entry *model.TimeEntry) error {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	return nil
}

func (m *mockTimeEntryStore) Update(ctx context.Context, entry *model.TimeEntry) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, entry)
	}
	return nil
}

func (m *mockTimeEntryStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTimeEntryStore) ListByTask(ctx context.Context, taskID int64) ([]model.TimeEntry, error) {
	if m.listByTaskFn != nil {
		return m.listByTaskFn(ctx, taskID)
	}
	return nil, nil
}

type mockIntegrationStore struct {
	getByIDFn                  func(ctx context.Context, id int64) (*model.Integration, error)
	getByProjectAndProviderFn  func(ctx context.Context, projectID int64, provider model.Provider) (*model.Integration, error)
	createFn                   func(ctx context.Context, integration *model.Integration) error
	updateFn                   func(ctx context.Context, integration *model.Integration) error
	deleteFn                   func(ctx context.Context, id int64) error
	listByProjectFn            func(ctx context.Context, projectID int64) ([]model.Integration, error)
	listActiveByRepositoryFn   func(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error)
	deactivateByInstallationFn func(ctx context.Context, installationID int64) (int64, error)
}

func (m *mockIntegrationStore) GetByID(ctx context.Context, id int64) (*model.Integration, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockIntegrationStore) GetByProjectAndProvider(ctx context.Context, projectID int64, provider model.Provider) (*model.Integration, error) {
	if m.getByProjectAndProviderFn != nil {
		return m.getByProjectAndProviderFn(ctx, projectID, provider)
	}
	return nil, store.ErrNotFound
}

func (m *mockIntegrationStore) Create(ctx context.Context, integration *model.Integration) error {
	if m.createFn != nil {
		return m.createFn(ctx, integration)
	}
	return nil
}

func (m *mockIntegrationStore) Update(ctx context.Context, integration *model.Integration) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, integration)
	}
	return nil
}

func (m *mockIntegrationStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockIntegrationStore) ListByProject(ctx context.Context, projectID int64) ([]model.Integration, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockIntegrationStore) ListActiveByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error) {
	if m.listActiveByRepositoryFn != nil {
		return m.listActiveByRepositoryFn(ctx, provider, owner, name)
	}
	return nil, nil
}

func (m *mockIntegrationStore) DeactivateByInstallation(ctx context.Context, installationID int64) (int64, error) {
	if m.deactivateByInstallationFn != nil {
		return m.deactivateByInstallationFn(ctx, installationID)
	}
	return 0, nil
}

type mockExternalLinkStore struct {
	createFn          func(ctx context.Context, link *model.ExternalLink) error
	getByTaskFn       func(ctx context.Context, taskID, integrationID int64) (*model.ExternalLink, error)
	getByExternalIDFn func(ctx context.Context, integrationID, externalID int64) (*model.ExternalLink, error)
	listByTaskFn      func(ctx context.Context, taskID int64) ([]model.ExternalLink, error)
}

func (m *mockExternalLinkStore) Create(ctx context.Context, link *model.ExternalLink) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockExternalLinkStore) GetByTask(ctx context.Context, taskID, integrationID int64) (*model.ExternalLink, error) {
	if m.getByTaskFn != nil {
		return m.getByTaskFn(ctx, taskID, integrationID)
	}
	return nil, store.ErrNotFound
}

func (m *mockExternalLinkStore) GetByExternalID(ctx context.Context, integrationID, externalID int64) (*model.ExternalLink, error) {
	if m.getByExternalIDFn != nil {
		return m.getByExternalIDFn(ctx, integrationID, externalID)
	}
	return nil, store.ErrNotFound
}

func (m *mockExternalLinkStore) ListByTask(ctx context.Context, taskID int64) ([]model.ExternalLink, error) {
	if m.listByTaskFn != nil {
		return m.listByTaskFn(ctx, taskID)
	}
	return nil, nil
}

type mockStoreProvider struct {
	users         *mockUserStore
	sessions      *mockSessionStore
	workspaces    *mockWorkspaceStore
	members       *mockMemberStore
	invitations   *mockInvitationStore
	projects      *mockProjectStore
	columns       *mockColumnStore
	tasks         *mockTaskStore
	labels        *mockLabelStore
	activities    *mockActivityStore
	notifications *mockNotificationStore
	timeEntries   *mockTimeEntryStore
	integrations  *mockIntegrationStore
	externalLinks *mockExternalLinkStore
}

func newMockStoreProvider() *mockStoreProvider {
	return &mockStoreProvider{
		users: &mockUserStore{},
		sessions: &mockSessionStore{},
		workspaces: &mockWorkspaceStore{},
		members: &mockMemberStore{},
		invitations: &mockInvitationStore{},
		projects: &mockProjectStore{},
		columns: &mockColumnStore{},
		tasks: &mockTaskStore{},
		labels: &mockLabelStore{},
		activities: &mockActivityStore{},
		notifications: &mockNotificationStore{},
		timeEntries: &mockTimeEntryStore{},
		integrations: &mockIntegrationStore{},
		externalLinks: &mockExternalLinkStore{},
	}
}

func (m *mockStoreProvider) Users() store.UserStore {
	return m.users
}

func (m *mockStoreProvider) Sessions() store.SessionStore {
	return m.sessions
}

func (m *mockStoreProvider) Workspaces() store.WorkspaceStore {
	return m.workspaces
}

func (m *mockStoreProvider) Members() store.MemberStore {
	return m.members
}

func (m *mockStoreProvider) Invitations() store.InvitationStore {
	return m.invitations
}

func (m *mockStoreProvider) Projects() store.ProjectStore {
	return m.projects
}

func (m *mockStoreProvider) Columns() store.ColumnStore {
	return m.columns
}

func (m *mockStoreProvider) Tasks() store.TaskStore {
	return m.tasks
}

func (m *mockStoreProvider) Labels() store.LabelStore {
	return m.labels
}

func (m *mockStoreProvider) Activities() store.ActivityStore {
	return m.activities
}

func (m *mockStoreProvider) Notifications() store.NotificationStore {
	return m.notifications
}

func (m *mockStoreProvider) TimeEntries() store.TimeEntryStore {
	return m.timeEntries
}

func (m *mockStoreProvider) Integrations() store.IntegrationStore {
	return m.integrations
}

func (m *mockStoreProvider) ExternalLinks() store.ExternalLinkStore {
	return m.externalLinks
}

type mockTxRunner struct {
	stores   *mockStoreProvider
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
	calls    int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(m.stores)
}

type mockPublisher struct {
	publishFn func(ctx context.Context, event model.Event) error
	events    []model.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event model.Event) error {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockPublisher) types() []model.EventType {
	types := make([]model.EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}
