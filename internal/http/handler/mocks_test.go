package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

const testToken = "valid-token"

var testUser = &model.User{ID: 1001, Name: "Ada", Email: "ada@example.com"}

// mockAuthService also serves as the session validator of RequireAuth:
// testToken resolves to testUser.
type mockAuthService struct {
	service.AuthService

	signUpFn         func(ctx context.Context, params service.SignUpParams, meta service.SessionMeta) (*model.User, *model.Session, error)
	signInFn         func(ctx context.Context, email, password string, meta service.SessionMeta) (*model.User, *model.Session, error)
	signOutFn        func(ctx context.Context, token string) error
	githubCallbackFn func(ctx context.Context, code string, meta service.SessionMeta) (*model.User, *model.Session, error)
	githubURLFn      func(state string) (string, error)
}

func (m *mockAuthService) ValidateSession(_ context.Context, token string) (*model.User, error) {
	if token == testToken {
		return testUser, nil
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) SignUp(ctx context.Context, params service.SignUpParams, meta service.SessionMeta) (*model.User, *model.Session, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, params, meta)
	}
	return nil, nil, nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string, meta service.SessionMeta) (*model.User, *model.Session, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password, meta)
	}
	return nil, nil, nil
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	if m.signOutFn != nil {
		return m.signOutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) GitHubAuthURL(state string) (string, error) {
	if m.githubURLFn != nil {
		return m.githubURLFn(state)
	}
	return "", service.ErrProviderDisabled
}

func (m *mockAuthService) HandleGitHubCallback(ctx context.Context, code string, meta service.SessionMeta) (*model.User, *model.Session, error) {
	if m.githubCallbackFn != nil {
		return m.githubCallbackFn(ctx, code, meta)
	}
	return nil, nil, service.ErrProviderDisabled
}

type mockWorkspaceService struct {
	service.WorkspaceService

	createFn           func(ctx context.Context, params service.CreateWorkspaceParams) (*model.Workspace, error)
	getFn              func(ctx context.Context, workspaceID, userID int64) (*model.Workspace, error)
	updateMemberRoleFn func(ctx context.Context, workspaceID, actorID, memberID int64, role model.MemberRole) (*model.Member, error)
}

func (m *mockWorkspaceService) Create(ctx context.Context, params service.CreateWorkspaceParams) (*model.Workspace, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockWorkspaceService) Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, error) {
	if m.getFn != nil {
		return m.getFn(ctx, workspaceID, userID)
	}
	return nil, service.ErrNotFound
}

func (m *mockWorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID int64, role model.MemberRole) (*model.Member, error) {
	if m.updateMemberRoleFn != nil {
		return m.updateMemberRoleFn(ctx, workspaceID, actorID, memberID, role)
	}
	return nil, nil
}

type mockInvitationService struct {
	service.InvitationService

	inviteFn     func(ctx context.Context, params service.InviteParams) (*model.Invitation, string, error)
	getByTokenFn func(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error)
	acceptFn     func(ctx context.Context, token string, user *model.User) (*model.Member, error)
}

func (m *mockInvitationService) Invite(ctx context.Context, params service.InviteParams) (*model.Invitation, string, error) {
	if m.inviteFn != nil {
		return m.inviteFn(ctx, params)
	}
	return nil, "", nil
}

func (m *mockInvitationService) GetByToken(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil, service.ErrInviteNotFound
}

func (m *mockInvitationService) Accept(ctx context.Context, token string, user *model.User) (*model.Member, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, user)
	}
	return nil, nil
}

type mockProjectService struct {
	service.ProjectService

	getPublicFn      func(ctx context.Context, projectID int64) (*model.Board, error)
	reorderColumnsFn func(ctx context.Context, projectID, userID int64, orderedIDs []int64) ([]model.Column, error)
}

func (m *mockProjectService) GetPublic(ctx context.Context, projectID int64) (*model.Board, error) {
	if m.getPublicFn != nil {
		return m.getPublicFn(ctx, projectID)
	}
	return nil, service.ErrNotFound
}

func (m *mockProjectService) ReorderColumns(ctx context.Context, projectID, userID int64, orderedIDs []int64) ([]model.Column, error) {
	if m.reorderColumnsFn != nil {
		return m.reorderColumnsFn(ctx, projectID, userID, orderedIDs)
	}
	return nil, nil
}

type mockTaskService struct {
	service.TaskService

	createFn         func(ctx context.Context, params service.CreateTaskParams) (*model.Task, error)
	getFn            func(ctx context.Context, taskID, userID int64) (*model.Task, error)
	listBoardFn      func(ctx context.Context, projectID, userID int64, filter model.TaskFilter) (*model.Board, error)
	updateAssigneeFn func(ctx context.Context, taskID, userID int64, assigneeID *int64) (*model.Task, error)
	moveFn           func(ctx context.Context, taskID, userID int64, status string, position int) (*model.Task, error)
	importFn         func(ctx context.Context, projectID, userID int64, tasks []service.ImportTask) ([]model.Task, error)
}

func (m *mockTaskService) Create(ctx context.Context, params service.CreateTaskParams) (*model.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockTaskService) Get(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, taskID, userID)
	}
	return nil, service.ErrNotFound
}

func (m *mockTaskService) ListBoard(ctx context.Context, projectID, userID int64, filter model.TaskFilter) (*model.Board, error) {
	if m.listBoardFn != nil {
		return m.listBoardFn(ctx, projectID, userID, filter)
	}
	return nil, nil
}

func (m *mockTaskService) UpdateAssignee(ctx context.Context, taskID, userID int64, assigneeID *int64) (*model.Task, error) {
	if m.updateAssigneeFn != nil {
		return m.updateAssigneeFn(ctx, taskID, userID, assigneeID)
	}
	return nil, nil
}

func (m *mockTaskService) Move(ctx context.Context, taskID, userID int64, status string, position int) (*model.Task, error) {
	if m.moveFn != nil {
		return m.moveFn(ctx, taskID, userID, status, position)
	}
	return nil, nil
}

func (m *mockTaskService) Import(ctx context.Context, projectID, userID int64, tasks []service.ImportTask) ([]model.Task, error) {
	if m.importFn != nil {
		return m.importFn(ctx, projectID, userID, tasks)
	}
	return nil, nil
}

type mockIntegrationService struct {
	service.IntegrationService

	importIssuesFn func(ctx context.Context, projectID, userID int64, provider model.Provider) (int, error)
}

func (m *mockIntegrationService) ImportIssues(ctx context.Context, projectID, userID int64, provider model.Provider) (int, error) {
	if m.importIssuesFn != nil {
		return m.importIssuesFn(ctx, projectID, userID, provider)
	}
	return 0, nil
}

type mockSearchService struct {
	searchFn func(ctx context.Context, workspaceID, userID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error)
}

func (m *mockSearchService) Search(ctx context.Context, workspaceID, userID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, workspaceID, userID, query, kinds, limit)
	}
	return []model.SearchHit{}, nil
}

// newRouter returns a test engine plus an authenticated route group.
func newRouter(auth *mockAuthService) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.RequireAuth(auth, false))
	return router, protected
}

func doRequest(router *gin.Engine, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testSession() *model.Session {
	return &model.Session{ID: 1, Token: "new-session-token", UserID: testUser.ID, ExpiresAt: time.Now().Add(24 * time.Hour)}
}

func ptr[T any](v T) *T {
	return &v
}
