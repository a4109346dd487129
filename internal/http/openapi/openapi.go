// Package openapi describes the HTTP API as an OpenAPI 3.1 document whose
// schemas are reflected from the dto package.
package openapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
)

type Document struct {
	OpenAPI string                          `json:"openapi"`
	Info    Info                            `json:"info"`
	Paths   map[string]map[string]Operation `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Tags        []string            `json:"tags"`
	Security    []map[string][]any  `json:"security,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// Route documents one endpoint. Request and Response are zero values of the
// dto types; nil means no body.
type Route struct {
	Method   string
	Path     string
	Summary  string
	Tag      string
	Public   bool
	Status   int
	Request  any
	Response any
}

var routes = []Route{
	{Method: http.MethodGet, Path: "/api/config", Summary: "Feature flags of this instance", Tag: "config", Public: true, Response: dto.ConfigResponse{}},
	{Method: http.MethodPost, Path: "/api/auth/sign-up", Summary: "Create an account", Tag: "auth", Public: true, Status: http.StatusCreated, Request: dto.SignUpRequest{}, Response: dto.SessionResponse{}},
	{Method: http.MethodPost, Path: "/api/auth/sign-in", Summary: "Sign in with email and password", Tag: "auth", Public: true, Request: dto.SignInRequest{}, Response: dto.SessionResponse{}},
	{Method: http.MethodPost, Path: "/api/auth/sign-out", Summary: "End the current session", Tag: "auth", Public: true},
	{Method: http.MethodGet, Path: "/api/auth/session", Summary: "Current user", Tag: "auth", Response: dto.SessionResponse{}},
	{Method: http.MethodGet, Path: "/api/auth/github", Summary: "Start GitHub sign-in", Tag: "auth", Public: true, Status: http.StatusTemporaryRedirect},
	{Method: http.MethodGet, Path: "/api/auth/github/callback", Summary: "GitHub sign-in callback", Tag: "auth", Public: true, Status: http.StatusTemporaryRedirect},
	{Method: http.MethodGet, Path: "/api/auth/sso", Summary: "Start SSO sign-in", Tag: "auth", Public: true, Status: http.StatusTemporaryRedirect},
	{Method: http.MethodGet, Path: "/api/auth/sso/callback", Summary: "SSO sign-in callback", Tag: "auth", Public: true, Status: http.StatusTemporaryRedirect},
	{Method: http.MethodGet, Path: "/api/invitation/:token", Summary: "Invitation details", Tag: "invitation", Public: true, Response: dto.InvitationDetailsResponse{}},
	{Method: http.MethodPost, Path: "/api/invitation/:token/accept", Summary: "Accept an invitation", Tag: "invitation", Response: dto.MemberResponse{}},

	{Method: http.MethodGet, Path: "/api/workspace", Summary: "List workspaces", Tag: "workspace", Response: []dto.WorkspaceResponse{}},
	{Method: http.MethodPost, Path: "/api/workspace", Summary: "Create a workspace", Tag: "workspace", Status: http.StatusCreated, Request: dto.CreateWorkspaceRequest{}, Response: dto.WorkspaceResponse{}},
	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id", Summary: "Get a workspace", Tag: "workspace", Response: dto.WorkspaceResponse{}},
	{Method: http.MethodPut, Path: "/api/workspace/:workspace_id", Summary: "Update a workspace", Tag: "workspace", Request: dto.UpdateWorkspaceRequest{}, Response: dto.WorkspaceResponse{}},
	{Method: http.MethodDelete, Path: "/api/workspace/:workspace_id", Summary: "Delete a workspace", Tag: "workspace", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id/members", Summary: "List members", Tag: "workspace", Response: []dto.MemberResponse{}},
	{Method: http.MethodPut, Path: "/api/workspace/:workspace_id/members/:user_id", Summary: "Change a member role", Tag: "workspace", Request: dto.UpdateMemberRoleRequest{}, Response: dto.MemberResponse{}},
	{Method: http.MethodDelete, Path: "/api/workspace/:workspace_id/members/:user_id", Summary: "Remove a member", Tag: "workspace", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id/invitations", Summary: "List invitations", Tag: "invitation", Response: []dto.InvitationResponse{}},
	{Method: http.MethodPost, Path: "/api/workspace/:workspace_id/invitations", Summary: "Invite by email", Tag: "invitation", Status: http.StatusCreated, Request: dto.CreateInvitationRequest{}, Response: dto.InvitationResponse{}},
	{Method: http.MethodDelete, Path: "/api/workspace/:workspace_id/invitations/:invitation_id", Summary: "Revoke an invitation", Tag: "invitation", Response: dto.InvitationResponse{}},
	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id/labels", Summary: "List labels", Tag: "label", Response: []dto.LabelResponse{}},
	{Method: http.MethodPost, Path: "/api/workspace/:workspace_id/labels", Summary: "Create a label", Tag: "label", Status: http.StatusCreated, Request: dto.CreateLabelRequest{}, Response: dto.LabelResponse{}},
	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id/search", Summary: "Search tasks and projects", Tag: "search", Response: []dto.SearchHitResponse{}},

	{Method: http.MethodGet, Path: "/api/workspace/:workspace_id/projects", Summary: "List projects with task counts", Tag: "project", Response: []dto.ProjectSummaryResponse{}},
	{Method: http.MethodPost, Path: "/api/workspace/:workspace_id/projects", Summary: "Create a project", Tag: "project", Status: http.StatusCreated, Request: dto.CreateProjectRequest{}, Response: dto.ProjectResponse{}},
	{Method: http.MethodGet, Path: "/api/project/:project_id", Summary: "Get a project", Tag: "project", Response: dto.ProjectResponse{}},
	{Method: http.MethodPut, Path: "/api/project/:project_id", Summary: "Update a project", Tag: "project", Request: dto.UpdateProjectRequest{}, Response: dto.ProjectResponse{}},
	{Method: http.MethodDelete, Path: "/api/project/:project_id", Summary: "Delete a project", Tag: "project", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/project/:project_id/columns", Summary: "List columns", Tag: "project", Response: []dto.ColumnResponse{}},
	{Method: http.MethodPost, Path: "/api/project/:project_id/columns", Summary: "Add a column", Tag: "project", Status: http.StatusCreated, Request: dto.CreateColumnRequest{}, Response: dto.ColumnResponse{}},
	{Method: http.MethodPut, Path: "/api/project/:project_id/columns/reorder", Summary: "Reorder columns", Tag: "project", Request: dto.ReorderColumnsRequest{}, Response: []dto.ColumnResponse{}},
	{Method: http.MethodPut, Path: "/api/project/:project_id/columns/:column_id", Summary: "Update a column", Tag: "project", Request: dto.UpdateColumnRequest{}, Response: dto.ColumnResponse{}},
	{Method: http.MethodDelete, Path: "/api/project/:project_id/columns/:column_id", Summary: "Delete an empty column", Tag: "project", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/project/:project_id/tasks", Summary: "Board with filters", Tag: "task", Response: dto.BoardResponse{}},
	{Method: http.MethodPost, Path: "/api/project/:project_id/tasks", Summary: "Create a task", Tag: "task", Status: http.StatusCreated, Request: dto.CreateTaskRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodGet, Path: "/api/project/:project_id/export", Summary: "Export a project as JSON", Tag: "task", Response: dto.ProjectExportResponse{}},
	{Method: http.MethodPost, Path: "/api/project/:project_id/import", Summary: "Import tasks", Tag: "task", Status: http.StatusCreated, Request: dto.ImportTasksRequest{}, Response: dto.ImportTasksResponse{}},
	{Method: http.MethodGet, Path: "/api/public/project/:project_id", Summary: "Public board", Tag: "project", Public: true, Response: dto.BoardResponse{}},

	{Method: http.MethodGet, Path: "/api/task/:task_id", Summary: "Get a task", Tag: "task", Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id", Summary: "Replace a task", Tag: "task", Request: dto.UpdateTaskRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodDelete, Path: "/api/task/:task_id", Summary: "Delete a task", Tag: "task", Status: http.StatusNoContent},
	{Method: http.MethodPut, Path: "/api/task/:task_id/status", Summary: "Change status", Tag: "task", Request: dto.UpdateStatusRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/priority", Summary: "Change priority", Tag: "task", Request: dto.UpdatePriorityRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/assignee", Summary: "Change assignee", Tag: "task", Request: dto.UpdateAssigneeRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/due-date", Summary: "Change due date", Tag: "task", Request: dto.UpdateDueDateRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/title", Summary: "Change title", Tag: "task", Request: dto.UpdateTitleRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/description", Summary: "Change description", Tag: "task", Request: dto.UpdateDescriptionRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodPut, Path: "/api/task/:task_id/move", Summary: "Move on the board", Tag: "task", Request: dto.MoveTaskRequest{}, Response: dto.TaskResponse{}},
	{Method: http.MethodGet, Path: "/api/task/:task_id/activities", Summary: "Task history and comments", Tag: "activity", Response: []dto.ActivityResponse{}},
	{Method: http.MethodPost, Path: "/api/task/:task_id/comments", Summary: "Comment on a task", Tag: "activity", Status: http.StatusCreated, Request: dto.CommentRequest{}, Response: dto.ActivityResponse{}},
	{Method: http.MethodPut, Path: "/api/comment/:activity_id", Summary: "Edit a comment", Tag: "activity", Request: dto.CommentRequest{}, Response: dto.ActivityResponse{}},
	{Method: http.MethodDelete, Path: "/api/comment/:activity_id", Summary: "Delete a comment", Tag: "activity", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/task/:task_id/labels", Summary: "Labels of a task", Tag: "label", Response: []dto.LabelResponse{}},
	{Method: http.MethodPost, Path: "/api/task/:task_id/labels/:label_id", Summary: "Attach a label", Tag: "label", Status: http.StatusNoContent},
	{Method: http.MethodDelete, Path: "/api/task/:task_id/labels/:label_id", Summary: "Detach a label", Tag: "label", Status: http.StatusNoContent},
	{Method: http.MethodPut, Path: "/api/label/:label_id", Summary: "Update a label", Tag: "label", Request: dto.UpdateLabelRequest{}, Response: dto.LabelResponse{}},
	{Method: http.MethodDelete, Path: "/api/label/:label_id", Summary: "Delete a label", Tag: "label", Status: http.StatusNoContent},
	{Method: http.MethodGet, Path: "/api/task/:task_id/time-entries", Summary: "Time entries of a task", Tag: "time-entry", Response: []dto.TimeEntryResponse{}},
	{Method: http.MethodPost, Path: "/api/task/:task_id/time-entries", Summary: "Log or start a time entry", Tag: "time-entry", Status: http.StatusCreated, Request: dto.CreateTimeEntryRequest{}, Response: dto.TimeEntryResponse{}},
	{Method: http.MethodGet, Path: "/api/time-entry/:time_entry_id", Summary: "Get a time entry", Tag: "time-entry", Response: dto.TimeEntryResponse{}},
	{Method: http.MethodPut, Path: "/api/time-entry/:time_entry_id", Summary: "Update a time entry", Tag: "time-entry", Request: dto.UpdateTimeEntryRequest{}, Response: dto.TimeEntryResponse{}},
	{Method: http.MethodDelete, Path: "/api/time-entry/:time_entry_id", Summary: "Delete a time entry", Tag: "time-entry", Status: http.StatusNoContent},
	{Method: http.MethodPost, Path: "/api/time-entry/:time_entry_id/stop", Summary: "Stop a running entry", Tag: "time-entry", Response: dto.TimeEntryResponse{}},

	{Method: http.MethodGet, Path: "/api/notification", Summary: "List notifications", Tag: "notification", Response: []dto.NotificationResponse{}},
	{Method: http.MethodDelete, Path: "/api/notification", Summary: "Clear all notifications", Tag: "notification", Response: dto.AffectedResponse{}},
	{Method: http.MethodGet, Path: "/api/notification/unread-count", Summary: "Unread count", Tag: "notification", Response: dto.UnreadCountResponse{}},
	{Method: http.MethodPut, Path: "/api/notification/read-all", Summary: "Mark all read", Tag: "notification", Response: dto.AffectedResponse{}},
	{Method: http.MethodPut, Path: "/api/notification/:notification_id/read", Summary: "Mark one read", Tag: "notification", Status: http.StatusNoContent},

	{Method: http.MethodGet, Path: "/api/project/:project_id/integrations/:provider", Summary: "Get the integration", Tag: "integration", Response: dto.IntegrationResponse{}},
	{Method: http.MethodPost, Path: "/api/project/:project_id/integrations/:provider", Summary: "Connect a repository", Tag: "integration", Status: http.StatusCreated, Request: dto.ConnectIntegrationRequest{}, Response: dto.IntegrationResponse{}},
	{Method: http.MethodDelete, Path: "/api/project/:project_id/integrations/:provider", Summary: "Disconnect", Tag: "integration", Status: http.StatusNoContent},
	{Method: http.MethodPost, Path: "/api/project/:project_id/integrations/:provider/import", Summary: "Import open issues", Tag: "integration", Response: dto.ImportIssuesResponse{}},
	{Method: http.MethodPost, Path: "/api/integrations/:provider/repositories", Summary: "List reachable repositories", Tag: "integration", Request: dto.ListRepositoriesRequest{}},

	{Method: http.MethodPost, Path: "/api/webhook/github", Summary: "GitHub App webhook", Tag: "webhook", Public: true},
	{Method: http.MethodPost, Path: "/api/webhook/gitea/:integration_id", Summary: "Gitea webhook", Tag: "webhook", Public: true},
	{Method: http.MethodPost, Path: "/api/webhook/gitlab/:integration_id", Summary: "GitLab webhook", Tag: "webhook", Public: true},
}

// Routes returns the documented endpoints.
func Routes() []Route {
	return routes
}

func Build(info Info) *Document {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	doc := &Document{
		OpenAPI: "3.1.0",
		Info:    info,
		Paths:   make(map[string]map[string]Operation),
	}

	for _, r := range routes {
		status := r.Status
		if status == 0 {
			status = http.StatusOK
		}

		op := Operation{
			Summary:   r.Summary,
			Tags:      []string{r.Tag},
			Responses: map[string]Response{},
		}
		if !r.Public {
			op.Security = []map[string][]any{{"session": {}}}
		}
		if r.Request != nil {
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{"application/json": {Schema: reflector.Reflect(r.Request)}},
			}
		}

		resp := Response{Description: http.StatusText(status)}
		if r.Response != nil {
			resp.Content = map[string]MediaType{"application/json": {Schema: reflector.Reflect(r.Response)}}
		}
		op.Responses[strconv.Itoa(status)] = resp

		path := toOpenAPIPath(r.Path)
		if doc.Paths[path] == nil {
			doc.Paths[path] = make(map[string]Operation)
		}
		doc.Paths[path][strings.ToLower(r.Method)] = op
	}

	return doc
}

// toOpenAPIPath rewrites gin parameters: /task/:task_id -> /task/{task_id}.
func toOpenAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if name, ok := strings.CutPrefix(s, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

// Handler serves the document, built once on first request.
func Handler(info Info) gin.HandlerFunc {
	var (
		once sync.Once
		doc  *Document
	)
	return func(c *gin.Context) {
		once.Do(func() { doc = Build(info) })
		c.JSON(http.StatusOK, doc)
	}
}
