package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), service.CreateProjectParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Icon:        req.Icon,
		Description: req.Description,
		WorkspaceID: workspaceID,
		UserID:      user.ID,
	})
	if err != nil {
		respondError(c, err, "create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		respondError(c, err, "list projects")
		return
	}

	resp := make([]dto.ProjectSummaryResponse, len(projects))
	for i := range projects {
		resp[i] = dto.ToProjectSummaryResponse(&projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), projectID, user.ID)
	if err != nil {
		respondError(c, err, "get project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// GetPublic serves the read-only board of a public project without a session.
func (h *ProjectHandler) GetPublic(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	board, err := h.projectService.GetPublic(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, "get project")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(board))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), projectID, user.ID, service.UpdateProjectParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Icon:        req.Icon,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err, "update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID, user.ID); err != nil {
		respondError(c, err, "delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListColumns(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	columns, err := h.projectService.ListColumns(c.Request.Context(), projectID, user.ID)
	if err != nil {
		respondError(c, err, "list columns")
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnResponses(columns))
}

func (h *ProjectHandler) CreateColumn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	column, err := h.projectService.CreateColumn(c.Request.Context(), projectID, user.ID, req.Name, req.IsFinal)
	if err != nil {
		respondError(c, err, "create column")
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnResponse(column))
}

func (h *ProjectHandler) UpdateColumn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "column_id")
	if !ok {
		return
	}

	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	column, err := h.projectService.UpdateColumn(c.Request.Context(), columnID, user.ID, service.UpdateColumnParams{
		Name:    req.Name,
		IsFinal: req.IsFinal,
	})
	if err != nil {
		respondError(c, err, "update column")
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnResponse(column))
}

func (h *ProjectHandler) DeleteColumn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "column_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteColumn(c.Request.Context(), columnID, user.ID); err != nil {
		respondError(c, err, "delete column")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ReorderColumns(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req dto.ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ids := make([]int64, len(req.ColumnIDs))
	for i, raw := range req.ColumnIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid column id " + strconv.Quote(raw)})
			return
		}
		ids[i] = id
	}

	columns, err := h.projectService.ReorderColumns(c.Request.Context(), projectID, user.ID, ids)
	if err != nil {
		respondError(c, err, "reorder columns")
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnResponses(columns))
}
