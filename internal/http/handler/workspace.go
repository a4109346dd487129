package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), service.CreateWorkspaceParams{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     user.ID,
	})
	if err != nil {
		respondError(c, err, "create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "list workspaces")
		return
	}

	resp := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		resp[i] = dto.ToWorkspaceResponse(&workspaces[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		respondError(c, err, "get workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), workspaceID, user.ID, service.UpdateWorkspaceParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), workspaceID, user.ID); err != nil {
		respondError(c, err, "delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		respondError(c, err, "list members")
		return
	}

	resp := make([]dto.MemberResponse, len(members))
	for i := range members {
		resp[i] = dto.ToMemberResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.workspaceService.UpdateMemberRole(c.Request.Context(), workspaceID, user.ID, memberID, req.Role)
	if err != nil {
		respondError(c, err, "update member role")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), workspaceID, user.ID, memberID); err != nil {
		respondError(c, err, "remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
