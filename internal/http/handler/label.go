package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type LabelHandler struct {
	labelService service.LabelService
}

func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

func (h *LabelHandler) ListForWorkspace(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	labels, err := h.labelService.ListForWorkspace(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		respondError(c, err, "list labels")
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelResponses(labels))
}

func (h *LabelHandler) ListForTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	labels, err := h.labelService.ListForTask(c.Request.Context(), taskID, user.ID)
	if err != nil {
		respondError(c, err, "list labels")
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelResponses(labels))
}

func (h *LabelHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	label, err := h.labelService.Create(c.Request.Context(), workspaceID, user.ID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "create label")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelResponse(label))
}

func (h *LabelHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	var req dto.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	label, err := h.labelService.Update(c.Request.Context(), labelID, user.ID, service.UpdateLabelParams{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err, "update label")
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelResponse(label))
}

func (h *LabelHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labelService.Delete(c.Request.Context(), labelID, user.ID); err != nil {
		respondError(c, err, "delete label")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LabelHandler) Attach(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labelService.Attach(c.Request.Context(), labelID, taskID, user.ID); err != nil {
		respondError(c, err, "attach label")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LabelHandler) Detach(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labelService.Detach(c.Request.Context(), labelID, taskID, user.ID); err != nil {
		respondError(c, err, "detach label")
		return
	}

	c.Status(http.StatusNoContent)
}
