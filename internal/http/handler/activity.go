package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), taskID, user.ID)
	if err != nil {
		respondError(c, err, "list activities")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}

func (h *ActivityHandler) CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	activity, err := h.activityService.CreateComment(c.Request.Context(), taskID, user.ID, req.Content)
	if err != nil {
		respondError(c, err, "create comment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToActivityResponse(activity))
}

func (h *ActivityHandler) UpdateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "activity_id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	activity, err := h.activityService.UpdateComment(c.Request.Context(), activityID, user.ID, req.Content)
	if err != nil {
		respondError(c, err, "update comment")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

func (h *ActivityHandler) DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "activity_id")
	if !ok {
		return
	}

	if err := h.activityService.DeleteComment(c.Request.Context(), activityID, user.ID); err != nil {
		respondError(c, err, "delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
