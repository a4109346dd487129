package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxNotificationLimit)
	}
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), user.ID, unreadOnly, int32(limit))
	if err != nil {
		respondError(c, err, "list notifications")
		return
	}

	resp := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = dto.ToNotificationResponse(&notifications[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "count notifications")
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	notificationID, ok := pathID(c, "notification_id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID, user.ID); err != nil {
		respondError(c, err, "mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	affected, err := h.notificationService.MarkAllRead(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "mark notifications read")
		return
	}

	c.JSON(http.StatusOK, dto.AffectedResponse{Affected: affected})
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	affected, err := h.notificationService.ClearAll(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "clear notifications")
		return
	}

	c.JSON(http.StatusOK, dto.AffectedResponse{Affected: affected})
}
