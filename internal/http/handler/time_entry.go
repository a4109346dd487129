package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type TimeEntryHandler struct {
	timeEntryService service.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{timeEntryService: timeEntryService}
}

func (h *TimeEntryHandler) ListForTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	entries, err := h.timeEntryService.ListForTask(c.Request.Context(), taskID, user.ID)
	if err != nil {
		respondError(c, err, "list time entries")
		return
	}

	resp := make([]dto.TimeEntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToTimeEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TimeEntryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.timeEntryService.Create(c.Request.Context(), service.CreateTimeEntryParams{
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		Description: req.Description,
		TaskID:      taskID,
		UserID:      user.ID,
	})
	if err != nil {
		respondError(c, err, "create time entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

func (h *TimeEntryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}

	entry, err := h.timeEntryService.Get(c.Request.Context(), entryID, user.ID)
	if err != nil {
		respondError(c, err, "get time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *TimeEntryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.timeEntryService.Update(c.Request.Context(), entryID, user.ID, service.UpdateTimeEntryParams{
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "update time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *TimeEntryHandler) Stop(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}

	entry, err := h.timeEntryService.Stop(c.Request.Context(), entryID, user.ID)
	if err != nil {
		respondError(c, err, "stop time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

func (h *TimeEntryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "time_entry_id")
	if !ok {
		return
	}

	if err := h.timeEntryService.Delete(c.Request.Context(), entryID, user.ID); err != nil {
		respondError(c, err, "delete time entry")
		return
	}

	c.Status(http.StatusNoContent)
}
