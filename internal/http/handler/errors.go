package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrInvalidCode, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrSessionExpired, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrEmailMismatch, http.StatusForbidden},
	{service.ErrRegistrationDisabled, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInviteNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrProviderDisabled, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrInvitePendingExists, http.StatusConflict},
	{service.ErrAlreadyMember, http.StatusConflict},
	{service.ErrInviteExpired, http.StatusGone},
	{service.ErrInviteAlreadyUsed, http.StatusGone},
	{service.ErrInviteRevoked, http.StatusGone},
	{service.ErrUpstream, http.StatusBadGateway},
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	if store.IsUniqueViolation(err) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status. Client errors carry the service
// message; server and upstream errors are logged and answered generically.
func respondError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()
	status := statusFor(err)

	switch {
	case status == http.StatusInternalServerError:
		slog.ErrorContext(ctx, "failed to "+action, "error", err)
		c.JSON(status, gin.H{"error": "failed to " + action})
	case status == http.StatusBadGateway:
		// provider errors can carry repository URLs and token scopes
		slog.WarnContext(ctx, "upstream failure while trying to "+action, "error", err)
		c.JSON(status, gin.H{"error": "issue tracker request failed"})
	case store.IsUniqueViolation(err):
		c.JSON(status, gin.H{"error": "resource already exists"})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
