package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

// InboundService is the part of service.IntegrationService the webhook
// endpoints need.
type InboundService interface {
	GetForWebhook(ctx context.Context, integrationID int64) (*model.Integration, error)
	FindByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error)
	DeactivateInstallation(ctx context.Context, installationID int64) (int64, error)
	HandleInbound(ctx context.Context, integration *model.Integration, event service.InboundEvent) error
}

// MaxPayloadBytes caps a delivery body. GitHub truncates payloads at 25 MB;
// issue events are far smaller.
const MaxPayloadBytes = 5 << 20

// limitBody bounds the request body to MaxPayloadBytes.
func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPayloadBytes)
}

// readBody reads the bounded body, answering 413 or 400 itself on failure.
func readBody(c *gin.Context) ([]byte, bool) {
	limitBody(c)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if tooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	return body, true
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func unsupported(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "event type not supported"})
}

// integrationFromPath loads the active integration named by :integration_id.
// Unknown and inactive integrations both answer 404.
func integrationFromPath(c *gin.Context, integrations InboundService) (*model.Integration, bool) {
	integrationID, err := strconv.ParseInt(c.Param("integration_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid integration id"})
		return nil, false
	}

	integration, err := integrations.GetForWebhook(c.Request.Context(), integrationID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "integration not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load integration"})
		return nil, false
	}
	return integration, true
}

// validSignature checks a hex HMAC-SHA256 of body.
func validSignature(body []byte, secret, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
