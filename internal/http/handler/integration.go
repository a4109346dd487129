package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type IntegrationHandler struct {
	integrationService service.IntegrationService
}

func NewIntegrationHandler(integrationService service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

func (h *IntegrationHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	provider, ok := pathProvider(c)
	if !ok {
		return
	}

	integration, err := h.integrationService.Get(c.Request.Context(), projectID, user.ID, provider)
	if err != nil {
		respondError(c, err, "get integration")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntegrationResponse(integration))
}

func (h *IntegrationHandler) Connect(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	provider, ok := pathProvider(c)
	if !ok {
		return
	}

	var req dto.ConnectIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	installationID, err := dto.ParseOptionalID(req.InstallationID)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	integration, err := h.integrationService.Connect(ctx, projectID, user.ID, provider, service.ConnectParams{
		BaseURL:         req.BaseURL,
		AccessToken:     req.AccessToken,
		InstallationID:  installationID,
		RepositoryOwner: req.RepositoryOwner,
		RepositoryName:  req.RepositoryName,
	})
	if err != nil {
		respondError(c, err, "connect integration")
		return
	}

	slog.InfoContext(ctx, "integration connected",
		"provider", provider,
		"project_id", projectID,
		"repository", req.RepositoryOwner+"/"+req.RepositoryName)

	c.JSON(http.StatusCreated, dto.ToIntegrationResponse(integration))
}

func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	provider, ok := pathProvider(c)
	if !ok {
		return
	}

	if err := h.integrationService.Disconnect(c.Request.Context(), projectID, user.ID, provider); err != nil {
		respondError(c, err, "disconnect integration")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRepositories lists what the given credentials can reach, before a
// project is connected.
func (h *IntegrationHandler) ListRepositories(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	provider, ok := pathProvider(c)
	if !ok {
		return
	}

	var req dto.ListRepositoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	installationID, err := dto.ParseOptionalID(req.InstallationID)
	if err != nil {
		badRequest(c, err)
		return
	}

	repos, err := h.integrationService.ListRepositories(c.Request.Context(), provider, service.ConnectParams{
		BaseURL:        req.BaseURL,
		AccessToken:    req.AccessToken,
		InstallationID: installationID,
	})
	if err != nil {
		respondError(c, err, "list repositories")
		return
	}

	c.JSON(http.StatusOK, repos)
}

func (h *IntegrationHandler) ImportIssues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	provider, ok := pathProvider(c)
	if !ok {
		return
	}

	imported, err := h.integrationService.ImportIssues(c.Request.Context(), projectID, user.ID, provider)
	if err != nil {
		respondError(c, err, "import issues")
		return
	}

	c.JSON(http.StatusOK, dto.ImportIssuesResponse{Imported: imported})
}
