package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inv, inviteURL, err := h.invitationService.Invite(c.Request.Context(), service.InviteParams{
		Email:       req.Email,
		Role:        req.Role,
		WorkspaceID: workspaceID,
		InvitedBy:   user.ID,
	})
	if err != nil {
		respondError(c, err, "create invitation")
		return
	}

	slog.InfoContext(c.Request.Context(), "invitation created", "invitation_id", inv.ID, "workspace_id", workspaceID)

	resp := dto.ToInvitationResponse(inv)
	resp.InviteURL = inviteURL
	c.JSON(http.StatusCreated, resp)
}

func (h *InvitationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	invitations, err := h.invitationService.List(c.Request.Context(), workspaceID, user.ID)
	if err != nil {
		respondError(c, err, "list invitations")
		return
	}

	resp := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		resp[i] = dto.ToInvitationResponse(&invitations[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "invitation_id")
	if !ok {
		return
	}

	inv, err := h.invitationService.Revoke(c.Request.Context(), workspaceID, invitationID, user.ID)
	if err != nil {
		respondError(c, err, "revoke invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv))
}

// GetByToken is public: the invitee may not have an account yet.
func (h *InvitationHandler) GetByToken(c *gin.Context) {
	inv, ws, err := h.invitationService.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "get invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDetailsResponse(inv, ws))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	member, err := h.invitationService.Accept(c.Request.Context(), c.Param("token"), user)
	if err != nil {
		respondError(c, err, "accept invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}
