package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

const stateCookieName = "kaneo_oauth_state"

type AuthHandler struct {
	authService  service.AuthService
	clientURL    string
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, clientURL string, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		clientURL:    clientURL,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, session, err := h.authService.SignUp(c.Request.Context(), service.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, sessionMeta(c))
	if err != nil {
		respondError(c, err, "sign up")
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, dto.ToSessionResponse(user, session))
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password, sessionMeta(c))
	if err != nil {
		respondError(c, err, "sign in")
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, dto.ToSessionResponse(user, session))
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	ctx := c.Request.Context()

	if token := middleware.SessionToken(c); token != "" {
		if err := h.authService.SignOut(ctx, token); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err)
		}
	}

	middleware.ClearSessionCookie(c, h.isProduction)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Session returns the user behind the current session.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(user, nil))
}

func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	h.redirectToProvider(c, h.authService.GitHubAuthURL)
}

func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	h.handleCallback(c, "github", h.authService.HandleGitHubCallback)
}

func (h *AuthHandler) SSOLogin(c *gin.Context) {
	h.redirectToProvider(c, h.authService.SSOAuthURL)
}

func (h *AuthHandler) SSOCallback(c *gin.Context) {
	h.handleCallback(c, "sso", h.authService.HandleSSOCallback)
}

func (h *AuthHandler) redirectToProvider(c *gin.Context, authURL func(state string) (string, error)) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	redirectURL, err := authURL(state)
	if err != nil {
		respondError(c, err, "initiate login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, 600, "/", "", h.isProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

type callbackFunc func(ctx context.Context, code string, meta service.SessionMeta) (*model.User, *model.Session, error)

func (h *AuthHandler) handleCallback(c *gin.Context, provider string, exchange callbackFunc) {
	ctx := c.Request.Context()

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "oauth error", "provider", provider, "error", errorParam, "description", c.Query("error_description"))
		h.redirectWithError(c, errorParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		slog.WarnContext(ctx, "oauth state mismatch", "provider", provider)
		h.redirectWithError(c, "invalid_state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "no_code")
		return
	}

	user, session, err := exchange(ctx, code, sessionMeta(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle oauth callback", "provider", provider, "error", err)
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			h.redirectWithError(c, "invalid_code")
		case errors.Is(err, service.ErrRegistrationDisabled):
			h.redirectWithError(c, "registration_disabled")
		default:
			h.redirectWithError(c, "callback_failed")
		}
		return
	}

	h.setSessionCookie(c, session)
	slog.InfoContext(ctx, "user signed in", "provider", provider, "user_id", user.ID)
	c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"/dashboard")
}

func (h *AuthHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"?auth_error="+url.QueryEscape(code))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *model.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	middleware.SetSessionCookie(c, session.Token, maxAge, h.isProduction)
}

func sessionMeta(c *gin.Context) service.SessionMeta {
	userAgent := c.Request.UserAgent()
	ip := c.ClientIP()
	meta := service.SessionMeta{}
	if userAgent != "" {
		meta.UserAgent = &userAgent
	}
	if ip != "" {
		meta.IPAddress = &ip
	}
	return meta
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
