package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const (
	SessionTokenLength = 32
	MinPasswordLength  = 8
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidCode          = errors.New("invalid authorization code")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrProviderDisabled     = errors.New("sign-in provider is not configured")
)

// SessionMeta describes the client a session is created for.
type SessionMeta struct {
	UserAgent *string
	IPAddress *string
}

type SignUpParams struct {
	Name     string
	Email    string
	Password string
}

// Providers lists which optional sign-in methods are available.
type Providers struct {
	GitHub              bool `json:"has_github_sign_in"`
	SSO                 bool `json:"has_sso"`
	DisableRegistration bool `json:"disable_registration"`
}

type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams, meta SessionMeta) (*model.User, *model.Session, error)
	SignIn(ctx context.Context, email, password string, meta SessionMeta) (*model.User, *model.Session, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	GitHubAuthURL(state string) (string, error)
	HandleGitHubCallback(ctx context.Context, code string, meta SessionMeta) (*model.User, *model.Session, error)
	SSOAuthURL(state string) (string, error)
	HandleSSOCallback(ctx context.Context, code string, meta SessionMeta) (*model.User, *model.Session, error)
	PruneExpiredSessions(ctx context.Context) (int64, error)
	Providers() Providers
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	github       IdentityProvider
	sso          IdentityProvider
	cfg          config.AuthConfig
}

// NewAuthService builds the auth service. github and sso may be nil when
// the corresponding provider is not configured.
func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	github IdentityProvider,
	sso IdentityProvider,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		github:       github,
		sso:          sso,
		cfg:          cfg,
	}
}

func (s *authService) Providers() Providers {
	return Providers{
		GitHub:              s.github != nil,
		SSO:                 s.sso != nil,
		DisableRegistration: s.cfg.DisableRegistration,
	}
}

func (s *authService) SignUp(ctx context.Context, params SignUpParams, meta SessionMeta) (*model.User, *model.Session, error) {
	if s.cfg.DisableRegistration {
		return nil, nil, ErrRegistrationDisabled
	}

	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, nil, err
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, nil, invalid("name is required")
	}
	if len(params.Password) < MinPasswordLength {
		return nil, nil, invalid("password must be at least %d characters", MinPasswordLength)
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("creating user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID, "email", user.Email)
	return user, session, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string, meta SessionMeta) (*model.User, *model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user signed in", "user_id", user.ID, "session_id", session.ID)
	return user, session, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionStore.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}
	session, err := s.sessionStore.GetValidByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) GitHubAuthURL(state string) (string, error) {
	if s.github == nil {
		return "", ErrProviderDisabled
	}
	return s.github.AuthURL(state)
}

func (s *authService) HandleGitHubCallback(ctx context.Context, code string, meta SessionMeta) (*model.User, *model.Session, error) {
	if s.github == nil {
		return nil, nil, ErrProviderDisabled
	}
	return s.handleCallback(ctx, s.github, code, meta)
}

func (s *authService) SSOAuthURL(state string) (string, error) {
	if s.sso == nil {
		return "", ErrProviderDisabled
	}
	return s.sso.AuthURL(state)
}

func (s *authService) HandleSSOCallback(ctx context.Context, code string, meta SessionMeta) (*model.User, *model.Session, error) {
	if s.sso == nil {
		return nil, nil, ErrProviderDisabled
	}
	return s.handleCallback(ctx, s.sso, code, meta)
}

func (s *authService) PruneExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionStore.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	slog.InfoContext(ctx, "expired sessions pruned", "count", n)
	return n, nil
}

func (s *authService) handleCallback(ctx context.Context, provider IdentityProvider, code string, meta SessionMeta) (*model.User, *model.Session, error) {
	if code == "" {
		return nil, nil, ErrInvalidCode
	}
	identity, err := provider.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to exchange authorization code", "error", err)
		if errors.Is(err, ErrInvalidCode) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, fmt.Errorf("exchanging code: %w", err)
	}

	user, err := s.linkIdentity(ctx, identity)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"email", user.Email,
		"source", identity.Source,
		"session_id", session.ID,
	)
	return user, session, nil
}

// linkIdentity finds the user by provider id, then by email, and creates
// one when neither exists.
func (s *authService) linkIdentity(ctx context.Context, identity *OAuthIdentity) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	var (
		user *model.User
		err  error
	)
	switch identity.Source {
	case IdentitySourceGitHub:
		user, err = s.userStore.GetByGitHubID(ctx, identity.ExternalID)
	case IdentitySourceWorkOS:
		user, err = s.userStore.GetByWorkOSID(ctx, identity.ExternalID)
	default:
		return nil, fmt.Errorf("unknown identity source %q", identity.Source)
	}
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting user by identity: %w", err)
	}

	user, err = s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		setIdentity(user, identity)
		if user.AvatarURL == nil {
			user.AvatarURL = identity.AvatarURL
		}
		if err := s.userStore.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("linking identity: %w", err)
		}
		return user, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	if s.cfg.DisableRegistration {
		return nil, ErrRegistrationDisabled
	}

	user = &model.User{
		ID:        id.New(),
		Name:      identity.Name,
		Email:     email,
		AvatarURL: identity.AvatarURL,
	}
	setIdentity(user, identity)
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func setIdentity(user *model.User, identity *OAuthIdentity) {
	externalID := identity.ExternalID
	switch identity.Source {
	case IdentitySourceGitHub:
		user.GitHubID = &externalID
	case IdentitySourceWorkOS:
		user.WorkOSID = &externalID
	}
}

func (s *authService) createSession(ctx context.Context, userID int64, meta SessionMeta) (*model.Session, error) {
	token, err := generateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		Token:     token,
		TokenHash: HashToken(token),
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session", "error", err, "user_id", userID)
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("invalid email address")
	}
	return email, nil
}
