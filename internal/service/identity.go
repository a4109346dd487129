package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/go-github/v66/github"
	"github.com/workos/workos-go/v6/pkg/usermanagement"
	"golang.org/x/oauth2"
	oauth2github "golang.org/x/oauth2/github"

	"github.com/usekaneo/kaneo-sub002/core/config"
)

type IdentitySource string

const (
	IdentitySourceGitHub IdentitySource = "github"
	IdentitySourceWorkOS IdentitySource = "workos"
)

// OAuthIdentity is the profile returned by an external identity provider.
type OAuthIdentity struct {
	AvatarURL  *string
	Source     IdentitySource
	ExternalID string
	Email      string
	Name       string
}

// IdentityProvider runs the authorization code flow of a sign-in provider.
type IdentityProvider interface {
	AuthURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*OAuthIdentity, error)
}

type gitHubIdentityProvider struct {
	oauth *oauth2.Config
}

func NewGitHubIdentityProvider(cfg config.GitHubOAuthConfig) IdentityProvider {
	return &gitHubIdentityProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     oauth2github.Endpoint,
		},
	}
}

func (p *gitHubIdentityProvider) AuthURL(state string) (string, error) {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (p *gitHubIdentityProvider) Exchange(ctx context.Context, code string) (*OAuthIdentity, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	client := github.NewClient(p.oauth.Client(ctx, token))
	ghUser, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("fetching github user: %w", err)
	}

	email := ghUser.GetEmail()
	if email == "" {
		emails, _, err := client.Users.ListEmails(ctx, &github.ListOptions{PerPage: 100})
		if err != nil {
			return nil, fmt.Errorf("listing github emails: %w", err)
		}
		for _, e := range emails {
			if e.GetPrimary() && e.GetVerified() {
				email = e.GetEmail()
				break
			}
		}
	}
	if email == "" {
		return nil, errors.New("github account has no verified primary email")
	}

	name := ghUser.GetName()
	if name == "" {
		name = ghUser.GetLogin()
	}

	identity := &OAuthIdentity{
		Source:     IdentitySourceGitHub,
		ExternalID: strconv.FormatInt(ghUser.GetID(), 10),
		Email:      email,
		Name:       name,
	}
	if avatar := ghUser.GetAvatarURL(); avatar != "" {
		identity.AvatarURL = &avatar
	}
	return identity, nil
}

type workOSIdentityProvider struct {
	cfg config.WorkOSConfig
}

func NewWorkOSIdentityProvider(cfg config.WorkOSConfig) IdentityProvider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSIdentityProvider{cfg: cfg}
}

func (p *workOSIdentityProvider) AuthURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *workOSIdentityProvider) Exchange(ctx context.Context, code string) (*OAuthIdentity, error) {
	authResponse, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	workosUser := authResponse.User
	identity := &OAuthIdentity{
		Source:     IdentitySourceWorkOS,
		ExternalID: workosUser.ID,
		Email:      workosUser.Email,
		Name:       buildUserName(workosUser),
	}
	if workosUser.ProfilePictureURL != "" {
		identity.AvatarURL = &workosUser.ProfilePictureURL
	}
	return identity, nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
