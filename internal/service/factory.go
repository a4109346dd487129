package service

import (
	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/internal/service/issue_tracker"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

// Deps are the optional collaborators of the services. Nil values disable
// the feature they back.
type Deps struct {
	Publisher   EventPublisher
	SearchIndex SearchIndex
	Trackers    *issue_tracker.Registry
	GitHubLogin IdentityProvider
	SSOLogin    IdentityProvider
}

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	deps     Deps
	cfg      config.Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, cfg config.Config, deps Deps) *Services {
	if deps.Trackers == nil {
		deps.Trackers = issue_tracker.NewRegistry()
	}
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		deps:     deps,
		cfg:      cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.deps.GitHubLogin, s.deps.SSOLogin, s.cfg.Auth)
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(s.stores, s.txRunner)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(s.stores, s.txRunner, s.deps.Publisher, s.cfg.ClientURL)
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores, s.txRunner, s.deps.Publisher)
}

func (s *Services) Tasks() TaskService {
	return NewTaskService(s.stores, s.txRunner, s.deps.Publisher)
}

func (s *Services) Activities() ActivityService {
	return NewActivityService(s.stores, s.deps.Publisher)
}

func (s *Services) Labels() LabelService {
	return NewLabelService(s.stores)
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.stores)
}

func (s *Services) TimeEntries() TimeEntryService {
	return NewTimeEntryService(s.stores, s.deps.Publisher)
}

func (s *Services) Search() SearchService {
	return NewSearchService(s.stores, s.deps.SearchIndex)
}

func (s *Services) Integrations() IntegrationService {
	return NewIntegrationService(s.stores, s.deps.Trackers, s.Tasks(), s.cfg.APIURL)
}
