package service_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/service/issue_tracker"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type fakeTracker struct {
	provider     model.Provider
	verifyErr    error
	hookID       int64
	hooks        []issue_tracker.WebhookParams
	deletedHooks []int64
	created      []string
	updates      map[int64]issue_tracker.IssueUpdate
	openIssues   []model.ExternalIssue
	nextNumber   int64
	lastConn     issue_tracker.Connection
	updateErr    error
	account      string
	accountErr   error
}

func newFakeTracker(provider model.Provider) *fakeTracker {
	return &fakeTracker{provider: provider, hookID: 77, nextNumber: 100, updates: map[int64]issue_tracker.IssueUpdate{}}
}

func (f *fakeTracker) Provider() model.Provider { return f.provider }

func (f *fakeTracker) Account(_ context.Context, _ issue_tracker.Connection) (string, error) {
	return f.account, f.accountErr
}

func (f *fakeTracker) ListRepositories(_ context.Context, conn issue_tracker.Connection) ([]model.Repository, error) {
	f.lastConn = conn
	return []model.Repository{{ExternalID: 1, Owner: "acme", Name: "web", FullName: "acme/web"}}, nil
}

func (f *fakeTracker) VerifyRepository(_ context.Context, conn issue_tracker.Connection) (*model.Repository, error) {
	f.lastConn = conn
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &model.Repository{ExternalID: 555, Owner: conn.Owner, Name: conn.Repo, FullName: conn.FullName()}, nil
}

func (f *fakeTracker) CreateWebhook(_ context.Context, _ issue_tracker.Connection, params issue_tracker.WebhookParams) (*int64, error) {
	f.hooks = append(f.hooks, params)
	if f.provider == model.ProviderGitHub {
		return nil, nil
	}
	hookID := f.hookID
	return &hookID, nil
}

func (f *fakeTracker) DeleteWebhook(_ context.Context, _ issue_tracker.Connection, webhookID int64) error {
	f.deletedHooks = append(f.deletedHooks, webhookID)
	return nil
}

func (f *fakeTracker) ListOpenIssues(_ context.Context, _ issue_tracker.Connection) ([]model.ExternalIssue, error) {
	return f.openIssues, nil
}

func (f *fakeTracker) CreateIssue(_ context.Context, _ issue_tracker.Connection, title, _ string) (*model.ExternalIssue, error) {
	f.created = append(f.created, title)
	f.nextNumber++
	return &model.ExternalIssue{Number: f.nextNumber, Title: title, URL: "https://tracker.test/issues"}, nil
}

func (f *fakeTracker) UpdateIssue(_ context.Context, _ issue_tracker.Connection, number int64, update issue_tracker.IssueUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[number] = update
	return nil
}

// stubTaskService records the task mutations integrations perform.
type stubTaskService struct {
	service.TaskService
	externalCreated []string
	linked          []model.ExternalLink
	adopted         []model.ExternalLink
	applied         map[int64]service.ExternalTaskChange
	// alreadyLinked makes CreateExternal lose the race for the link.
	alreadyLinked bool
	// adoptErrs are returned by successive AdoptExternal calls.
	adoptErrs []error
}

func (s *stubTaskService) CreateExternal(_ context.Context, projectID int64, ext service.ExternalTask) (*model.Task, error) {
	if s.alreadyLinked {
		return nil, service.ErrConflict
	}
	s.externalCreated = append(s.externalCreated, ext.Title)
	s.linked = append(s.linked, ext.Link)
	return &model.Task{ID: int64(1000 + len(s.externalCreated)), ProjectID: projectID, Title: ext.Title}, nil
}

func (s *stubTaskService) AdoptExternal(_ context.Context, taskID int64, link model.ExternalLink) error {
	link.TaskID = taskID
	s.adopted = append(s.adopted, link)
	if len(s.adoptErrs) > 0 {
		err := s.adoptErrs[0]
		s.adoptErrs = s.adoptErrs[1:]
		return err
	}
	return nil
}

func (s *stubTaskService) ApplyExternal(_ context.Context, taskID int64, change service.ExternalTaskChange) (*model.Task, error) {
	s.applied[taskID] = change
	return &model.Task{ID: taskID}, nil
}

var _ = Describe("IntegrationService", func() {
	const (
		workspaceID = int64(10)
		projectID   = int64(20)
		taskID      = int64(30)
		adminID     = int64(2)
		memberID    = int64(3)
		apiURL      = "https://api.kaneo.test"
	)

	var (
		ctx         context.Context
		stores      *mockStoreProvider
		gitea       *fakeTracker
		github      *fakeTracker
		tasks       *stubTaskService
		svc         service.IntegrationService
		integration *model.Integration
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		gitea = newFakeTracker(model.ProviderGitea)
		github = newFakeTracker(model.ProviderGitHub)
		tasks = &stubTaskService{applied: map[int64]service.ExternalTaskChange{}}
		svc = service.NewIntegrationService(stores, issue_tracker.NewRegistry(gitea, github), tasks, apiURL)

		withProject(stores, &model.Project{ID: projectID, WorkspaceID: workspaceID})
		withMembers(stores, workspaceID, map[int64]model.MemberRole{
			adminID:  model.MemberRoleAdmin,
			memberID: model.MemberRoleMember,
		})
		stores.columns.listByProjectFn = func(_ context.Context, id int64) ([]model.Column, error) {
			return defaultColumns(id), nil
		}

		integration = &model.Integration{
			ID:              60,
			ProjectID:       projectID,
			Provider:        model.ProviderGitea,
			RepositoryOwner: "acme",
			RepositoryName:  "web",
			AccessToken:     strPtr("tok"),
			IsActive:        true,
		}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Connect", func() {
		var saved *model.Integration

		BeforeEach(func() {
			saved = nil
			stores.integrations.createFn = func(_ context.Context, i *model.Integration) error {
				saved = i
				return nil
			}
		})

		It("verifies the repository and registers a signed webhook", func() {
			i, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				BaseURL:         strPtr("https://git.acme.test"),
				AccessToken:     strPtr("tok"),
				RepositoryOwner: "acme",
				RepositoryName:  "web",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(i))
			Expect(gitea.lastConn.BaseURL).To(Equal("https://git.acme.test"))
			Expect(*i.ExternalProjectID).To(Equal(int64(555)))
			Expect(*i.WebhookID).To(Equal(int64(77)))
			Expect(i.WebhookSecret).NotTo(BeNil())

			Expect(gitea.hooks).To(HaveLen(1))
			Expect(gitea.hooks[0].Secret).To(Equal(*i.WebhookSecret))
			Expect(gitea.hooks[0].URL).To(HavePrefix(apiURL + "/api/webhook/gitea/"))
			Expect(i.BotLogin).To(BeNil())
		})

		It("remembers the account issues are opened as", func() {
			gitea.account = "kaneo-bot"
			i, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*i.BotLogin).To(Equal("kaneo-bot"))
		})

		It("connects without echo filtering when the account lookup fails", func() {
			gitea.accountErr = errors.New("403 Forbidden")
			i, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(i.BotLogin).To(BeNil())
		})

		It("does not create repository webhooks for GitHub", func() {
			i, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitHub, service.ConnectParams{
				InstallationID:  int64Ptr(42),
				RepositoryOwner: "acme",
				RepositoryName:  "web",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(i.WebhookID).To(BeNil())
			Expect(github.hooks).To(BeEmpty())
		})

		It("replaces the webhook when reconnecting", func() {
			existing := *integration
			existing.WebhookID = int64Ptr(12)
			stores.integrations.getByProjectAndProviderFn = func(_ context.Context, _ int64, _ model.Provider) (*model.Integration, error) {
				return &existing, nil
			}
			var (
				updated         *model.Integration
				deletedAtUpdate []int64
			)
			stores.integrations.updateFn = func(_ context.Context, i *model.Integration) error {
				updated = i
				deletedAtUpdate = append([]int64(nil), gitea.deletedHooks...)
				return nil
			}

			_, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "api",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(deletedAtUpdate).To(BeEmpty())
			Expect(gitea.deletedHooks).To(ConsistOf(int64(12)))
			Expect(updated.ID).To(Equal(existing.ID))
			Expect(updated.RepositoryName).To(Equal("api"))
			Expect(saved).To(BeNil())
		})

		It("keeps the old webhook when the new one cannot be saved", func() {
			existing := *integration
			existing.WebhookID = int64Ptr(12)
			stores.integrations.getByProjectAndProviderFn = func(_ context.Context, _ int64, _ model.Provider) (*model.Integration, error) {
				return &existing, nil
			}
			stores.integrations.updateFn = func(_ context.Context, _ *model.Integration) error {
				return errors.New("connection reset")
			}

			_, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "api",
			})
			Expect(err).To(HaveOccurred())
			Expect(gitea.deletedHooks).To(ConsistOf(int64(77)))
		})

		It("requires a workspace manager", func() {
			_, err := svc.Connect(ctx, projectID, memberID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("validates credentials per provider", func() {
			_, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())

			_, err = svc.Connect(ctx, projectID, adminID, model.ProviderGitHub, service.ConnectParams{
				RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects unconfigured providers", func() {
			_, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitLab, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("surfaces tracker failures as upstream errors", func() {
			gitea.verifyErr = errors.New("404 Not Found")
			_, err := svc.Connect(ctx, projectID, adminID, model.ProviderGitea, service.ConnectParams{
				AccessToken: strPtr("tok"), RepositoryOwner: "acme", RepositoryName: "web",
			})
			Expect(errors.Is(err, service.ErrUpstream)).To(BeTrue())
			Expect(saved).To(BeNil())
		})
	})

	Describe("ImportIssues", func() {
		It("creates tasks for issues that are not linked yet", func() {
			stores.integrations.getByProjectAndProviderFn = func(_ context.Context, _ int64, _ model.Provider) (*model.Integration, error) {
				return integration, nil
			}
			stores.externalLinks.getByExternalIDFn = func(_ context.Context, _ int64, number int64) (*model.ExternalLink, error) {
				if number == 1 {
					return &model.ExternalLink{ExternalID: 1}, nil
				}
				return nil, store.ErrNotFound
			}
			gitea.openIssues = []model.ExternalIssue{
				{Number: 1, Title: "Already linked"},
				{Number: 2, Title: "Crash on save", URL: "https://git.acme.test/acme/web/issues/2"},
			}

			n, err := svc.ImportIssues(ctx, projectID, memberID, model.ProviderGitea)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(tasks.externalCreated).To(Equal([]string{"Crash on save"}))
			Expect(tasks.linked).To(HaveLen(1))
			Expect(tasks.linked[0].ExternalID).To(Equal(int64(2)))
			Expect(tasks.linked[0].IntegrationID).To(Equal(integration.ID))
			Expect(tasks.linked[0].URL).To(Equal("https://git.acme.test/acme/web/issues/2"))
		})

		It("counts issues linked meanwhile as skipped", func() {
			stores.integrations.getByProjectAndProviderFn = func(_ context.Context, _ int64, _ model.Provider) (*model.Integration, error) {
				return integration, nil
			}
			stores.externalLinks.getByExternalIDFn = func(_ context.Context, _, _ int64) (*model.ExternalLink, error) {
				return nil, store.ErrNotFound
			}
			gitea.openIssues = []model.ExternalIssue{{Number: 2, Title: "Crash on save"}}
			tasks.alreadyLinked = true

			n, err := svc.ImportIssues(ctx, projectID, memberID, model.ProviderGitea)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("HandleInbound", func() {
		BeforeEach(func() {
			stores.externalLinks.getByExternalIDFn = func(_ context.Context, _ int64, number int64) (*model.ExternalLink, error) {
				if number != 7 {
					return nil, store.ErrNotFound
				}
				return &model.ExternalLink{TaskID: taskID, ExternalID: 7}, nil
			}
		})

		It("closes and reopens linked tasks", func() {
			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundClosed, Issue: model.ExternalIssue{Number: 7},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*tasks.applied[taskID].Closed).To(BeTrue())

			err = svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundReopened, Issue: model.ExternalIssue{Number: 7},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*tasks.applied[taskID].Closed).To(BeFalse())
		})

		It("mirrors edits", func() {
			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundEdited, Issue: model.ExternalIssue{Number: 7, Title: "New title", Body: "details"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*tasks.applied[taskID].Title).To(Equal("New title"))
			Expect(*tasks.applied[taskID].Description).To(Equal("details"))
			Expect(tasks.applied[taskID].ClearDescription).To(BeFalse())
		})

		It("clears the description when the issue body is emptied", func() {
			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundEdited, Issue: model.ExternalIssue{Number: 7, Title: "New title"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.applied[taskID].Description).To(BeNil())
			Expect(tasks.applied[taskID].ClearDescription).To(BeTrue())
		})

		It("records comments as integration activity", func() {
			var activity *model.Activity
			stores.activities.createFn = func(_ context.Context, a *model.Activity) error {
				activity = a
				return nil
			}

			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundCommented, Author: "octocat", Comment: "repro attached",
				Issue: model.ExternalIssue{Number: 7},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(activity.Type).To(Equal(model.ActivityTypeIntegration))
			Expect(activity.TaskID).To(Equal(taskID))
			Expect(activity.Content).To(Equal("octocat commented on gitea: repro attached"))
		})

		It("creates tasks for newly opened issues", func() {
			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundOpened, Issue: model.ExternalIssue{Number: 8, Title: "New bug"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.externalCreated).To(Equal([]string{"New bug"}))
			Expect(tasks.linked).To(HaveLen(1))
			Expect(tasks.linked[0].ExternalID).To(Equal(int64(8)))
		})

		It("ignores the echo of issues opened for kaneo tasks", func() {
			integration.BotLogin = strPtr("kaneo-bot")

			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundOpened, Author: "Kaneo-Bot", Issue: model.ExternalIssue{Number: 8, Title: "Fix login"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.externalCreated).To(BeEmpty())

			err = svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundOpened, Author: "octocat", Issue: model.ExternalIssue{Number: 9, Title: "Typo"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.externalCreated).To(Equal([]string{"Typo"}))
		})

		It("leaves nothing behind when another delivery linked the issue first", func() {
			tasks.alreadyLinked = true

			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundOpened, Issue: model.ExternalIssue{Number: 8, Title: "New bug"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.externalCreated).To(BeEmpty())
			Expect(tasks.linked).To(BeEmpty())
		})

		It("ignores unlinked issues", func() {
			err := svc.HandleInbound(ctx, integration, service.InboundEvent{
				Action: service.InboundClosed, Issue: model.ExternalIssue{Number: 9},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tasks.applied).To(BeEmpty())
		})
	})

	Describe("SyncEvent", func() {
		BeforeEach(func() {
			stores.integrations.listByProjectFn = func(_ context.Context, _ int64) ([]model.Integration, error) {
				inactive := *integration
				inactive.ID = 61
				inactive.IsActive = false
				return []model.Integration{*integration, inactive}, nil
			}
			stores.tasks.getByIDFn = func(_ context.Context, id int64) (*model.Task, error) {
				return &model.Task{ID: id, ProjectID: projectID, Title: "Fix login"}, nil
			}
			stores.externalLinks.getByTaskFn = func(_ context.Context, tID, integrationID int64) (*model.ExternalLink, error) {
				if integrationID == integration.ID && tID == taskID {
					return &model.ExternalLink{TaskID: tID, IntegrationID: integrationID, ExternalID: 7}, nil
				}
				return nil, store.ErrNotFound
			}
		})

		syncEvent := func(eventType model.EventType, payload any) model.Event {
			event := eventWith(eventType, int64Ptr(taskID), int64Ptr(memberID), payload)
			event.ProjectID = int64Ptr(projectID)
			return event
		}

		It("opens an issue for new tasks on active integrations", func() {
			stores.externalLinks.getByTaskFn = func(_ context.Context, _, _ int64) (*model.ExternalLink, error) {
				return nil, store.ErrNotFound
			}

			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskCreated, model.TaskPayload{Title: "Fix login"}))).To(Succeed())
			Expect(gitea.created).To(Equal([]string{"Fix login"}))
			Expect(tasks.adopted).To(HaveLen(1))
			Expect(tasks.adopted[0].TaskID).To(Equal(taskID))
			Expect(tasks.adopted[0].ExternalID).To(Equal(int64(101)))
		})

		It("gives up quietly when the task was deleted before its issue was linked", func() {
			stores.externalLinks.getByTaskFn = func(_ context.Context, _, _ int64) (*model.ExternalLink, error) {
				return nil, store.ErrNotFound
			}
			tasks.adoptErrs = []error{service.ErrNotFound}

			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskCreated, model.TaskPayload{Title: "Fix login"}))).To(Succeed())
			Expect(tasks.adopted).To(HaveLen(1))
		})

		It("links the task once the echo of its issue was linked first", func() {
			stores.externalLinks.getByTaskFn = func(_ context.Context, _, _ int64) (*model.ExternalLink, error) {
				return nil, store.ErrNotFound
			}
			tasks.adoptErrs = []error{service.ErrConflict, nil}

			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskCreated, model.TaskPayload{Title: "Fix login"}))).To(Succeed())
			Expect(gitea.created).To(HaveLen(1))
			Expect(tasks.adopted).To(HaveLen(2))
			Expect(tasks.adopted[1].ExternalID).To(Equal(int64(101)))
		})

		It("skips tasks that came from the integration", func() {
			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskCreated, model.TaskPayload{
				Title: "Imported", Source: service.SourceIntegration,
			}))).To(Succeed())
			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskTitleChanged, model.ChangePayload{
				New: "x", Source: service.SourceIntegration,
			}))).To(Succeed())
			Expect(gitea.created).To(BeEmpty())
			Expect(gitea.updates).To(BeEmpty())
		})

		It("closes the issue when the task reaches a final column", func() {
			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskStatusChanged, model.ChangePayload{
				Old: "in-review", New: "done",
			}))).To(Succeed())
			Expect(*gitea.updates[7].Closed).To(BeTrue())
		})

		It("ignores moves between open columns", func() {
			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskStatusChanged, model.ChangePayload{
				Old: "to-do", New: "in-progress",
			}))).To(Succeed())
			Expect(gitea.updates).To(BeEmpty())
		})

		It("mirrors title edits", func() {
			Expect(svc.SyncEvent(ctx, syncEvent(model.EventTaskTitleChanged, model.ChangePayload{
				Old: "a", New: "b",
			}))).To(Succeed())
			Expect(*gitea.updates[7].Title).To(Equal("b"))
		})

		It("reports tracker failures", func() {
			gitea.updateErr = errors.New("boom")
			err := svc.SyncEvent(ctx, syncEvent(model.EventTaskTitleChanged, model.ChangePayload{New: "b"}))
			Expect(err).To(HaveOccurred())
			Expect(strings.Contains(err.Error(), "gitea sync")).To(BeTrue())
		})
	})
})
