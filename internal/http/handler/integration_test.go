package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

var _ = Describe("IntegrationHandler", func() {
	var (
		router       *gin.Engine
		integrations *mockIntegrationService
	)

	BeforeEach(func() {
		integrations = &mockIntegrationService{}
		var protected *gin.RouterGroup
		router, protected = newRouter(&mockAuthService{})

		h := handler.NewIntegrationHandler(integrations)
		protected.POST("/project/:project_id/integration/:provider/import", h.ImportIssues)
	})

	Describe("ImportIssues", func() {
		It("reports how many issues became tasks", func() {
			integrations.importIssuesFn = func(_ context.Context, projectID, userID int64, provider model.Provider) (int, error) {
				Expect(projectID).To(Equal(int64(4)))
				Expect(userID).To(Equal(testUser.ID))
				Expect(provider).To(Equal(model.ProviderGitea))
				return 3, nil
			}

			w := doRequest(router, http.MethodPost, "/api/project/4/integration/gitea/import", "", true)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Imported int `json:"imported"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Imported).To(Equal(3))
		})

		It("does not echo tracker errors to the client", func() {
			integrations.importIssuesFn = func(_ context.Context, _, _ int64, _ model.Provider) (int, error) {
				return 0, fmt.Errorf("%w: GET https://git.internal.test/api/v1/repos/acme/web/issues?token=abc: 401", service.ErrUpstream)
			}

			w := doRequest(router, http.MethodPost, "/api/project/4/integration/gitea/import", "", true)

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(w.Body.String()).NotTo(ContainSubstring("git.internal.test"))
			Expect(w.Body.String()).To(ContainSubstring("issue tracker request failed"))
		})

		It("rejects unknown providers", func() {
			w := doRequest(router, http.MethodPost, "/api/project/4/integration/jira/import", "", true)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
