package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
)

var _ = Describe("Recovery and Logger", func() {
	var (
		router   *gin.Engine
		logs     *bytes.Buffer
		previous *slog.Logger
	)

	BeforeEach(func() {
		previous = slog.Default()
		logs = &bytes.Buffer{}
		slog.SetDefault(slog.New(slog.NewJSONHandler(logs, nil)))

		router = gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/boom", func(*gin.Context) { panic("kaboom") })
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/api/invitation/:token", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	})

	AfterEach(func() {
		slog.SetDefault(previous)
	})

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("answers 500 and logs the panic", func() {
		w := serve("/boom")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
		Expect(logs.String()).To(ContainSubstring("panic recovered"))
		Expect(logs.String()).To(ContainSubstring("kaboom"))
	})

	It("does not log successful health checks", func() {
		serve("/health")

		Expect(logs.String()).To(BeEmpty())
	})

	It("logs the route template instead of the raw path", func() {
		serve("/api/invitation/secret-token")

		Expect(logs.String()).To(ContainSubstring(`"route":"/api/invitation/:token"`))
		Expect(logs.String()).NotTo(ContainSubstring("secret-token"))
	})
})
