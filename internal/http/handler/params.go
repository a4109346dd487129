package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// pathID parses an id path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}

func pathProvider(c *gin.Context) (model.Provider, bool) {
	provider := model.Provider(c.Param("provider"))
	if !provider.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported provider"})
		return "", false
	}
	return provider, true
}

// currentUser is only nil when a route was registered without RequireAuth.
func currentUser(c *gin.Context) (*model.User, bool) {
	user := middleware.GetUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	return user, true
}
