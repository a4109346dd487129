package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search answers GET /workspace/:workspace_id/search?q=&type=task,project&limit=.
func (h *SearchHandler) Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "workspace_id")
	if !ok {
		return
	}

	var kinds []model.SearchKind
	if raw := c.Query("type"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			kind := model.SearchKind(strings.TrimSpace(k))
			if kind != model.SearchKindTask && kind != model.SearchKindProject {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type " + strconv.Quote(k)})
				return
			}
			kinds = append(kinds, kind)
		}
	}

	limit := service.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	hits, err := h.searchService.Search(c.Request.Context(), workspaceID, user.ID, c.Query("q"), kinds, limit)
	if err != nil {
		respondError(c, err, "search")
		return
	}

	resp := make([]dto.SearchHitResponse, len(hits))
	for i := range hits {
		resp[i] = dto.ToSearchHitResponse(&hits[i])
	}
	c.JSON(http.StatusOK, resp)
}
