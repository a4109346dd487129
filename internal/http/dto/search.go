package dto

import "github.com/usekaneo/kaneo-sub002/internal/model"

type SearchHitResponse struct {
	Kind        string  `json:"kind"`
	ID          int64   `json:"id,string"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectSlug string  `json:"project_slug,omitempty"`
	Number      int32   `json:"number,omitempty"`
	Title       string  `json:"title"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

func ToSearchHitResponse(h *model.SearchHit) SearchHitResponse {
	resp := SearchHitResponse{
		Kind:        string(h.Kind),
		ID:          h.ID,
		ProjectSlug: h.ProjectSlug,
		Number:      h.Number,
		Title:       h.Title,
		Status:      h.Status,
		Priority:    h.Priority,
	}
	if h.ProjectID != 0 {
		resp.ProjectID = OptionalID(&h.ProjectID)
	}
	return resp
}
