package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=64"`
	Icon        *string `json:"icon,omitempty" binding:"omitempty,max=64"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=64"`
	Icon        *string `json:"icon,omitempty" binding:"omitempty,max=64"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

type ProjectResponse struct {
	ID          int64     `json:"id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Icon        *string   `json:"icon,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Slug:        p.Slug,
		Icon:        p.Icon,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type ProjectSummaryResponse struct {
	ProjectResponse
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}

func ToProjectSummaryResponse(p *model.ProjectSummary) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ProjectResponse: ToProjectResponse(&p.Project),
		TotalTasks:      p.Stats.Total,
		CompletedTasks:  p.Stats.Completed,
	}
}

type CreateColumnRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	IsFinal bool   `json:"is_final"`
}

type UpdateColumnRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	IsFinal *bool   `json:"is_final,omitempty"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids" binding:"required,min=1,dive,required"`
}

type ColumnResponse struct {
	ID        int64  `json:"id,string"`
	ProjectID int64  `json:"project_id,string"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Position  int32  `json:"position"`
	IsFinal   bool   `json:"is_final"`
}

func ToColumnResponse(c *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Name:      c.Name,
		Slug:      c.Slug,
		Position:  c.Position,
		IsFinal:   c.IsFinal,
	}
}

func ToColumnResponses(columns []model.Column) []ColumnResponse {
	resp := make([]ColumnResponse, len(columns))
	for i := range columns {
		resp[i] = ToColumnResponse(&columns[i])
	}
	return resp
}

type BoardColumnResponse struct {
	ColumnResponse
	Tasks []TaskResponse `json:"tasks"`
}

type BoardResponse struct {
	Project ProjectResponse       `json:"project"`
	Columns []BoardColumnResponse `json:"columns"`
}

func ToBoardResponse(b *model.Board) BoardResponse {
	resp := BoardResponse{
		Project: ToProjectResponse(b.Project),
		Columns: make([]BoardColumnResponse, len(b.Columns)),
	}
	for i := range b.Columns {
		resp.Columns[i] = BoardColumnResponse{
			ColumnResponse: ToColumnResponse(&b.Columns[i].Column),
			Tasks:          ToTaskResponses(b.Columns[i].Tasks),
		}
	}
	return resp
}
