package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// buildBoard groups tasks into the ordered columns, keeping only tasks that
// match the filter. Tasks whose status has no column are dropped.
func buildBoard(project *model.Project, columns []model.Column, tasks []model.Task, filter model.TaskFilter) *model.Board {
	board := &model.Board{
		Project: project,
		Columns: make([]model.BoardColumn, len(columns)),
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		board.Columns[i] = model.BoardColumn{Column: c, Tasks: []model.Task{}}
		index[c.Slug] = i
	}

	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok || !matchesFilter(t, filter) {
			continue
		}
		board.Columns[i].Tasks = append(board.Columns[i].Tasks, t)
	}
	return board
}

func matchesFilter(t model.Task, f model.TaskFilter) bool {
	if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.DueBefore != nil && (t.DueDate == nil || !t.DueDate.Before(*f.DueBefore)) {
		return false
	}
	if f.LabelID != nil {
		found := false
		for _, l := range t.Labels {
			if l.ID == *f.LabelID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		inTitle := strings.Contains(strings.ToLower(t.Title), q)
		inDescription := t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
		if !inTitle && !inDescription {
			return false
		}
	}
	return true
}

// positionUpdate is a task whose position or status must be persisted.
type positionUpdate struct {
	Status   string
	ID       int64
	Position int32
}

// planMove removes the task from its column and inserts it into the target
// column at position (clamped to the column bounds). Both columns are
// renumbered 0..n-1; only changed tasks are returned.
func planMove(tasks []model.Task, taskID int64, target string, position int) []positionUpdate {
	var (
		moving *model.Task
		source string
	)
	for i := range tasks {
		if tasks[i].ID == taskID {
			moving = &tasks[i]
			source = tasks[i].Status
			break
		}
	}
	if moving == nil {
		return nil
	}

	column := func(status string) []model.Task {
		var out []model.Task
		for _, t := range tasks {
			if t.Status == status && t.ID != taskID {
				out = append(out, t)
			}
		}
		sortByPosition(out)
		return out
	}

	dest := column(target)
	if position < 0 {
		position = 0
	}
	if position > len(dest) {
		position = len(dest)
	}
	dest = append(dest[:position], append([]model.Task{*moving}, dest[position:]...)...)

	var updates []positionUpdate
	renumber := func(col []model.Task, status string) {
		for i, t := range col {
			if t.Position != int32(i) || t.Status != status {
				updates = append(updates, positionUpdate{ID: t.ID, Status: status, Position: int32(i)})
			}
		}
	}
	renumber(dest, target)
	if source != target {
		renumber(column(source), source)
	}
	return updates
}

func sortByPosition(tasks []model.Task) {
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// validateReorder checks that ordered is a permutation of the column ids.
func validateReorder(columns []model.Column, ordered []int64) error {
	if len(ordered) != len(columns) {
		return invalid("expected %d column ids, got %d", len(columns), len(ordered))
	}
	known := make(map[int64]bool, len(columns))
	for _, c := range columns {
		known[c.ID] = false
	}
	for _, id := range ordered {
		seen, ok := known[id]
		if !ok {
			return invalid("column %d does not belong to the project", id)
		}
		if seen {
			return invalid("column %d listed twice", id)
		}
		known[id] = true
	}
	return nil
}
