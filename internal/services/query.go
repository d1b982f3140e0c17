package services

import (
	"time"

	"github.com/ekovalev/go-taskhub/internal/models"
)

const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

const (
	SortCreated = "created"
	SortUpdated = "updated"
	SortTitle   = "title"
)

// statusClause maps a status filter to an extra predicate on
// the completed flag. Anything but "completed" and "pending"
// filters nothing; an unrecognized value is not an error.
func statusClause(status string) string {
	switch status {
	case StatusCompleted:
		return " AND completed = TRUE"
	case StatusPending:
		return " AND completed = FALSE"
	default:
		return ""
	}
}

// orderClause maps a sort key to an ORDER BY clause. Newest
// first by creation time is the default for unrecognized keys.
func orderClause(sort string) string {
	switch sort {
	case SortTitle:
		return " ORDER BY title ASC"
	case SortUpdated:
		return " ORDER BY updated_at DESC"
	default:
		return " ORDER BY created_at DESC"
	}
}

// applyTaskUpdate copies only the fields present in params onto
// the task and refreshes updated_at unconditionally, even when
// no field is supplied or the supplied values match the old ones.
func applyTaskUpdate(task *models.Task, params UpdateTaskParams, now time.Time) {
	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}
	task.UpdatedAt = now
}
