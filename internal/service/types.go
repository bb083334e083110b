package service

import "taskpad/internal/tasklist"

// Remote task status values.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a task as sent to a backend.
type Task struct {
	Title  string
	Status string
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// FromLocal converts a session task for export.
func FromLocal(t tasklist.Task) Task {
	status := StatusNeedsAction
	if t.Completed {
		status = StatusCompleted
	}
	return Task{Title: t.Description, Status: status}
}
