// Package service defines the backend-agnostic interface used to export a
// session's tasks to a remote task list.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a list does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// Exporter receives copies of local tasks. It never feeds state back into the
// session store.
type Exporter interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in backend order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error wrapping ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// InsertTasks adds tasks to the specified list, keeping their order.
	// It returns how many tasks were inserted before an error stopped it.
	InsertTasks(ctx context.Context, listID string, tasks []Task) (int, error)
}

// AuthError marks failures that logging in again can fix.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// IsAuth reports whether err is or wraps an *AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
