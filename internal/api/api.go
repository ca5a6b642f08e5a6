// Package api defines the backend-agnostic interface for todo service operations.
package api

import "context"

// Service defines the interface for remote todo operations.
// All HTTP calls to the todo service go through this interface.
// Commands never build requests directly.
type Service interface {
	// Register creates a new account on the service.
	Register(ctx context.Context, username, password string) (User, error)

	// Authenticate exchanges credentials for an access token.
	// The token is not persisted here; that is the session manager's job.
	Authenticate(ctx context.Context, username, password string) (string, error)

	// ListTasks returns all tasks owned by the authenticated user,
	// in service order (no client-side sorting).
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a new task. The service assigns the ID.
	CreateTask(ctx context.Context, fields TaskFields) (Task, error)

	// UpdateTask applies a partial update and returns the full
	// updated task as the service sees it.
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int64) error
}
