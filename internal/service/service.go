package service

import "context"

// Service defines the remote operations used to mirror the local list.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in backend order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed ones included,
	// in backend order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task, optionally already completed.
	CreateTask(ctx context.Context, listID, title string, completed bool) error

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}
