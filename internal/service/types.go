// Package service defines the backend-agnostic interface for remote task lists.
package service

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a task held by a remote backend.
type Task struct {
	ID     string
	Title  string
	Status string // StatusNeedsAction or StatusCompleted
}

// Completed reports whether the remote task is marked done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
