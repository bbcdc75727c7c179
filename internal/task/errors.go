package task

import "errors"

var (
	// ErrEmptyText is returned when task text is blank after trimming.
	ErrEmptyText = errors.New("task text is empty")

	// ErrNotFound is returned when an id, prefix or position does not match a task.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguous is returned when an id prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task id prefix")

	// ErrStorageUnavailable is returned when the blob store cannot be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
