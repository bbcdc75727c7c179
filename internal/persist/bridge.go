// Package persist serializes the task list to a blob store and reads it back.
//
// Load never fails: an absent, unreadable or malformed blob yields an empty
// list, and the reason is logged. Save reports failures wrapped in
// task.ErrStorageUnavailable so callers can surface them.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tasklist/internal/blob"
	"tasklist/internal/task"
)

// DefaultKey is the fixed key the task list is stored under.
const DefaultKey = "tasks"

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for load repairs and storage failures.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bridge) { b.log = log }
}

// WithIDFunc overrides the id generator used when repairing records.
func WithIDFunc(fn func() string) Option {
	return func(b *Bridge) { b.newID = fn }
}

// Bridge connects the task list to a blob store.
type Bridge struct {
	blobs blob.Store
	key   string
	codec Codec
	log   *slog.Logger
	newID func() string
}

// NewBridge creates a Bridge storing under key with codec.
// An empty key means DefaultKey; a nil codec means JSON.
func NewBridge(blobs blob.Store, key string, codec Codec, opts ...Option) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	if codec == nil {
		codec = JSON
	}
	b := &Bridge{
		blobs: blobs,
		key:   key,
		codec: codec,
		log:   slog.New(slog.DiscardHandler),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the storage key.
func (b *Bridge) Key() string { return b.key }

// Save writes the ordered task list under the bridge's key.
func (b *Bridge) Save(ctx context.Context, tasks []task.Task) error {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{ID: t.ID, Text: t.Text, Completed: t.Completed}
	}

	data, err := b.codec.encode(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", task.ErrStorageUnavailable, b.codec.Name(), err)
	}
	if err := b.blobs.Set(ctx, b.key, data); err != nil {
		b.log.Warn("storage write failed", "key", b.key, "error", err)
		return fmt.Errorf("%w: %v", task.ErrStorageUnavailable, err)
	}
	return nil
}

// Load reads the task list. It returns an empty list when the blob is
// absent, unreadable or malformed.
func (b *Bridge) Load(ctx context.Context) []task.Task {
	data, err := b.blobs.Get(ctx, b.key)
	if errors.Is(err, blob.ErrNotFound) {
		b.log.Debug("no stored task list", "key", b.key)
		return []task.Task{}
	}
	if err != nil {
		b.log.Warn("storage read failed; starting empty", "key", b.key, "error", err)
		return []task.Task{}
	}
	if len(data) == 0 {
		return []task.Task{}
	}

	records, err := b.codec.decode(data)
	if err != nil {
		b.log.Warn("stored task list is malformed; starting empty", "key", b.key, "format", b.codec.Name(), "error", err)
		return []task.Task{}
	}
	return b.repair(records)
}

// repair turns decoded records into valid tasks: blank text is dropped,
// missing or duplicate ids are reissued.
func (b *Bridge) repair(records []record) []task.Task {
	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		t := task.Task{ID: r.ID, Text: task.NormalizeText(r.Text), Completed: r.Completed}
		if t.Text == "" {
			b.log.Warn("dropping stored task with empty text", "position", i)
			continue
		}
		if t.ID == "" || seen[t.ID] || task.Validate(t) != nil {
			if t.ID != "" {
				b.log.Warn("reissuing invalid or duplicate task id", "position", i, "id", t.ID)
			}
			t.ID = b.newID()
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}
