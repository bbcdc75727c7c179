// Package store owns the ordered task collection and its mutations.
//
// Every successful mutation is followed by a save through the injected Saver.
// A Store is not safe for concurrent use: it is driven by a single event loop.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"tasklist/internal/task"
)

// MinPrefixLength is the shortest id prefix FindByPrefix accepts.
const MinPrefixLength = 4

// Saver persists the full ordered task list.
type Saver interface {
	Save(ctx context.Context, tasks []task.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for save failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store is the ordered task collection.
type Store struct {
	tasks []task.Task
	saver Saver
	log   *slog.Logger
	newID func() string
}

// New creates a Store seeded with initial (copied).
// saver may be nil, in which case mutations are kept in memory only.
func New(initial []task.Task, saver Saver, opts ...Option) *Store {
	s := &Store{
		tasks: slices.Clone(initial),
		saver: saver,
		log:   slog.New(slog.DiscardHandler),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new open task with the trimmed text.
func (s *Store) Add(ctx context.Context, text string) (task.Task, error) {
	text = task.NormalizeText(text)
	if text == "" {
		return task.Task{}, task.ErrEmptyText
	}

	t := task.Task{ID: s.newID(), Text: text}
	s.tasks = append(s.tasks, t)
	return t, s.save(ctx, "add", t.ID)
}

// Edit replaces the text of the task with the given id, keeping its completion state.
func (s *Store) Edit(ctx context.Context, id, text string) (task.Task, error) {
	text = task.NormalizeText(text)
	if text == "" {
		return task.Task{}, task.ErrEmptyText
	}
	i := s.IndexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}

	s.tasks[i].Text = text
	return s.tasks[i], s.save(ctx, "edit", id)
}

// Toggle flips the completion state of the task with the given id.
func (s *Store) Toggle(ctx context.Context, id string) (task.Task, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], s.save(ctx, "toggle", id)
}

// Delete removes the task with the given id. Later tasks shift down one position.
func (s *Store) Delete(ctx context.Context, id string) (task.Task, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}

	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return removed, s.save(ctx, "delete", id)
}

// Tasks returns a copy of the ordered collection.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// At returns the task at 0-based position i.
func (s *Store) At(i int) (task.Task, bool) {
	if i < 0 || i >= len(s.tasks) {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// IndexOf returns the current position of id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

// FindByPrefix resolves a unique id prefix (case-insensitive).
func (s *Store) FindByPrefix(prefix string) (task.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < MinPrefixLength {
		return task.Task{}, fmt.Errorf("%w: id prefix %q is shorter than %d characters", task.ErrNotFound, prefix, MinPrefixLength)
	}

	var matches []task.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s matches %d tasks", task.ErrAmbiguous, prefix, len(matches))
	}
}

// save persists the collection after a mutation. On failure the in-memory
// state is kept and the error wraps task.ErrStorageUnavailable.
func (s *Store) save(ctx context.Context, op, id string) error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(ctx, s.Tasks()); err != nil {
		s.log.Warn("save failed; change kept in memory only", "op", op, "task_id", id, "error", err)
		if !errors.Is(err, task.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %v", task.ErrStorageUnavailable, err)
		}
		return err
	}
	s.log.Debug("saved", "op", op, "task_id", id, "count", len(s.tasks))
	return nil
}
