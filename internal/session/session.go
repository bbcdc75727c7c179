// Package session runs the task-list synchronization loop: a user action
// mutates the store, the store saves, and the renderer receives a fresh
// snapshot built under the current filter.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tasklist/internal/persist"
	"tasklist/internal/store"
	"tasklist/internal/task"
	"tasklist/internal/view"
)

// Renderer receives the snapshot produced after every action.
type Renderer func(view.Snapshot)

// Option configures a Session.
type Option func(*Session)

// WithLabels sets the empty-view messages.
func WithLabels(labels view.Labels) Option {
	return func(s *Session) { s.labels = labels }
}

// WithFilter sets the initial filter.
func WithFilter(f task.Filter) Option {
	return func(s *Session) { s.filter = f }
}

// WithRenderer sets the render callback.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.render = r }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// Session owns a task store plus the UI state that is never persisted.
type Session struct {
	store  *store.Store
	filter task.Filter
	labels view.Labels
	render Renderer
	width  int
	log    *slog.Logger
}

// New creates a Session over an existing store.
func New(st *store.Store, opts ...Option) *Session {
	s := &Session{
		store:  st,
		filter: task.FilterAll,
		labels: view.DefaultLabels(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the task list through bridge and returns a Session whose store
// saves back through the same bridge.
func Open(ctx context.Context, bridge *persist.Bridge, opts ...Option) *Session {
	s := New(nil, opts...)
	tasks := bridge.Load(ctx)
	s.log.Debug("session opened", "key", bridge.Key(), "count", len(tasks))
	s.store = store.New(tasks, bridge, store.WithLogger(s.log))
	return s
}

// Add appends a task.
func (s *Session) Add(ctx context.Context, text string) (task.Task, error) {
	defer s.emit()
	return s.store.Add(ctx, text)
}

// Edit replaces the text of the task with id.
func (s *Session) Edit(ctx context.Context, id, text string) (task.Task, error) {
	defer s.emit()
	return s.store.Edit(ctx, id, text)
}

// Toggle flips completion of the task with id.
func (s *Session) Toggle(ctx context.Context, id string) (task.Task, error) {
	defer s.emit()
	return s.store.Toggle(ctx, id)
}

// Delete removes the task with id.
func (s *Session) Delete(ctx context.Context, id string) (task.Task, error) {
	defer s.emit()
	return s.store.Delete(ctx, id)
}

// SetFilter changes the visible subset. Nothing is saved.
func (s *Session) SetFilter(f task.Filter) {
	s.filter = f
	s.emit()
}

// Resize records the viewport width and re-renders. Task state is untouched.
func (s *Session) Resize(width int) {
	s.width = width
	s.emit()
}

// SetRenderer replaces the render callback.
func (s *Session) SetRenderer(r Renderer) { s.render = r }

// Render pushes the current snapshot to the renderer.
func (s *Session) Render() { s.emit() }

// Filter returns the current filter.
func (s *Session) Filter() task.Filter { return s.filter }

// Width returns the last viewport width passed to Resize.
func (s *Session) Width() int { return s.width }

// Tasks returns a copy of the full ordered list.
func (s *Session) Tasks() []task.Task { return s.store.Tasks() }

// Snapshot builds the view under the current filter.
func (s *Session) Snapshot() view.Snapshot {
	return view.Build(s.store.Tasks(), s.filter, s.labels)
}

// Resolve finds a task by reference: all digits is a 1-based position in the
// full list, anything else is an id prefix. A digits-only ref past the end of
// the list is tried as an id prefix, since ids can start with digits.
func (s *Session) Resolve(ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, fmt.Errorf("%w: empty reference", task.ErrNotFound)
	}
	if !isDigits(ref) {
		return s.store.FindByPrefix(ref)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if t, ok := s.store.At(n - 1); ok {
			return t, nil
		}
	}
	if len(ref) >= store.MinPrefixLength {
		t, err := s.store.FindByPrefix(ref)
		if err == nil || errors.Is(err, task.ErrAmbiguous) {
			return t, err
		}
	}
	return task.Task{}, fmt.Errorf("%w: no task at position %s", task.ErrNotFound, ref)
}

func (s *Session) emit() {
	if s.render == nil {
		return
	}
	s.render(s.Snapshot())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
