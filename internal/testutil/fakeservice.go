// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tasklist/internal/service"
)

// DefaultListID is the ID used for the default remote list.
const DefaultListID = "@default"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = service.ErrNotFound

// ErrAmbiguous is returned when multiple matches are found.
var ErrAmbiguous = service.ErrAmbiguous

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Error injection for testing
	DefaultListErr  error
	ListListsErr    error
	ResolveListErr  error
	CreateListErr   error
	ListTasksErr    map[string]error // listID -> error
	CreateTaskErr   error
	CompleteTaskErr error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:        make(map[string][]service.Task),
		ListTasksErr: make(map[string]error),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds a task to a list.
func (f *FakeService) AddTask(listID, taskID, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     taskID,
		Title:  title,
		Status: status(completed),
	})
}

// Tasks returns a copy of the tasks in a list.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list %w: %s", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w list name: %s", ErrAmbiguous, name)
	}
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list := service.TaskList{ID: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Title: name}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	return list, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err, ok := f.ListTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return ErrNotFound
	}

	f.nextID++
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     fmt.Sprintf("remote-%d", f.nextID),
		Title:  title,
		Status: status(completed),
	})
	return nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return ErrNotFound
	}
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID][i].Status = service.StatusCompleted
			return nil
		}
	}
	return ErrNotFound
}

func status(completed bool) string {
	if completed {
		return service.StatusCompleted
	}
	return service.StatusNeedsAction
}
