// Package view derives render-ready data from the task collection.
// Every function here is pure.
package view

import "tasklist/internal/task"

// Summary holds the counters shown under the list.
type Summary struct {
	Total     int
	Active    int
	Completed int
}

// Project returns the tasks visible under filter, in insertion order.
func Project(tasks []task.Task, filter task.Filter) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize counts tasks. Active is always Total - Completed.
func Summarize(tasks []task.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

// Snapshot is the payload handed to a renderer after every change.
type Snapshot struct {
	Filter task.Filter
	Tasks  []task.Task
	// Positions[i] is the 1-based position of Tasks[i] in the full list.
	Positions  []int
	Summary    Summary
	EmptyLabel string
}

// Empty reports whether nothing is visible under the current filter.
func (s Snapshot) Empty() bool {
	return len(s.Tasks) == 0
}

// Build projects tasks under filter and attaches counters and the empty label.
func Build(tasks []task.Task, filter task.Filter, labels Labels) Snapshot {
	snap := Snapshot{
		Filter:     filter,
		Tasks:      make([]task.Task, 0, len(tasks)),
		Summary:    Summarize(tasks),
		EmptyLabel: labels.Empty(filter),
	}
	for i, t := range tasks {
		if filter.Matches(t) {
			snap.Tasks = append(snap.Tasks, t)
			snap.Positions = append(snap.Positions, i+1)
		}
	}
	return snap
}
