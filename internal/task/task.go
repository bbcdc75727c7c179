// Package task defines the task model shared by the store, the view projector
// and the persistence bridge.
package task

import (
	"fmt"
	"strings"
)

// Task is a single to-do entry.
// ID is assigned once at creation and never changes; position in the list is
// derived by the owner at render time.
type Task struct {
	ID        string `json:"id" yaml:"id" validate:"required,uuid4"`
	Text      string `json:"text" yaml:"text" validate:"required"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns the selectable filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// Matches reports whether t is visible under f.
// Unknown filters match nothing.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterAll:
		return true
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return false
	}
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	for i, candidate := range all {
		if candidate == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// ParseFilter parses a filter name (case-insensitive, trimmed).
// An empty name means FilterAll.
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FilterAll, nil
	}
	for _, f := range Filters() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid filter: %s (want all, active or completed)", s)
}

// NormalizeText trims surrounding whitespace from user input and replaces
// invalid UTF-8 with U+FFFD, so stored text matches what the codecs write.
func NormalizeText(s string) string {
	return strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD")
}
