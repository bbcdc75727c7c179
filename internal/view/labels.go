package view

import "tasklist/internal/task"

// Labels are the messages shown when a filter matches nothing.
type Labels struct {
	All       string
	Active    string
	Completed string
	// Fallback is used for any filter value without its own label.
	Fallback string
}

// DefaultLabels returns the built-in empty-view messages.
func DefaultLabels() Labels {
	return Labels{
		All:       "no tasks",
		Active:    "no active tasks",
		Completed: "no completed tasks",
		Fallback:  "nothing to show",
	}
}

// Empty returns the message for filter. Blank entries fall back to the defaults.
func (l Labels) Empty(filter task.Filter) string {
	def := DefaultLabels()
	pick := func(v, d string) string {
		if v != "" {
			return v
		}
		return d
	}

	switch filter {
	case task.FilterAll:
		return pick(l.All, def.All)
	case task.FilterActive:
		return pick(l.Active, def.Active)
	case task.FilterCompleted:
		return pick(l.Completed, def.Completed)
	default:
		return pick(l.Fallback, def.Fallback)
	}
}
