// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
	"tasklist/internal/task"
	"tasklist/internal/view"
)

// ShortIDLength is the number of id characters shown by --ids.
const ShortIDLength = 8

// FormatTask formats one task line.
// Format: "{N:>4}  [ ] {TEXT}\n", or "{N:>4}  {ID8}  [x] {TEXT}\n" with showID.
func FormatTask(w io.Writer, pos int, t task.Task, showID bool) {
	text := normalizeTitle(t.Text)
	if showID {
		fmt.Fprintf(w, "%4d  %s  %s %s\n", pos, ShortID(t.ID), checkbox(t.Completed), text)
		return
	}
	fmt.Fprintf(w, "%4d  %s %s\n", pos, checkbox(t.Completed), text)
}

// FormatSummary formats the counters line.
func FormatSummary(w io.Writer, s view.Summary) {
	fmt.Fprintf(w, "total: %d  active: %d  completed: %d\n", s.Total, s.Active, s.Completed)
}

// FormatEmpty formats the message shown when a filter matches nothing.
func FormatEmpty(w io.Writer, label string) {
	fmt.Fprintln(w, label)
}

// FormatSnapshot prints the visible tasks, or the empty label, followed by
// the summary. quiet drops the empty label.
func FormatSnapshot(w io.Writer, snap view.Snapshot, showIDs, quiet bool) {
	if snap.Empty() {
		if !quiet {
			FormatEmpty(w, snap.EmptyLabel)
		}
	}
	for i, t := range snap.Tasks {
		FormatTask(w, snap.Positions[i], t, showIDs)
	}
	FormatSummary(w, snap.Summary)
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeListTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// ShortID returns the leading characters of id used for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task text for display.
// - Empty or whitespace-only texts become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
