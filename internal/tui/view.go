package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/task"
	"tasklist/internal/view"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.snap.Empty() {
		b.WriteString(emptyStyle.Render(m.snap.EmptyLabel))
		b.WriteString("\n")
	}
	for i, t := range m.snap.Tasks {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.renderAddBox())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderSummary(m.snap.Summary, m.compact()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(m.inputKeys))
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, len(task.Filters()))
	for _, f := range task.Filters() {
		style := tabStyle
		if f == m.snap.Filter {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	title := titleStyle.Render("tasks")
	if m.compact() {
		return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) renderRow(i int, t task.Task) string {
	pointer := "  "
	if i == m.cursor && m.mode == modeList {
		pointer = cursorStyle.Render("> ")
	}
	pos := positionStyle.Render(fmt.Sprintf("%3d.", m.snap.Positions[i]))

	if m.edit.editing(t.ID) {
		return pointer + pos + " " + m.input.View()
	}

	check := "[ ]"
	text := textStyle.Render(t.Text)
	if t.Completed {
		check = checkStyle.Render("[x]")
		text = doneStyle.Render(t.Text)
	}
	return pointer + pos + " " + check + " " + text
}

func (m *Model) renderAddBox() string {
	box := boxStyle
	if width := m.sess.Width(); width > 0 && width < m.opts.NarrowWidth {
		box = box.Width(max(width-2, 1))
	}
	return box.Render(m.input.View())
}

// renderSummary prints the counters on one line, or stacked when compact.
func renderSummary(s view.Summary, compact bool) string {
	parts := []string{
		fmt.Sprintf("%d total", s.Total),
		fmt.Sprintf("%d active", s.Active),
		fmt.Sprintf("%d completed", s.Completed),
	}
	if compact {
		return summaryStyle.Render(strings.Join(parts, "\n"))
	}
	return summaryStyle.Render(strings.Join(parts, " • "))
}
