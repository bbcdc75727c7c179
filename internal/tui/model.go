// Package tui is the interactive terminal editor for the task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/session"
	"tasklist/internal/task"
	"tasklist/internal/view"
)

// promptWidth is the room taken by the input prompt and the cursor cell.
const promptWidth = 4

// Options holds layout settings.
type Options struct {
	// CompactWidth is the width below which the summary is stacked.
	CompactWidth int
	// NarrowWidth is the width below which the edit input spans the whole line.
	NarrowWidth int
	// CharLimit caps the input length. Zero means no limit.
	CharLimit int
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Model is the bubbletea model. It holds the latest snapshot pushed by the
// session; every state change goes through the session.
type Model struct {
	ctx  context.Context
	sess *session.Session
	opts Options
	log  *slog.Logger

	keys      keyMap
	inputKeys inputKeys
	help      help.Model
	input     textinput.Model

	snap     view.Snapshot
	mode     mode
	edit     editor
	cursor   int
	cursorID string
	status   string
}

// New creates a Model and attaches it as the session's renderer.
func New(ctx context.Context, sess *session.Session, opts Options, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = opts.CharLimit

	m := &Model{
		ctx:       ctx,
		sess:      sess,
		opts:      opts,
		log:       log,
		keys:      defaultKeys(),
		inputKeys: defaultInputKeys(),
		help:      help.New(),
		input:     ti,
	}
	sess.SetRenderer(m.render)
	sess.Render()
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, sess *session.Session, opts Options, log *slog.Logger) error {
	m := New(ctx, sess, opts, log)
	defer sess.SetRenderer(nil)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// render receives snapshots from the session and keeps the cursor on the
// same task when it is still visible.
func (m *Model) render(s view.Snapshot) {
	m.snap = s
	if i := indexOf(s.Tasks, m.cursorID); i >= 0 {
		m.cursor = i
	}
	m.cursor = clampCursor(m.cursor, len(s.Tasks))
	m.cursorID = ""
	if len(s.Tasks) > 0 {
		m.cursorID = s.Tasks[m.cursor].ID
	}
	m.help.Width = m.sess.Width()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sess.Resize(msg.Width)
		m.fitInput()
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Add):
		m.status = ""
		m.mode = modeAdd
		m.input.Reset()
		m.input.Placeholder = "What needs to be done?"
		m.fitInput()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok || !m.edit.begin(t) {
			return m, nil
		}
		m.status = ""
		m.mode = modeEdit
		m.input.Placeholder = ""
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		m.fitInput()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, err := m.sess.Toggle(m.ctx, t.ID)
			m.report(err)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			_, err := m.sess.Delete(m.ctx, t.ID)
			m.report(err)
		}
	case key.Matches(msg, m.keys.Cycle):
		m.sess.SetFilter(m.sess.Filter().Next())
	case key.Matches(msg, m.keys.All):
		m.sess.SetFilter(task.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.sess.SetFilter(task.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.sess.SetFilter(task.FilterCompleted)
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Confirm):
		m.commitInput()
		return m, nil
	case key.Matches(msg, m.inputKeys.Cancel):
		m.edit.cancel()
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.fitInput()
	return m, cmd
}

func (m *Model) commitInput() {
	switch m.mode {
	case modeAdd:
		t, err := m.sess.Add(m.ctx, m.input.Value())
		if err == nil || errors.Is(err, task.ErrStorageUnavailable) {
			m.cursorID = t.ID
			m.sess.Render()
		}
		m.report(err)
	case modeEdit:
		id := m.edit.id
		if text, changed := m.edit.commit(m.input.Value()); changed {
			_, err := m.sess.Edit(m.ctx, id, text)
			m.report(err)
		}
	}
	m.closeInput()
}

func (m *Model) closeInput() {
	m.edit.settle()
	m.input.Blur()
	m.input.Reset()
	m.mode = modeList
}

// report turns an action error into status text. Blank input and stale
// references are ignored the same way the list ignores them.
func (m *Model) report(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, task.ErrStorageUnavailable):
		m.status = "storage unavailable: changes are kept until you quit"
		m.log.Error("save failed", "error", err)
	case errors.Is(err, task.ErrEmptyText), errors.Is(err, task.ErrNotFound):
		m.log.Debug("action ignored", "error", err)
	default:
		m.status = err.Error()
		m.log.Warn("action failed", "error", err)
	}
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Tasks) {
		return task.Task{}, false
	}
	return m.snap.Tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.snap.Tasks) == 0 {
		return
	}
	m.cursor = clampCursor(m.cursor+delta, len(m.snap.Tasks))
	m.cursorID = m.snap.Tasks[m.cursor].ID
}

// fitInput sizes the text input: the whole line on narrow terminals,
// otherwise the text plus two cells.
func (m *Model) fitInput() {
	width := m.sess.Width()
	if width > 0 && width < m.opts.NarrowWidth {
		m.input.Width = max(width-promptWidth, 1)
		return
	}
	text := m.input.Value()
	if text == "" {
		text = m.input.Placeholder
	}
	w := lipgloss.Width(text) + 2
	if width > 0 {
		w = min(w, max(width-promptWidth, 1))
	}
	m.input.Width = w
}

func (m *Model) compact() bool {
	width := m.sess.Width()
	return width > 0 && width < m.opts.CompactWidth
}

func indexOf(tasks []task.Task, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
