package tui

import "tasklist/internal/task"

// editPhase is the state of an in-place edit.
// viewing -> editing -> committed|cancelled -> viewing
type editPhase int

const (
	phaseViewing editPhase = iota
	phaseEditing
	phaseCommitted
	phaseCancelled
)

func (p editPhase) String() string {
	switch p {
	case phaseViewing:
		return "viewing"
	case phaseEditing:
		return "editing"
	case phaseCommitted:
		return "committed"
	case phaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// editor tracks one in-place edit. It never touches the store; the model
// applies whatever commit returns.
type editor struct {
	phase    editPhase
	id       string
	original string
}

// begin starts editing t. It is a no-op unless the editor is viewing.
func (e *editor) begin(t task.Task) bool {
	if e.phase != phaseViewing {
		return false
	}
	e.phase = phaseEditing
	e.id = t.ID
	e.original = t.Text
	return true
}

// commit ends the edit with input. It returns the new text and whether it
// differs from the original. Blank input keeps the original text.
func (e *editor) commit(input string) (string, bool) {
	if e.phase != phaseEditing {
		return "", false
	}
	e.phase = phaseCommitted
	text := task.NormalizeText(input)
	if text == "" || text == e.original {
		return e.original, false
	}
	return text, true
}

// cancel abandons the edit.
func (e *editor) cancel() {
	if e.phase == phaseEditing {
		e.phase = phaseCancelled
	}
}

// settle returns a finished edit to viewing.
func (e *editor) settle() {
	if e.phase == phaseEditing {
		return
	}
	*e = editor{}
}

func (e *editor) editing(id string) bool {
	return e.phase == phaseEditing && e.id == id
}
