package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/logging"
	"tasklist/internal/persist"
	"tasklist/internal/service"
	"tasklist/internal/session"
	"tasklist/internal/store"
	"tasklist/internal/task"
	"tasklist/internal/testutil"
)

// testEnv returns an Env with only a config, for commands that need neither
// the local list nor the remote service.
func testEnv(dir string, quiet bool) *commands.Env {
	return &commands.Env{
		Config: &config.Config{Dir: dir, Quiet: quiet},
		Log:    logging.Discard(),
	}
}

// fixture wires a command Env to an in-memory blob store and a FakeService.
type fixture struct {
	env   *commands.Env
	blobs *testutil.FakeBlobStore
	svc   *testutil.FakeService
	ids   []string
}

// newFixture stores tasks with the given texts. A leading "x " marks a
// completed task.
func newFixture(t *testing.T, texts ...string) *fixture {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}

	f := &fixture{blobs: testutil.NewFakeBlobStore(), svc: testutil.NewFakeService()}
	bridge := persist.NewBridge(f.blobs, cfg.Storage.Key, persist.JSON)

	initial := make([]task.Task, len(texts))
	for i, text := range texts {
		done := strings.HasPrefix(text, "x ")
		initial[i] = task.Task{ID: fixtureID(i), Text: strings.TrimPrefix(text, "x "), Completed: done}
		f.ids = append(f.ids, initial[i].ID)
	}
	if err := bridge.Save(ctx, initial); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	f.blobs.Sets = 0

	f.env = &commands.Env{
		Config:  cfg,
		Session: session.Open(ctx, bridge, session.WithLabels(cfg.ViewLabels()), session.WithFilter(cfg.DefaultFilter())),
		Remote:  f.svc,
		Log:     logging.Discard(),
	}
	return f
}

// fixtureID returns a stable id whose first eight characters differ per task
// and never form a number, so short prefixes resolve as ids.
func fixtureID(i int) string {
	return fmt.Sprintf("%c%07x-0000-4000-8000-%012x", "abcdef"[i%6], i, i)
}

func (f *fixture) run(t *testing.T, cmd commands.Command, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), f.env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func (f *fixture) texts() []string {
	var out []string
	for _, tk := range f.env.Session.Tasks() {
		label := tk.Text
		if tk.Completed {
			label = "x " + label
		}
		out = append(out, label)
	}
	return out
}

// Tests for version command

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)

	stdout, stderr, code := f.run(t, &commands.VersionCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected 'tasklist 0.1.0\\n', got %q", stdout)
	}
}

// Tests for help command

func TestHelpCommand(t *testing.T) {
	f := newFixture(t)

	stdout, _, code := f.run(t, &commands.HelpCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "help", stdout)
}

func TestDefaultRegistry_Aliases(t *testing.T) {
	tests := map[string]string{
		"ls":     "list",
		"create": "add",
		"rename": "edit",
		"done":   "toggle",
		"delete": "rm",
		"ui":     "tui",
	}
	for alias, want := range tests {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != want {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected error registering add twice")
	}
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, name := range []string{"add", "ADD", "create", "rm", "delete"} {
		if _, ok := r.Find(name); !ok {
			t.Errorf("Find(%q) failed", name)
		}
	}
	if _, ok := r.Find("toggle"); ok {
		t.Error("Find(toggle) should fail on this registry")
	}

	var names []string
	for _, cmd := range r.All() {
		names = append(names, cmd.Name())
	}
	if diff := cmp.Diff([]string{"add", "rm"}, names); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

// Tests for list command

func TestListCommand_All(t *testing.T) {
	f := newFixture(t, "buy milk", "x walk dog", "call mom")

	stdout, stderr, code := f.run(t, &commands.ListCmd{})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] buy milk\n   2  [x] walk dog\n   3  [ ] call mom\ntotal: 3  active: 2  completed: 1\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_ActiveKeepsFullListPositions(t *testing.T) {
	f := newFixture(t, "x buy milk", "walk dog")

	stdout, _, code := f.run(t, &commands.ListCmd{}, "active")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   2  [ ] walk dog\ntotal: 2  active: 1  completed: 1\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_FilterFlagAndIDs(t *testing.T) {
	f := newFixture(t, "buy milk", "x walk dog")
	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")
	cmd.SetShowIDs(true)

	stdout, _, code := f.run(t, cmd)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   2  " + f.ids[1][:8] + "  [x] walk dog\ntotal: 2  active: 1  completed: 1\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_EmptyLabels(t *testing.T) {
	tests := []struct {
		filter string
		quiet  bool
		want   string
	}{
		{"", false, "no tasks\ntotal: 0  active: 0  completed: 0\n"},
		{"completed", false, "no completed tasks\ntotal: 0  active: 0  completed: 0\n"},
		{"", true, "total: 0  active: 0  completed: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			f := newFixture(t)
			f.env.Config.Quiet = tt.quiet
			cmd := &commands.ListCmd{}
			cmd.SetFilter(tt.filter)

			stdout, _, code := f.run(t, cmd)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stdout != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout)
			}
		})
	}
}

func TestListCommand_InvalidFilter(t *testing.T) {
	f := newFixture(t)

	_, stderr, code := f.run(t, &commands.ListCmd{}, "done")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid filter: done") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_FilterTwice(t *testing.T) {
	f := newFixture(t)
	cmd := &commands.ListCmd{}
	cmd.SetFilter("active")

	_, stderr, code := f.run(t, cmd, "completed")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: cannot use both --filter and a filter argument\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command

func TestAddCommand_Success(t *testing.T) {
	f := newFixture(t, "existing")

	stdout, stderr, code := f.run(t, &commands.AddCmd{}, "buy", "milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if diff := cmp.Diff([]string{"existing", "buy milk"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if f.blobs.Sets != 1 {
		t.Errorf("expected one save, got %d", f.blobs.Sets)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	f := newFixture(t)
	f.env.Config.Quiet = true

	stdout, _, code := f.run(t, &commands.AddCmd{}, "x")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_NoText(t *testing.T) {
	for _, args := range [][]string{nil, {"   "}} {
		f := newFixture(t)

		_, stderr, code := f.run(t, &commands.AddCmd{}, args...)

		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: task text required\n" {
			t.Errorf("expected 'error: task text required\\n', got %q", stderr)
		}
		if f.blobs.Sets != 0 {
			t.Errorf("blank add saved %d times", f.blobs.Sets)
		}
	}
}

func TestAddCommand_StorageError(t *testing.T) {
	f := newFixture(t)
	f.blobs.SetErr = errors.New("disk full")

	_, stderr, code := f.run(t, &commands.AddCmd{}, "kept")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.HasPrefix(stderr, "error: storage unavailable") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if diff := cmp.Diff([]string{"kept"}, f.texts()); diff != "" {
		t.Errorf("in-memory change lost (-want +got):\n%s", diff)
	}
}

// Tests for edit command

func TestEditCommand_ByPosition(t *testing.T) {
	f := newFixture(t, "a", "b")

	stdout, _, code := f.run(t, &commands.EditCmd{}, "2", "bee")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if diff := cmp.Diff([]string{"a", "bee"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestEditCommand_ByIDPrefix(t *testing.T) {
	f := newFixture(t, "a", "b")

	_, _, code := f.run(t, &commands.EditCmd{}, f.ids[0][:6], "alpha", "one")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if diff := cmp.Diff([]string{"alpha one", "b"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestEditCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no ref", nil, "error: task reference required\n"},
		{"invalid ref", []string{"zz", "text"}, "error: invalid task reference: zz\n"},
		{"blank text", []string{"1", "  "}, "error: task text required\n"},
		{"out of range", []string{"5", "text"}, "error: task not found: no task at position 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "a")

			_, stderr, code := f.run(t, &commands.EditCmd{}, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
			if diff := cmp.Diff([]string{"a"}, f.texts()); diff != "" {
				t.Errorf("tasks changed (-want +got):\n%s", diff)
			}
		})
	}
}

// Tests for toggle command

func TestToggleCommand_Success(t *testing.T) {
	f := newFixture(t, "a", "x b", "c")

	stdout, _, code := f.run(t, &commands.ToggleCmd{}, "1", "2")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if diff := cmp.Diff([]string{"x a", "b", "c"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleCommand_DuplicateRefTogglesOnce(t *testing.T) {
	f := newFixture(t, "a")

	_, _, code := f.run(t, &commands.ToggleCmd{}, "1", f.ids[0][:8])

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if diff := cmp.Diff([]string{"x a"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

// An id made of digits is longer than any position, so it still resolves.
func TestToggleCommand_NumericIDPrefix(t *testing.T) {
	st := store.New([]task.Task{
		{ID: "aaaa0000-0000-4000-8000-000000000000", Text: "a"},
		{ID: "12345678-9abc-4def-8123-456789abcdef", Text: "b"},
	}, nil)
	env := testEnv(t.TempDir(), false)
	env.Session = session.New(st)

	var out, errOut bytes.Buffer
	code := (&commands.ToggleCmd{}).Run(context.Background(), env, []string{"12345678"}, &out, &errOut)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errOut.String())
	}
	if got, _ := st.At(1); !got.Completed {
		t.Error("task with numeric id prefix should be completed")
	}
	if got, _ := st.At(0); got.Completed {
		t.Error("first task should be untouched")
	}
}

func TestToggleCommand_NoRef(t *testing.T) {
	f := newFixture(t, "a")

	_, stderr, code := f.run(t, &commands.ToggleCmd{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// A bad reference anywhere in the arguments must leave every task untouched.
func TestToggleCommand_OutOfRangeChangesNothing(t *testing.T) {
	f := newFixture(t, "a", "b")

	_, stderr, code := f.run(t, &commands.ToggleCmd{}, "1", "9")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: no task at position 9\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if diff := cmp.Diff([]string{"a", "b"}, f.texts()); diff != "" {
		t.Errorf("tasks changed (-want +got):\n%s", diff)
	}
	if f.blobs.Sets != 0 {
		t.Errorf("expected no saves, got %d", f.blobs.Sets)
	}
}

// Tests for rm command

func TestRmCommand_PositionsResolvedUpFront(t *testing.T) {
	f := newFixture(t, "a", "b", "c")

	stdout, _, code := f.run(t, &commands.RmCmd{}, "1", "3")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if diff := cmp.Diff([]string{"b"}, f.texts()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestRmCommand_AmbiguousPrefix(t *testing.T) {
	f := newFixture(t)
	f.env.Session = session.New(store.New([]task.Task{
		{ID: "abcd1111-0000-4000-8000-000000000000", Text: "a"},
		{ID: "abcd2222-0000-4000-8000-000000000000", Text: "b"},
	}, nil))

	_, stderr, code := f.run(t, &commands.RmCmd{}, "abcd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "ambiguous") {
		t.Errorf("expected ambiguous prefix error, got %q", stderr)
	}
	if n := len(f.env.Session.Tasks()); n != 2 {
		t.Errorf("expected both tasks kept, got %d", n)
	}
}

// Tests for stats command

func TestStatsCommand(t *testing.T) {
	f := newFixture(t, "a", "x b", "x c")

	stdout, _, code := f.run(t, &commands.StatsCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "total: 3  active: 1  completed: 2\n" {
		t.Errorf("unexpected stats %q", stdout)
	}
}

// Tests for lists command

func TestListsCommand(t *testing.T) {
	f := newFixture(t)
	f.svc.AddList("work", "Work")

	stdout, _, code := f.run(t, &commands.ListsCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "My Tasks [default]\nWork\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListsCommand_AuthError(t *testing.T) {
	f := newFixture(t)
	f.svc.ListListsErr = service.ErrAuth

	_, stderr, code := f.run(t, &commands.ListsCmd{})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: auth error\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for push command

func TestPushCommand_DefaultList(t *testing.T) {
	f := newFixture(t, "buy milk", "x walk dog", "call mom")
	f.svc.AddTask(testutil.DefaultListID, "r1", "walk dog", false)
	f.svc.AddTask(testutil.DefaultListID, "r2", "call mom", true)

	stdout, stderr, code := f.run(t, &commands.PushCmd{})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok: created 1, completed 1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	var got []string
	for _, rt := range f.svc.Tasks(testutil.DefaultListID) {
		got = append(got, rt.Title+":"+rt.Status)
	}
	want := []string{
		"walk dog:" + service.StatusCompleted,
		"call mom:" + service.StatusCompleted,
		"buy milk:" + service.StatusNeedsAction,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("remote tasks mismatch (-want +got):\n%s", diff)
	}
	if f.blobs.Sets != 0 {
		t.Errorf("push must not write the local list, got %d saves", f.blobs.Sets)
	}
}

func TestPushCommand_NothingToPush(t *testing.T) {
	f := newFixture(t, "buy milk", "x walk dog")
	f.svc.AddTask(testutil.DefaultListID, "r1", "buy milk", false)
	f.svc.AddTask(testutil.DefaultListID, "r2", "walk dog", true)

	stdout, stderr, code := f.run(t, &commands.PushCmd{})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "nothing to push\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if n := len(f.svc.Tasks(testutil.DefaultListID)); n != 2 {
		t.Errorf("expected remote list untouched, got %d tasks", n)
	}
}

func TestPushCommand_DryRun(t *testing.T) {
	f := newFixture(t, "buy milk", "x walk dog")
	f.svc.AddTask(testutil.DefaultListID, "r1", "walk dog", false)
	cmd := &commands.PushCmd{}
	cmd.SetDryRun(true)

	stdout, _, code := f.run(t, cmd)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "+ buy milk\nx walk dog\n" {
		t.Errorf("unexpected plan %q", stdout)
	}
	if n := len(f.svc.Tasks(testutil.DefaultListID)); n != 1 {
		t.Errorf("dry run changed the remote list, now %d tasks", n)
	}
}

func TestPushCommand_NamedList(t *testing.T) {
	f := newFixture(t, "a")
	f.svc.AddList("work", "Work")
	cmd := &commands.PushCmd{}
	cmd.SetListName("work")

	_, _, code := f.run(t, cmd)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if n := len(f.svc.Tasks("work")); n != 1 {
		t.Errorf("expected 1 task in Work, got %d", n)
	}
}

func TestPushCommand_MissingList(t *testing.T) {
	f := newFixture(t, "a")
	cmd := &commands.PushCmd{}
	cmd.SetListName("Errands")

	_, stderr, code := f.run(t, cmd)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "Errands") {
		t.Errorf("error should name the list, got %q", stderr)
	}

	cmd.SetCreate(true)
	_, stderr, code = f.run(t, cmd)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if n := len(f.svc.Tasks("errands")); n != 1 {
		t.Errorf("expected the task in the created list, got %d", n)
	}
}

func TestPushCommand_BackendError(t *testing.T) {
	f := newFixture(t, "a", "b")
	f.svc.CreateTaskErr = errors.New("quota exceeded")

	_, stderr, code := f.run(t, &commands.PushCmd{})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: create \"a\": quota exceeded\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPushCommand_UnexpectedArgument(t *testing.T) {
	f := newFixture(t)

	_, stderr, code := f.run(t, &commands.PushCmd{}, "extra")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
