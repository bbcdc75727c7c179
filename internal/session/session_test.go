package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tasklist/internal/persist"
	"tasklist/internal/session"
	"tasklist/internal/store"
	"tasklist/internal/task"
	"tasklist/internal/testutil"
	"tasklist/internal/view"
)

// recorder collects every snapshot passed to the renderer.
type recorder struct {
	snaps []view.Snapshot
}

func (r *recorder) render(s view.Snapshot) { r.snaps = append(r.snaps, s) }

func (r *recorder) last(t *testing.T) view.Snapshot {
	t.Helper()
	if len(r.snaps) == 0 {
		t.Fatal("renderer was never called")
	}
	return r.snaps[len(r.snaps)-1]
}

func texts(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.Text
	}
	return out
}

func openSession(t *testing.T, blobs *testutil.FakeBlobStore, opts ...session.Option) (*session.Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	bridge := persist.NewBridge(blobs, "", persist.JSON)
	opts = append(opts, session.WithRenderer(rec.render))
	return session.Open(context.Background(), bridge, opts...), rec
}

func TestSession_BuyMilk(t *testing.T) {
	blobs := testutil.NewFakeBlobStore()
	s, rec := openSession(t, blobs)

	if _, err := s.Add(context.Background(), "buy milk"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	snap := rec.last(t)
	if diff := cmp.Diff([]string{"buy milk"}, texts(snap.Tasks)); diff != "" {
		t.Errorf("visible tasks mismatch (-want +got):\n%s", diff)
	}
	want := view.Summary{Total: 1, Active: 1, Completed: 0}
	if snap.Summary != want {
		t.Errorf("summary = %+v, want %+v", snap.Summary, want)
	}
	if blobs.Sets != 1 {
		t.Errorf("expected one save, got %d", blobs.Sets)
	}
}

func TestSession_ToggleThenFilterActive(t *testing.T) {
	s, rec := openSession(t, testutil.NewFakeBlobStore())
	ctx := context.Background()

	a, _ := s.Add(ctx, "a")
	s.Add(ctx, "b")
	if _, err := s.Toggle(ctx, a.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	s.SetFilter(task.FilterActive)

	snap := rec.last(t)
	if diff := cmp.Diff([]string{"b"}, texts(snap.Tasks)); diff != "" {
		t.Errorf("active view mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, snap.Positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DeleteFirst(t *testing.T) {
	s, rec := openSession(t, testutil.NewFakeBlobStore())
	ctx := context.Background()

	a, _ := s.Add(ctx, "a")
	s.Add(ctx, "b")
	if _, err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snap := rec.last(t)
	if diff := cmp.Diff([]string{"b"}, texts(snap.Tasks)); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, snap.Positions); diff != "" {
		t.Errorf("b should have shifted to position 1 (-want +got):\n%s", diff)
	}
}

// Operations issued from a filtered view must reach the task that was shown,
// not the task at the same index of the full list.
func TestSession_FilteredViewAddressesShownTask(t *testing.T) {
	s, rec := openSession(t, testutil.NewFakeBlobStore())
	ctx := context.Background()

	a, _ := s.Add(ctx, "a")
	s.Add(ctx, "b")
	s.Add(ctx, "c")
	s.Toggle(ctx, a.ID)
	s.SetFilter(task.FilterActive)

	shown := rec.last(t).Tasks
	if len(shown) != 2 {
		t.Fatalf("expected 2 active tasks, got %d", len(shown))
	}
	if _, err := s.Delete(ctx, shown[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "c"}, texts(s.Tasks())); diff != "" {
		t.Errorf("wrong task deleted (-want +got):\n%s", diff)
	}
}

func TestSession_FailedActionsStillRender(t *testing.T) {
	s, rec := openSession(t, testutil.NewFakeBlobStore())
	ctx := context.Background()

	if _, err := s.Add(ctx, "   "); !errors.Is(err, task.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
	if _, err := s.Toggle(ctx, "missing"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(rec.snaps) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(rec.snaps))
	}
	snap := rec.last(t)
	if !snap.Empty() || snap.EmptyLabel != "no tasks" {
		t.Errorf("expected empty view with default label, got %+v", snap)
	}
}

func TestSession_ResizeDoesNotSave(t *testing.T) {
	blobs := testutil.NewFakeBlobStore()
	s, rec := openSession(t, blobs)
	s.Add(context.Background(), "a")
	saves := blobs.Sets

	s.Resize(40)
	s.SetFilter(task.FilterCompleted)

	if blobs.Sets != saves {
		t.Errorf("resize and filter changes must not save, got %d extra", blobs.Sets-saves)
	}
	if s.Width() != 40 {
		t.Errorf("Width() = %d, want 40", s.Width())
	}
	if got := rec.last(t).EmptyLabel; got != "no completed tasks" {
		t.Errorf("EmptyLabel = %q", got)
	}
}

func TestSession_SaveFailureKeepsState(t *testing.T) {
	blobs := testutil.NewFakeBlobStore()
	blobs.SetErr = errors.New("disk full")
	s, rec := openSession(t, blobs)

	_, err := s.Add(context.Background(), "kept")
	if !errors.Is(err, task.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if diff := cmp.Diff([]string{"kept"}, texts(rec.last(t).Tasks)); diff != "" {
		t.Errorf("in-memory state lost (-want +got):\n%s", diff)
	}
}

func TestSession_OpenLoadsStoredTasks(t *testing.T) {
	blobs := testutil.NewFakeBlobStore()
	blobs.Put(persist.DefaultKey, `[{"text":"old","completed":true},{"text":"new","completed":false}]`)

	s, _ := openSession(t, blobs, session.WithFilter(task.FilterCompleted))
	snap := s.Snapshot()

	if diff := cmp.Diff([]string{"old"}, texts(snap.Tasks)); diff != "" {
		t.Errorf("completed view mismatch (-want +got):\n%s", diff)
	}
	if snap.Summary.Total != 2 {
		t.Errorf("expected 2 tasks loaded, got %d", snap.Summary.Total)
	}
}

func TestSession_OpenMalformedStartsEmpty(t *testing.T) {
	blobs := testutil.NewFakeBlobStore()
	blobs.Put(persist.DefaultKey, "not json at all")

	s, _ := openSession(t, blobs)
	if n := len(s.Tasks()); n != 0 {
		t.Errorf("expected empty session, got %d tasks", n)
	}
}

func TestSession_CustomLabels(t *testing.T) {
	s := session.New(store.New(nil, nil), session.WithLabels(view.Labels{All: "all clear"}))

	if got := s.Snapshot().EmptyLabel; got != "all clear" {
		t.Errorf("EmptyLabel = %q, want all clear", got)
	}
	s.SetFilter(task.Filter("bogus"))
	if got := s.Snapshot().EmptyLabel; got != "nothing to show" {
		t.Errorf("unknown filter label = %q, want fallback", got)
	}
}

func TestSession_Resolve(t *testing.T) {
	initial := []task.Task{
		{ID: "aaaa1111-0000-4000-8000-000000000000", Text: "first"},
		{ID: "bbbb2222-0000-4000-8000-000000000000", Text: "second"},
	}
	s := session.New(store.New(initial, nil))

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{"1", "first", nil},
		{" 2 ", "second", nil},
		{"bbbb", "second", nil},
		{"AAAA11", "first", nil},
		{"0", "", task.ErrNotFound},
		{"3", "", task.ErrNotFound},
		{"", "", task.ErrNotFound},
		{"abc", "", task.ErrNotFound},
		{"cccc", "", task.ErrNotFound},
		{"99999999999999999999", "", task.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.ref, err)
			}
			if got.Text != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got.Text, tt.want)
			}
		})
	}
}

func TestSession_ResolveNumericID(t *testing.T) {
	initial := []task.Task{
		{ID: "aaaa1111-0000-4000-8000-000000000000", Text: "first"},
		{ID: "12345678-9abc-4def-8123-456789abcdef", Text: "numeric"},
		{ID: "12349999-0000-4000-8000-000000000000", Text: "sibling"},
	}
	s := session.New(store.New(initial, nil))

	// In range, so still a position.
	if got, err := s.Resolve("2"); err != nil || got.Text != "numeric" {
		t.Errorf("Resolve(2) = %q, %v; want numeric", got.Text, err)
	}
	if got, err := s.Resolve("12345678"); err != nil || got.Text != "numeric" {
		t.Errorf("Resolve(12345678) = %q, %v; want numeric", got.Text, err)
	}
	if _, err := s.Resolve("1234"); !errors.Is(err, task.ErrAmbiguous) {
		t.Errorf("Resolve(1234) error = %v, want ErrAmbiguous", err)
	}
	_, err := s.Resolve("5555")
	if !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("Resolve(5555) error = %v, want ErrNotFound", err)
	}
	if want := "task not found: no task at position 5555"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
