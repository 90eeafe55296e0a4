package builder

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"embed-manager/internal/embed"
)

// fakeNotifier records panel updates and signals terminal transitions.
type fakeNotifier struct {
	mu       sync.Mutex
	changed  int
	finished []State
	done     chan State
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan State, 1)}
}

func (n *fakeNotifier) PanelChanged(p *Panel) {
	n.mu.Lock()
	n.changed++
	n.mu.Unlock()
}

func (n *fakeNotifier) Finished(p *Panel, final State) {
	n.mu.Lock()
	n.finished = append(n.finished, final)
	n.mu.Unlock()
	n.done <- final
}

func (n *fakeNotifier) changedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.changed
}

func (n *fakeNotifier) finishedStates() []State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]State(nil), n.finished...)
}

const owner = "user-1"

func newTestSession(t *testing.T) (*Session, *fakeNotifier) {
	t.Helper()
	n := newFakeNotifier()
	s := NewSession(owner, nil, false, time.Minute, n)
	NewManager().Bind("chan-1", "msg-1", s)
	return s, n
}

func TestNonOwnerRejected(t *testing.T) {
	s, n := newTestSession(t)

	if _, err := s.Select("someone-else", CategoryContent); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Select err = %v, want ErrNotOwner", err)
	}
	if err := s.Cancel("someone-else"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Cancel err = %v, want ErrNotOwner", err)
	}
	if _, err := s.Save("someone-else"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Save err = %v, want ErrNotOwner", err)
	}

	if s.State() != StateOpen {
		t.Errorf("state = %v, want open after rejected interactions", s.State())
	}
	if n.changedCount() != 0 || len(n.finishedStates()) != 0 {
		t.Error("rejected interactions must not re-render the panel")
	}
}

func TestSelectSubmitCycle(t *testing.T) {
	s, n := newTestSession(t)

	f, err := s.Select(owner, CategoryContent)
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateAwaitingSubmission {
		t.Fatalf("state = %v, want awaiting-submission", s.State())
	}

	err = s.Submit(owner, CategoryContent, f.Seq, map[string]string{"title": "Hello"})
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state = %v, want open", s.State())
	}
	if got := s.Draft().Title; got != "Hello" {
		t.Errorf("title = %q", got)
	}
	if n.changedCount() != 1 {
		t.Errorf("PanelChanged fired %d times, want 1", n.changedCount())
	}
}

func TestInvalidSubmitKeepsEditorPending(t *testing.T) {
	s, n := newTestSession(t)
	before := s.Draft()

	f, _ := s.Select(owner, CategoryContent)
	err := s.Submit(owner, CategoryContent, f.Seq, map[string]string{"color": "#zzzzzz"})
	var verr *embed.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if s.State() != StateAwaitingSubmission {
		t.Errorf("state = %v, want awaiting-submission so the owner can retry", s.State())
	}
	if !reflect.DeepEqual(s.Draft(), before) {
		t.Error("rejected submission mutated the draft")
	}
	if n.changedCount() != 0 {
		t.Error("rejected submission must not re-render the panel")
	}

	// The editor is still live, a corrected resubmission goes through.
	if err := s.Submit(owner, CategoryContent, f.Seq, map[string]string{"color": "#ff8800"}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := s.Draft().Color; got != 0xff8800 {
		t.Errorf("color = %#x", got)
	}
}

func TestReselectDiscardsPendingEditor(t *testing.T) {
	s, _ := newTestSession(t)

	first, _ := s.Select(owner, CategoryContent)
	second, err := s.Select(owner, CategoryFooter)
	if err != nil {
		t.Fatal(err)
	}

	// The first editor was implicitly discarded; its submission is stale.
	err = s.Submit(owner, CategoryContent, first.Seq, map[string]string{"title": "late"})
	if !errors.Is(err, ErrStaleEditor) {
		t.Fatalf("stale submit err = %v, want ErrStaleEditor", err)
	}
	if s.Draft().Title != "" {
		t.Error("stale submission mutated the draft")
	}

	if err := s.Submit(owner, CategoryFooter, second.Seq, map[string]string{"text": "ok"}); err != nil {
		t.Fatalf("live submit: %v", err)
	}
}

func TestSaveDiscardsPendingAndFinishes(t *testing.T) {
	s, n := newTestSession(t)

	f, _ := s.Select(owner, CategoryContent)
	if err := s.Submit(owner, CategoryContent, f.Seq, map[string]string{"title": "Hello"}); err != nil {
		t.Fatal(err)
	}
	f, _ = s.Select(owner, CategoryFooter)

	final, err := s.Save(owner)
	if err != nil {
		t.Fatal(err)
	}
	if final.Title != "Hello" {
		t.Errorf("saved title = %q", final.Title)
	}
	if s.State() != StateSaved {
		t.Fatalf("state = %v, want saved", s.State())
	}
	if got := n.finishedStates(); len(got) != 1 || got[0] != StateSaved {
		t.Errorf("finished notifications = %v", got)
	}

	// The discarded footer editor cannot land after the fact.
	if err := s.Submit(owner, CategoryFooter, f.Seq, map[string]string{"text": "late"}); !errors.Is(err, ErrFinished) {
		t.Errorf("post-save submit err = %v, want ErrFinished", err)
	}
}

func TestSaveEmptyDraftRejected(t *testing.T) {
	s, n := newTestSession(t)

	if _, err := s.Save(owner); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("err = %v, want ErrEmptyDraft", err)
	}
	if s.State() != StateOpen {
		t.Errorf("state = %v, rejected save must keep the session open", s.State())
	}
	if len(n.finishedStates()) != 0 {
		t.Error("rejected save must not finish the session")
	}
}

func TestCancel(t *testing.T) {
	s, n := newTestSession(t)

	if err := s.Cancel(owner); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateCancelled {
		t.Fatalf("state = %v, want cancelled", s.State())
	}
	if got := n.finishedStates(); len(got) != 1 || got[0] != StateCancelled {
		t.Errorf("finished notifications = %v", got)
	}

	// Terminal sessions swallow every further event exactly once each.
	if _, err := s.Select(owner, CategoryContent); !errors.Is(err, ErrFinished) {
		t.Errorf("Select err = %v, want ErrFinished", err)
	}
	if err := s.Cancel(owner); !errors.Is(err, ErrFinished) {
		t.Errorf("second Cancel err = %v, want ErrFinished", err)
	}
	if got := n.finishedStates(); len(got) != 1 {
		t.Errorf("Finished fired %d times, want exactly once", len(got))
	}
}

func TestDismissEditor(t *testing.T) {
	s, _ := newTestSession(t)

	f, _ := s.Select(owner, CategoryContent)
	if err := s.DismissEditor(owner); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state = %v, want open", s.State())
	}
	if err := s.Submit(owner, CategoryContent, f.Seq, map[string]string{"title": "late"}); !errors.Is(err, ErrStaleEditor) {
		t.Errorf("err = %v, want ErrStaleEditor", err)
	}
}

func TestInactivityTimeout(t *testing.T) {
	n := newFakeNotifier()
	s := NewSession(owner, nil, false, 20*time.Millisecond, n)
	NewManager().Bind("chan-1", "msg-1", s)

	select {
	case final := <-n.done:
		if final != StateTimedOut {
			t.Fatalf("final = %v, want timed-out", final)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout never fired")
	}
	if s.State() != StateTimedOut {
		t.Fatalf("state = %v, want timed-out", s.State())
	}
	if _, err := s.Select(owner, CategoryContent); !errors.Is(err, ErrFinished) {
		t.Errorf("post-timeout Select err = %v, want ErrFinished", err)
	}
}

func TestSeededDraftRoundTrip(t *testing.T) {
	seed := &embed.Draft{Title: "Existing", Description: "Posted earlier", Color: 0x5865f2}
	n := newFakeNotifier()
	s := NewSession(owner, seed.Clone(), true, time.Minute, n)
	NewManager().Bind("chan-1", "msg-1", s)

	final, err := s.Save(owner)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(final, seed) {
		t.Errorf("saved draft = %+v, want the seed unchanged", final)
	}
}

func TestPanelSummary(t *testing.T) {
	seed := &embed.Draft{
		Title:  "Rules",
		Color:  0xff8800,
		Fields: []embed.Field{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
	}
	n := newFakeNotifier()
	s := NewSession(owner, seed, false, time.Minute, n)

	p := s.Panel()
	if p.State != StateOpen || p.OwnerID != owner {
		t.Fatalf("panel = %+v", p)
	}
	if p.FieldCount != 2 {
		t.Errorf("field count = %d", p.FieldCount)
	}
	if p.Length != seed.Length() {
		t.Errorf("length = %d, want %d", p.Length, seed.Length())
	}

	rows := map[string]string{}
	for _, r := range p.Summary {
		rows[r.Name] = r.Value
	}
	if rows["Title"] != "Rules" {
		t.Errorf("title row = %q", rows["Title"])
	}
	if rows["Color"] != "#ff8800" {
		t.Errorf("color row = %q", rows["Color"])
	}
	if rows["Description"] != "*not set*" {
		t.Errorf("unset row = %q", rows["Description"])
	}
}
