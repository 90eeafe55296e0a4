package builder

import (
	"testing"
	"time"
)

func TestManagerBindGetRemove(t *testing.T) {
	m := NewManager()
	n := newFakeNotifier()
	s := NewSession(owner, nil, false, time.Minute, n)

	if _, ok := m.Get("msg-1"); ok {
		t.Fatal("unbound message should have no session")
	}

	m.Bind("chan-1", "msg-1", s)
	if s.MessageID() != "msg-1" {
		t.Errorf("messageID = %q", s.MessageID())
	}
	got, ok := m.Get("msg-1")
	if !ok || got != s {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}

	m.Remove("msg-1")
	if _, ok := m.Get("msg-1"); ok {
		t.Error("removed session still retrievable")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d after remove", m.Len())
	}
}

func TestManagerIndependentSessions(t *testing.T) {
	m := NewManager()
	a := NewSession("user-a", nil, false, time.Minute, newFakeNotifier())
	b := NewSession("user-b", nil, false, time.Minute, newFakeNotifier())
	m.Bind("chan-1", "msg-a", a)
	m.Bind("chan-1", "msg-b", b)

	if err := a.Cancel("user-a"); err != nil {
		t.Fatal(err)
	}
	if b.State() != StateOpen {
		t.Errorf("cancelling one session touched another: %v", b.State())
	}
}
