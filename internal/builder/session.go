// Package builder implements the interactive embed builder session: a state
// machine that assembles an embed draft across independent button and modal
// interactions until the owner saves, cancels, or the session times out.
package builder

import (
	"errors"
	"sync"
	"time"

	"embed-manager/internal/embed"
)

// State of a builder session.
type State int

const (
	// StateOpen awaits a category selection or a save/cancel action.
	StateOpen State = iota
	// StateAwaitingSubmission means a field editor is open for the owner.
	StateAwaitingSubmission
	StateSaved
	StateCancelled
	StateTimedOut
)

var stateNames = map[State]string{
	StateOpen:               "open",
	StateAwaitingSubmission: "awaiting-submission",
	StateSaved:              "saved",
	StateCancelled:          "cancelled",
	StateTimedOut:           "timed-out",
}

func (s State) String() string { return stateNames[s] }

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateSaved || s == StateCancelled || s == StateTimedOut
}

var (
	// ErrNotOwner rejects interactions from anyone but the initiating user.
	// Such rejections never alter the state, the draft or the deadline.
	ErrNotOwner = errors.New("only the user who opened the panel can use it")
	// ErrFinished marks events against a terminal session; callers treat it
	// as a silent no-op.
	ErrFinished = errors.New("session already finished")
	// ErrStaleEditor rejects a submission from an editor that was implicitly
	// discarded by a later category selection or save/cancel.
	ErrStaleEditor = errors.New("this editor is no longer active, reopen it from the panel")
	// ErrEmptyDraft rejects saving a draft with nothing to render.
	ErrEmptyDraft = errors.New("the embed is empty, set at least one value before saving")
)

// Notifier receives panel updates from a session. PanelChanged fires after
// every state-preserving transition that altered what the panel should show;
// Finished fires exactly once, on the terminal transition, and must leave the
// outstanding UI disabled so late interactions are inert.
type Notifier interface {
	PanelChanged(p *Panel)
	Finished(p *Panel, final State)
}

// Session binds one draft, one initiating user, one panel message and an
// inactivity deadline. Every accepted owner interaction resets the deadline;
// there is no hard cap. All event methods serialize on an internal mutex, so
// concurrently delivered interactions are handled one at a time.
type Session struct {
	mu sync.Mutex

	ownerID   string
	channelID string
	messageID string
	editing   bool

	draft *embed.Draft
	state State

	pending    Category
	hasPending bool
	editorSeq  int

	timeout  time.Duration
	timer    *time.Timer
	notifier Notifier
}

// NewSession creates a session owned by ownerID around the given draft. The
// inactivity timer starts when the session is bound to its panel message.
// Editing marks sessions seeded from an existing rendered embed; behavior is
// identical, only the panel titles differ.
func NewSession(ownerID string, draft *embed.Draft, editing bool, timeout time.Duration, n Notifier) *Session {
	if draft == nil {
		draft = embed.NewDraft()
	}
	return &Session{
		ownerID:  ownerID,
		editing:  editing,
		draft:    draft,
		state:    StateOpen,
		timeout:  timeout,
		notifier: n,
	}
}

// bind attaches the session to its rendered panel message and arms the
// inactivity timer. Called by the Manager.
func (s *Session) bind(channelID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelID = channelID
	s.messageID = messageID
	s.timer = time.AfterFunc(s.timeout, s.expire)
}

// OwnerID returns the initiating user.
func (s *Session) OwnerID() string { return s.ownerID }

// MessageID returns the panel message the session is bound to.
func (s *Session) MessageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageID
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() *embed.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Panel returns the current panel rendering data.
func (s *Session) Panel() *Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelLocked()
}

// Select opens the editor for a category, pre-filled from the current draft,
// and moves the session to StateAwaitingSubmission. Selecting a category
// while another editor is pending implicitly discards the pending one
// without touching the draft.
func (s *Session) Select(userID string, cat Category) (*Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateLocked(userID); err != nil {
		return nil, err
	}

	s.editorSeq++
	s.pending = cat
	s.hasPending = true
	s.state = StateAwaitingSubmission
	s.touchLocked()

	f := formFor(cat, s.draft)
	f.Seq = s.editorSeq
	return f, nil
}

// Submit applies an editor submission to the draft. A validation error
// leaves the draft unchanged and the editor pending, and is reported only to
// the submitter. On success the session returns to StateOpen and the panel
// is re-rendered.
func (s *Session) Submit(userID string, cat Category, seq int, values map[string]string) error {
	s.mu.Lock()

	if err := s.gateLocked(userID); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.hasPending || s.pending != cat || s.editorSeq != seq {
		s.mu.Unlock()
		return ErrStaleEditor
	}

	// Editors run on a clone so a rejection leaves the draft untouched.
	next := s.draft.Clone()
	if err := applyEditor(cat, next, values); err != nil {
		s.touchLocked()
		s.mu.Unlock()
		return err
	}

	s.draft = next
	s.hasPending = false
	s.state = StateOpen
	s.touchLocked()
	p := s.panelLocked()
	s.mu.Unlock()

	s.notifier.PanelChanged(p)
	return nil
}

// DismissEditor abandons the pending editor and returns to StateOpen with
// the draft unchanged.
func (s *Session) DismissEditor(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateLocked(userID); err != nil {
		return err
	}
	s.discardPendingLocked()
	s.touchLocked()
	return nil
}

// Save finishes the session and returns the final draft. Saving with an
// editor pending first discards it; saving an empty draft is rejected and
// the session stays open.
func (s *Session) Save(userID string) (*embed.Draft, error) {
	s.mu.Lock()

	if err := s.gateLocked(userID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.discardPendingLocked()
	if s.draft.IsEmpty() {
		s.touchLocked()
		s.mu.Unlock()
		return nil, ErrEmptyDraft
	}

	final := s.draft.Clone()
	p := s.finishLocked(StateSaved)
	s.mu.Unlock()

	s.notifier.Finished(p, StateSaved)
	return final, nil
}

// Cancel finishes the session without producing an embed.
func (s *Session) Cancel(userID string) error {
	s.mu.Lock()

	if err := s.gateLocked(userID); err != nil {
		s.mu.Unlock()
		return err
	}
	s.discardPendingLocked()
	p := s.finishLocked(StateCancelled)
	s.mu.Unlock()

	s.notifier.Finished(p, StateCancelled)
	return nil
}

// expire fires from the inactivity timer.
func (s *Session) expire() {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	s.discardPendingLocked()
	p := s.finishLocked(StateTimedOut)
	s.mu.Unlock()

	s.notifier.Finished(p, StateTimedOut)
}

// gateLocked enforces access control and the terminal no-op rule.
func (s *Session) gateLocked(userID string) error {
	if s.state.Terminal() {
		return ErrFinished
	}
	if userID != s.ownerID {
		return ErrNotOwner
	}
	return nil
}

func (s *Session) discardPendingLocked() {
	if s.hasPending {
		s.hasPending = false
		s.editorSeq++
		if !s.state.Terminal() {
			s.state = StateOpen
		}
	}
}

// touchLocked resets the inactivity deadline after an accepted owner
// interaction.
func (s *Session) touchLocked() {
	if s.timer != nil {
		s.timer.Reset(s.timeout)
	}
}

func (s *Session) finishLocked(final State) *Panel {
	s.state = final
	if s.timer != nil {
		s.timer.Stop()
	}
	return s.panelLocked()
}
