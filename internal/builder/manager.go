package builder

import "sync"

// Manager tracks live sessions by their panel message ID. Sessions for
// different users are fully independent; the per-session mutex serializes
// interactions within one session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Bind registers a session under its freshly sent panel message and arms its
// inactivity timer. A session receives no events until it is bound.
func (m *Manager) Bind(channelID, messageID string, s *Session) {
	s.bind(channelID, messageID)
	m.mu.Lock()
	m.sessions[messageID] = s
	m.mu.Unlock()
}

// Get looks up the session owning a panel message.
func (m *Manager) Get(messageID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[messageID]
	return s, ok
}

// Remove drops a finished session. Late events for the message simply find
// no session and are ignored.
func (m *Manager) Remove(messageID string) {
	m.mu.Lock()
	delete(m.sessions, messageID)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
