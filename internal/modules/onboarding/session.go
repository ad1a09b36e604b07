package onboarding

import "sync"

// SessionStore keeps one wizard per user in memory. Progress is lost on
// restart; a chef who already went live is recognised from the stored profile.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Wizard
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Wizard)}
}

func (s *SessionStore) GetOrCreate(userID string, create func() *Wizard) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.sessions[userID]; ok {
		return w
	}
	w := create()
	s.sessions[userID] = w
	return w
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
