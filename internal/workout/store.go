package workout

import "github.com/claude/trainlog/internal/models"

// Store is the ordered collection of committed sessions. Order is insertion
// order; date ordering is applied at aggregation time, not here.
type Store struct {
	sessions []models.Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a session to the end of the store.
func (s *Store) Append(sess models.Session) {
	s.sessions = append(s.sessions, sess)
}

// Delete removes the session with the given ID. It reports whether a
// session was removed.
func (s *Store) Delete(id string) bool {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the entire contents of the store.
func (s *Store) Replace(sessions []models.Session) {
	s.sessions = sessions
}

// Sessions returns a copy of the stored sessions in insertion order.
func (s *Store) Sessions() []models.Session {
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	return len(s.sessions)
}
