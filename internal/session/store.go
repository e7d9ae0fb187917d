package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ratedash/pkg/contracts/domain"
)

// Session is one user's dashboard state: the four filter selection sets.
// Selections persist across requests until explicitly reset. A Session is
// safe for concurrent use, though the interaction model is one synchronous
// request at a time.
type Session struct {
	ID string

	mu        sync.Mutex
	selection domain.Selection
}

// Selection returns a copy of the current filter selection.
func (s *Session) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SetSelection replaces the filter selection.
func (s *Session) SetSelection(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// Reset clears all four selection sets.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = domain.Selection{}
}

// Store keeps the live sessions keyed by uuid. Sessions are created lazily
// and never shared: every browser tab that presents no (or an unknown) id
// gets a fresh one, so no selection state leaks between users.
type Store struct {
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, or a new session when id is empty
// or unknown. The second return reports whether a new session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if id != "" {
		if s, ok := st.sessions[id]; ok {
			return s, false
		}
	}

	s := &Session{ID: uuid.New().String()}
	st.sessions[s.ID] = s
	st.logger.Debug("session created", slog.String("session_id", s.ID))
	return s, true
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
