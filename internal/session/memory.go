package session

import (
	"context"
	"sync"

	"github.com/Rrens/shopchat/internal/domain"
)

type state struct {
	mode  string
	turns []Turn
}

// MemoryStore keeps sessions in process memory for the lifetime of the
// process. It suits a single instance deployment.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*state
	limit       int
	defaultMode string
}

// NewMemoryStore creates a store remembering limit turns per session.
// Zero values select DefaultMemoryLimit and DefaultMode.
func NewMemoryStore(limit int, defaultMode string) *MemoryStore {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	if defaultMode == "" {
		defaultMode = DefaultMode
	}
	return &MemoryStore{
		sessions:    make(map[string]*state),
		limit:       limit,
		defaultMode: defaultMode,
	}
}

// must be called with mu held
func (s *MemoryStore) get(id string) *state {
	st, ok := s.sessions[id]
	if !ok {
		st = &state{mode: s.defaultMode}
		s.sessions[id] = st
	}
	return st
}

func (s *MemoryStore) AppendTurn(_ context.Context, id string, role domain.MessageRole, content string) error {
	if id == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(id)
	st.turns = append(st.turns, Turn{Role: role, Content: content})
	if len(st.turns) > s.limit {
		trimmed := make([]Turn, s.limit)
		copy(trimmed, st.turns[len(st.turns)-s.limit:])
		st.turns = trimmed
	}
	return nil
}

func (s *MemoryStore) SetMode(_ context.Context, id, mode string) error {
	if id == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(id).mode = mode
	return nil
}

// Turns returns a copy of the remembered turns, oldest first
func (s *MemoryStore) Turns(_ context.Context, id string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return []Turn{}, nil
	}
	cpy := make([]Turn, len(st.turns))
	copy(cpy, st.turns)
	return cpy, nil
}

func (s *MemoryStore) Mode(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.sessions[id]; ok && st.mode != "" {
		return st.mode, nil
	}
	return s.defaultMode, nil
}

// Len returns the number of known sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
