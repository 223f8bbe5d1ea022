// internal/collect/session.go
package collect

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgpilot/orgpilot/internal/core"
)

// ConversationState is the transient state of one collection session. It is
// owned by that session alone and discarded when collection finishes or the
// session expires.
type ConversationState struct {
	ID        string                    `json:"id"`
	UserID    string                    `json:"userId"`
	DataType  core.DataType             `json:"dataType"`
	Collected map[core.DataType]any     `json:"collectedData"`
	Attempts  int                       `json:"attempts"`
	Complete  bool                      `json:"complete"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// SessionStore manages conversation state with TTL expiry and bounded size.
type SessionStore struct {
	sessions map[string]*ConversationState
	order    []string // insertion order for eviction
	maxSize  int
	ttl      time.Duration
	mu       sync.RWMutex
}

// NewSessionStore creates a session store.
func NewSessionStore(maxSize int, ttl time.Duration) *SessionStore {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]*ConversationState),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
	}
}

// Create starts a new session for the user.
func (s *SessionStore) Create(userID string, dataType core.DataType) *ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	state := &ConversationState{
		ID:        uuid.NewString(),
		UserID:    userID,
		DataType:  dataType,
		Collected: make(map[core.DataType]any),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Evict oldest if at capacity
	if len(s.sessions) >= s.maxSize && len(s.order) > 0 {
		oldest := s.order[0]
		delete(s.sessions, oldest)
		s.order = s.order[1:]
	}

	s.sessions[state.ID] = state
	s.order = append(s.order, state.ID)
	return state
}

// Get returns a copy of the session, or ErrSessionNotFound when it is absent
// or expired.
func (s *SessionStore) Get(id string) (*ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok || time.Since(state.UpdatedAt) > s.ttl {
		return nil, core.ErrSessionNotFound
	}

	cp := *state
	cp.Collected = make(map[core.DataType]any, len(state.Collected))
	for k, v := range state.Collected {
		cp.Collected[k] = v
	}
	return &cp, nil
}

// Update mutates a session under the store lock.
func (s *SessionStore) Update(id string, fn func(*ConversationState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return core.ErrSessionNotFound
	}
	fn(state)
	state.UpdatedAt = time.Now()
	return nil
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
