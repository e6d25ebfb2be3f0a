// Package session provides the in-memory validation session store. Sessions
// vanish on process restart; callers treat them as short-lived scratch state.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gstflow/internal/domain"
)

// MemoryStore keeps sessions in a map guarded by one RWMutex. Update runs
// its mutator under the write lock, so concurrent calls against the same
// session serialize instead of racing.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.ValidationSession
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*domain.ValidationSession)}
}

// Create registers a new session under its own ID.
func (s *MemoryStore) Create(_ context.Context, session *domain.ValidationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Get returns the session for id, or ErrSessionNotFound.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.ValidationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Update applies fn to the session under the write lock.
func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fn func(*domain.ValidationSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	return fn(session)
}

// Delete removes the session; deleting an unknown id reports
// ErrSessionNotFound.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
