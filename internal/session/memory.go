package session

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	retention int
	mu        sync.RWMutex
	sessions  map[string][]Exchange
}

// NewMemoryStore creates an in-memory store keeping the last retention
// exchanges per session. A non-positive retention uses DefaultRetention.
func NewMemoryStore(retention int) *MemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{
		retention: retention,
		sessions:  make(map[string][]Exchange),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]Exchange, error) {
	s.mu.RLock()
	history, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		if _, ok := s.sessions[sessionID]; !ok {
			s.sessions[sessionID] = []Exchange{}
		}
		s.mu.Unlock()
		return []Exchange{}, nil
	}

	copied := make([]Exchange, len(history))
	copy(copied, history)
	return copied, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, ex Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], ex)
	if len(history) > s.retention {
		trimmed := make([]Exchange, s.retention)
		copy(trimmed, history[len(history)-s.retention:])
		history = trimmed
	}
	s.sessions[sessionID] = history
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are currently tracked.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
