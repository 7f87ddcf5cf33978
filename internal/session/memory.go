package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	user      User
	expiresAt time.Time
}

// MemoryStore - сессии в памяти процесса. Теряются при рестарте.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrNotFound
	}
	user := entry.user
	return &user, nil
}

func (s *MemoryStore) Bind(_ context.Context, id string, user User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{user: user, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Touch(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		return ErrNotFound
	}
	entry.expiresAt = s.now().Add(ttl)
	s.sessions[id] = entry
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len - количество сессий (включая еще не вычищенные истекшие)
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
