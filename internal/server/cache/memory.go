package cache

import (
	"context"
	"sync"
	"time"
)

type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryRevocationStore) MarkRevoked(_ context.Context, sessionID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, id)
		}
	}
	if !expiresAt.After(now) {
		expiresAt = now.Add(time.Hour)
	}
	s.revoked[sessionID] = expiresAt
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[sessionID]
	return ok && s.now().Before(exp), nil
}

type memoryLockout struct {
	state   LockoutState
	expires time.Time
}

type MemoryLockoutStore struct {
	mu      sync.Mutex
	entries map[string]memoryLockout
	now     func() time.Time
}

func NewMemoryLockoutStore() *MemoryLockoutStore {
	return &MemoryLockoutStore{entries: map[string]memoryLockout{}, now: time.Now}
}

func (s *MemoryLockoutStore) Get(_ context.Context, key string) (LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(key).state, nil
}

func (s *MemoryLockoutStore) RecordFailure(_ context.Context, key string, now time.Time, threshold int, window time.Duration) (LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	e := s.current(key)
	e.state.FailedCount++
	e.expires = s.now().Add(window)
	if e.state.FailedCount >= threshold {
		lockedUntil := now.Add(window).UTC()
		e.state.LockedUntil = &lockedUntil
	}
	s.entries[key] = e
	return e.state, nil
}

func (s *MemoryLockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// current returns the live entry for key, dropping it once expired.
func (s *MemoryLockoutStore) current(key string) memoryLockout {
	e, ok := s.entries[key]
	if !ok {
		return memoryLockout{}
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return memoryLockout{}
	}
	return e
}

func (s *MemoryLockoutStore) sweep() {
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
		}
	}
}
