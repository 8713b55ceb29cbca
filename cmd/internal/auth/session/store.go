package session

import (
	"context"
	"sync"
	"time"
)

// Store answers whether a credential digest maps to a currently valid session.
//
// Implementations return (false, nil) when no valid record exists and a non-nil
// error only when the lookup itself failed. They must be safe for concurrent use
// and must not retry internally beyond what their client library does.
type Store interface {
	ValidateSession(ctx context.Context, tokenHash string) (bool, error)
}

// Pinger is implemented by stores that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Put registers a digest as valid until expiresAt. A zero expiresAt never expires.
func (s *MemoryStore) Put(tokenHash string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenHash] = expiresAt
}

// Delete removes a digest.
func (s *MemoryStore) Delete(tokenHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenHash)
}

// ValidateSession implements Store.
func (s *MemoryStore) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	exp, ok := s.entries[tokenHash]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !exp.IsZero() && !exp.After(s.now()) {
		return false, nil
	}
	return true, nil
}

// Ping implements Pinger.
func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }
