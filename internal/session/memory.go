package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	id      Identity
	expires time.Time
}

// MemoryStore keeps sessions in a process-local map guarded by a mutex.
// Entries are checked for expiry on resolve and lazily evicted; there is no
// background sweeper because the map only ever holds one entry per live
// browser session.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore returns an empty in-memory session store with the given
// sliding TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl}
}

// Create allocates a token and stores the identity under it.
func (s *MemoryStore) Create(_ context.Context, id Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.entries[token] = memoryEntry{id: id, expires: clock().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Resolve looks up a token, evicting it if expired and otherwise pushing
// its expiry forward by the sliding TTL.
func (s *MemoryStore) Resolve(_ context.Context, token string) (Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return Identity{}, false, nil
	}
	now := clock()
	if now.After(e.expires) {
		delete(s.entries, token)
		return Identity{}, false, nil
	}
	e.expires = now.Add(s.ttl)
	s.entries[token] = e
	return e.id, true, nil
}

// Destroy removes the token.  Removing an absent token is a no-op.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}
