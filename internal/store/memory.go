package store

import (
	"context"
	"encoding/json"
	"sync"

	"diagbot/internal/model"
)

// MemoryStore implements Store with an in-process map. Used in tests and
// when no Redis address is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64][]byte
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64][]byte)}
}

// Get returns a deep copy of the stored session, or nil when absent.
// Sessions round-trip through JSON so the memory driver behaves exactly
// like the Redis one.
func (m *MemoryStore) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[chatID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Put stores the session.
func (m *MemoryStore) Put(ctx context.Context, chatID int64, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sessions[chatID] = data
	m.mu.Unlock()
	return nil
}

// Delete removes the session. Deleting a missing session is a no-op.
func (m *MemoryStore) Delete(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	delete(m.sessions, chatID)
	m.mu.Unlock()
	return nil
}
