package store

import "sync"

// Locker serializes event handling per chat. Events for different chats may
// run concurrently; a new event for the same chat waits until the prior one
// has finished its collaborator calls.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocker creates an empty keyed-mutex set.
func NewLocker() *Locker {
	return &Locker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the per-chat mutex and returns its unlock function.
func (l *Locker) Lock(chatID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
