package bot

import (
	"sync"
	"time"
)

// Scheduler runs delayed fire-and-forget follow-ups keyed by chat id.
// Scheduling again for the same chat replaces the pending timer. A session
// reset does not cancel a pending follow-up: the task captures only the
// chat id, never a live session reference.
type Scheduler struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[int64]*time.Timer)}
}

// Schedule runs fn after the delay, replacing any pending follow-up for
// the chat. fn runs on the timer goroutine and must not block the caller.
func (s *Scheduler) Schedule(chatID int64, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
	}
	s.timers[chatID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, chatID)
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops a pending follow-up for the chat, if any.
func (s *Scheduler) Cancel(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
		delete(s.timers, chatID)
	}
}

// Stop cancels every pending follow-up. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for chatID, t := range s.timers {
		t.Stop()
		delete(s.timers, chatID)
	}
}
