package testsupport

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler queues callbacks until Advance moves its clock past their
// deadline. It satisfies the scheduler interfaces used across the module.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []scheduled
	seq     int
}

type scheduled struct {
	at  time.Duration
	seq int
	fn  func()
}

// AfterFunc queues fn to run once d has elapsed.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pending = append(s.pending, scheduled{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d and runs every due callback in
// deadline order. Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d
	var due, rest []scheduled
	for _, entry := range s.pending {
		if entry.at <= s.now {
			due = append(due, entry)
		} else {
			rest = append(rest, entry)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	for _, entry := range due {
		entry.fn()
	}
	return len(due)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FixedClock returns a clock function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
