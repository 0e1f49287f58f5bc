package usecase

import (
	"sync"
	"time"
)

// visitorStore keeps one state value per visitor id. States guard their own fields.
type visitorStore[T any] struct {
	mu    sync.Mutex
	items map[string]*visitorEntry[T]
	newFn func() *T
	now   func() time.Time
}

type visitorEntry[T any] struct {
	state    *T
	lastSeen time.Time
}

func newVisitorStore[T any](newFn func() *T) *visitorStore[T] {
	return &visitorStore[T]{
		items: make(map[string]*visitorEntry[T]),
		newFn: newFn,
		now:   time.Now,
	}
}

// get returns the visitor's state, creating it on first use.
func (s *visitorStore[T]) get(sid string) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[sid]
	if !ok {
		e = &visitorEntry[T]{state: s.newFn()}
		s.items[sid] = e
	}
	e.lastSeen = s.now()
	return e.state
}

func (s *visitorStore[T]) drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sid)
}

// sweep forgets visitors not seen for idle and returns how many were removed.
func (s *visitorStore[T]) sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for sid, e := range s.items {
		if e.lastSeen.Before(cutoff) {
			delete(s.items, sid)
			removed++
		}
	}
	return removed
}

func (s *visitorStore[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
