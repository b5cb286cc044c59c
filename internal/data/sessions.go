package data

import (
	"container/heap"
	"sync"
	"time"
)

// SessionTracker counts the distinct sessions seen within a sliding time window. Sessions are kept
// in a min heap keyed by the time they were last seen, so that expired sessions are evicted from
// the top of the heap.
type SessionTracker struct {
	window   time.Duration
	store    *PriorityQueue
	sessions map[string]*Item
	mutex    sync.Mutex
}

// NewSessionTracker creates a tracker counting sessions seen within the specified window.
func NewSessionTracker(window time.Duration) *SessionTracker {
	store := make(PriorityQueue, 0)
	heap.Init(&store)

	return &SessionTracker{
		window:   window,
		store:    &store,
		sessions: make(map[string]*Item),
	}
}

// Touch records that the session was seen at the specified time. An empty id is ignored.
func (s *SessionTracker) Touch(id string, now time.Time) {
	if id == "" {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if item, ok := s.sessions[id]; ok {
		if now.UnixNano() > item.priority {
			s.store.update(item, now.UnixNano())
		}

		return
	}

	item := &Item{value: id, priority: now.UnixNano()}
	heap.Push(s.store, item)
	s.sessions[id] = item
}

// Count evicts sessions last seen before the window preceding now, and returns the number of
// sessions that remain.
func (s *SessionTracker) Count(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := now.Add(-s.window).UnixNano()

	for s.store.Len() > 0 && s.store.peek().priority < cutoff {
		item := heap.Pop(s.store).(*Item)
		delete(s.sessions, item.value)
	}

	return s.store.Len()
}
