package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps events per address. Suitable for single-process hosts
// and tests; swap in a durable store behind the same interface for anything
// that must survive restarts.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Address] = append(s.events[event.Address], event)
	return nil
}

func (s *InMemoryStore) ListByAddress(_ context.Context, address string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[address]...), nil
}
