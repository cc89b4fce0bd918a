package repository

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when no entity exists under the requested id.
var ErrNotFound = errors.New("entity not found")

// store is a generic keyed in-memory collection. It preserves insertion
// order for listing and serializes access with a mutex so concurrent flows
// degrade to explicit last-write-wins instead of racing on the map.
type store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[string]T)}
}

func (s *store[T]) findByID(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

func (s *store[T]) findAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *store[T]) findBy(predicate func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		if item := s.items[id]; predicate(item) {
			out = append(out, item)
		}
	}
	return out
}

// save upserts by id. New ids go to the back of the iteration order;
// existing ids keep their slot (last-write-wins).
func (s *store[T]) save(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

// delete removes the entity if present. Absent ids are a no-op, not an error.
func (s *store[T]) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
