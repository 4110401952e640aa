// Package store provides a generic in-memory entity store with a
// create/read/update/delete contract.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotFound is returned when an operation targets an identifier the store
// does not hold.
var ErrNotFound = errors.New("entity not found")

// Identifiable is satisfied by entities carrying a unique comparable id.
type Identifiable[K comparable] interface {
	EntityID() K
}

// BuildFunc turns a creation payload into a new entity using a freshly
// allocated id.
type BuildFunc[K comparable, T any, C any] func(id K, data C) T

// ApplyFunc merges a partial payload into an existing entity.
type ApplyFunc[T any, U any] func(existing T, data U) T

// Repository is the CRUD contract exposed by Store.
type Repository[K comparable, T Identifiable[K], C any, U any] interface {
	Create(data C) T
	Get(id K) (T, bool)
	List() []T
	Update(id K, data U) (T, error)
	Delete(id K)
}

// Store keeps entities keyed by id in insertion order.
type Store[K comparable, T Identifiable[K], C any, U any] struct {
	mu    sync.RWMutex
	m     map[K]T
	order []K

	nextID func() K
	build  BuildFunc[K, T, C]
	apply  ApplyFunc[T, U]
}

// New creates a Store. nextID allocates identifiers and must never repeat a
// value; build and apply are the caller's construction and update functions.
func New[K comparable, T Identifiable[K], C any, U any](nextID func() K, build BuildFunc[K, T, C], apply ApplyFunc[T, U]) *Store[K, T, C, U] {
	return &Store[K, T, C, U]{
		m:      make(map[K]T),
		nextID: nextID,
		build:  build,
		apply:  apply,
	}
}

// Create builds a new entity from data, stores it and returns it.
func (s *Store[K, T, C, U]) Create(data C) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.build(s.nextID(), data)
	id := e.EntityID()
	if _, ok := s.m[id]; !ok {
		s.order = append(s.order, id)
	}
	s.m[id] = e
	return e
}

// Get returns the entity stored under id. ok is false when there is none.
func (s *Store[K, T, C, U]) Get(id K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[id]
	return e, ok
}

// List returns all entities in insertion order.
func (s *Store[K, T, C, U]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out
}

// Update applies data to the entity stored under id and replaces it.
func (s *Store[K, T, C, U]) Update(id K, data U) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.m[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("id %v: %w", id, ErrNotFound)
	}
	updated := s.apply(existing, data)
	s.m[id] = updated
	return updated, nil
}

// Delete removes the entity stored under id. Missing ids are ignored.
func (s *Store[K, T, C, U]) Delete(id K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return
	}
	delete(s.m, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Len reports how many entities are stored.
func (s *Store[K, T, C, U]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
