// Package memory is an in-process persist.Gateway used for scratch sessions
// and tests.
package memory

import (
	"context"
	"sync"
)

// Store keeps values in a map. Failures can be injected per operation.
type Store struct {
	mu     sync.Mutex
	values map[string]string

	// GetErr and SetErr, when non-nil, are returned by every Get or Set.
	GetErr error
	SetErr error

	sets int
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewWith returns a store pre-populated with values.
func NewWith(values map[string]string) *Store {
	s := New()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Get implements persist.Gateway.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements persist.Gateway.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	s.sets++
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	delete(s.values, key)
	return nil
}

// Value returns the raw stored value for key.
func (s *Store) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Sets returns how many successful Set calls were made.
func (s *Store) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
