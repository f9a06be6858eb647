package repository

import (
	"context"
	"sync"

	"github.com/okian/gavel/internal/domain/model"
)

// InMemoryStore implements Store with a mutex-guarded map. Lookup is
// the whole contract; there is no ordering to maintain.
type InMemoryStore struct {
	mu      sync.RWMutex
	modules map[string]model.ModuleMetrics
}

// NewInMemoryStore creates a store, optionally seeded via options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		modules: make(map[string]model.ModuleMetrics),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve returns the metrics for moduleID.
func (s *InMemoryStore) Resolve(_ context.Context, moduleID string) (model.ModuleMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.modules[moduleID]
	if !ok {
		return model.ModuleMetrics{}, ErrModuleNotFound
	}
	return m, nil
}

// Put inserts or replaces the metrics for a module.
func (s *InMemoryStore) Put(_ context.Context, moduleID string, m model.ModuleMetrics) error {
	if moduleID == "" {
		return ErrInvalidModuleID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[moduleID] = m
	return nil
}

// Remove deletes a module's metrics.
func (s *InMemoryStore) Remove(_ context.Context, moduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.modules[moduleID]; !ok {
		return ErrModuleNotFound
	}
	delete(s.modules, moduleID)
	return nil
}

// Count returns the number of registered modules.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}
