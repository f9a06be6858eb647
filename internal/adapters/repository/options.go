package repository

import "github.com/okian/gavel/internal/domain/model"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithSeed preloads the store with module metrics.
func WithSeed(seed map[string]model.ModuleMetrics) Option {
	return func(s *InMemoryStore) {
		for moduleID, m := range seed {
			if moduleID != "" {
				s.modules[moduleID] = m
			}
		}
	}
}
