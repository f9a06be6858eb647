// Package repository defines the module metrics registry and errors.
package repository

import (
	"context"

	"github.com/okian/gavel/internal/domain/model"
)

// Source resolves the quality metrics of a module. This is the lookup
// the rule engine's inputs come from: an unresolvable module rejects
// the proposal before any rule runs.
type Source interface {
	// Resolve returns the metrics for moduleID.
	// Returns ErrModuleNotFound if the module is unknown.
	Resolve(ctx context.Context, moduleID string) (model.ModuleMetrics, error)
}

// Store is a writable registry of module metrics, maintained by the
// intake/operations side.
type Store interface {
	Source

	// Put inserts or replaces the metrics for a module.
	Put(ctx context.Context, moduleID string, m model.ModuleMetrics) error

	// Remove deletes a module's metrics.
	// Returns ErrModuleNotFound if the module is unknown.
	Remove(ctx context.Context, moduleID string) error

	// Count returns the number of registered modules.
	Count(ctx context.Context) int
}
