package app

import "errors"

// Sentinel kinds for orchestrator errors.
var (
	// ErrInvalidBatch rejects a batch call before any processing.
	ErrInvalidBatch = errors.New("invalid batch: input list is empty")
)
