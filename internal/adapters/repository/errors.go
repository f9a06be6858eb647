package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrModuleNotFound  = errors.New("module not found")
	ErrInvalidModuleID = errors.New("invalid module id")
)
