package repositories

import "errors"

// Sentinel errors shared by all repository implementations so handlers can
// branch with errors.Is instead of matching driver-specific failures.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("record already exists")
	// ErrInvalidID means the supplied identifier is not a well-formed
	// entity reference.
	ErrInvalidID = errors.New("invalid identifier")
)
