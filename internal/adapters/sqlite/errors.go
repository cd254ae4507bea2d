package sqlite

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("guess already recorded for this round")
	ErrInvalid   = errors.New("invalid record")
)
