package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound      = errors.New("player not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrInvalidPoints = errors.New("points must not be negative")
	ErrInvalidPlayer = errors.New("player must not be empty")
)
