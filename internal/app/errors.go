package service

import "errors"

// Sentinel kinds returned by the service. The HTTP layer maps them to
// status codes.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrInvalidGuess   = errors.New("invalid guess")
	ErrDuplicateGuess = errors.New("round already played")
	ErrNoGoals        = errors.New("no approved goals to schedule")
	ErrGoalNotFound   = errors.New("goal not found")
	ErrInvalidGoal    = errors.New("goal failed validation")
	ErrPlayerNotFound = errors.New("player not found")
)
