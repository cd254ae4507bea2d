// Package model contains domain records passed between layers.
package model

import (
	"time"

	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/scoring"
)

// GoalStatus is where a goal is in the review workflow.
type GoalStatus string

const (
	StatusPending  GoalStatus = "pending"
	StatusApproved GoalStatus = "approved"
	StatusRejected GoalStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s GoalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Goal is a stored goal: the answer, its context and the animation shown
// to players. Only approved goals are scheduled.
type Goal struct {
	ID        string               `json:"id"`
	Metadata  animation.Metadata   `json:"metadata"`
	Status    GoalStatus           `json:"status"`
	Animation *animation.Animation `json:"animation"`
	CreatedAt time.Time            `json:"createdAt"`
}

// Answer is the part of the goal a guess is scored against.
func (g Goal) Answer() scoring.Answer {
	return scoring.Answer{Team: g.Metadata.Team, Year: g.Metadata.Year, Scorer: g.Metadata.Scorer}
}

// DailyGame is the set of goals played on one calendar date, in round order.
type DailyGame struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD in the configured timezone
	GoalIDs   []string  `json:"goalIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rounds is the number of rounds in the game.
func (d DailyGame) Rounds() int {
	return len(d.GoalIDs)
}

// GoalFor returns the goal id of a 1-based round.
func (d DailyGame) GoalFor(round int) (string, bool) {
	if round < 1 || round > len(d.GoalIDs) {
		return "", false
	}
	return d.GoalIDs[round-1], true
}
