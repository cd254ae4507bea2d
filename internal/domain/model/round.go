package model

import (
	"time"

	"github.com/okian/goalguessr/internal/domain/scoring"
)

// RoundScored is one scored guess. It is stored, then queued so the
// leaderboard can add its points.
type RoundScored struct {
	ID     string
	Player string
	Date   string
	Round  int
	GoalID string
	Guess  scoring.Guess
	Result scoring.Result
	TS     time.Time
}

// Points is the round's contribution to the player's total.
func (r RoundScored) Points() int {
	return r.Result.TotalPoints
}

// PlayerTotal is a player's summed points used for ranking.
type PlayerTotal struct {
	Player string
	Points int
}
