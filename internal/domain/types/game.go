package types

import (
	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/scoring"
)

// GuessSubmission is one player's answer for one round of today's game.
type GuessSubmission struct {
	Player      string `json:"player"`
	Round       int    `json:"round"`
	Team        string `json:"team"`
	Year        int    `json:"year"`
	Scorer      string `json:"scorer"`
	TimeTakenMs int64  `json:"timeTakenMs"`
}

// Reveal is the answer shown once a round has been played.
type Reveal struct {
	Team         string `json:"team"`
	Year         int    `json:"year"`
	Scorer       string `json:"scorer"`
	Competition  string `json:"competition"`
	Opponent     string `json:"opponent"`
	MatchContext string `json:"matchContext,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
}

// RevealOf picks the public fields of goal metadata.
func RevealOf(m animation.Metadata) Reveal {
	return Reveal{
		Team:         m.Team,
		Year:         m.Year,
		Scorer:       m.Scorer,
		Competition:  m.Competition,
		Opponent:     m.Opponent,
		MatchContext: m.MatchContext,
		VideoURL:     m.VideoURL,
	}
}

// GuessOutcome is the scored reply to a guess.
type GuessOutcome struct {
	Date   string         `json:"date"`
	Round  int            `json:"round"`
	GoalID string         `json:"goalId"`
	Result scoring.Result `json:"result"`
	Answer Reveal         `json:"answer"`
}

// DailyRound is one round of the daily game. Answer and Result are only
// filled in after the player has played it.
type DailyRound struct {
	Round     int                  `json:"round"`
	GoalID    string               `json:"goalId"`
	Animation *animation.Animation `json:"animation"`
	Played    bool                 `json:"played"`
	Result    *scoring.Result      `json:"result,omitempty"`
	Answer    *Reveal              `json:"answer,omitempty"`
}

// DailyView is the daily game as seen by one player.
type DailyView struct {
	Date        string       `json:"date"`
	Rounds      []DailyRound `json:"rounds"`
	TotalPoints int          `json:"totalPoints"`
}

// Stats is a snapshot of service state for monitoring.
type Stats struct {
	Started       bool           `json:"started"`
	Today         string         `json:"today"`
	Workers       int            `json:"workers"`
	QueueLength   int            `json:"queueLength"`
	QueueCapacity int            `json:"queueCapacity"`
	DedupeSize    int64          `json:"dedupeSize"`
	Players       int            `json:"players"`
	TotalPoints   int64          `json:"totalPoints"`
	Guesses       int            `json:"guesses"`
	Goals         map[string]int `json:"goals"`
}

// GoalDocument is an animation with the metadata of the goal it shows, as
// submitted by authors and read by the validate command.
type GoalDocument struct {
	Metadata  animation.Metadata   `json:"metadata"`
	Animation *animation.Animation `json:"animation"`
}
