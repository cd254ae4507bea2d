// Package scoring turns one round's guess into points: ten per correct field,
// five for a year off by one, and a speed bonus scaled by correctness.
package scoring

import (
	"math"

	"github.com/okian/goalguessr/internal/domain/match"
)

// Point values for a single round.
const (
	FieldPoints     = 10
	YearClosePoints = 5
	MaxSpeedBonus   = 10
	MaxRoundPoints  = 3*FieldPoints + MaxSpeedBonus
)

// Speed bonus window in milliseconds. Full bonus up to FullBonusMs, none
// from NoBonusMs on, linear in between.
const (
	FullBonusMs = 60_000
	NoBonusMs   = 120_000
)

const fieldCount = 3

// Guess is what a player submitted for one round.
type Guess struct {
	Team        string `json:"team"`
	Year        int    `json:"year"`
	Scorer      string `json:"scorer"`
	TimeTakenMs int64  `json:"timeTakenMs"`
}

// Answer is the stored truth for a goal.
type Answer struct {
	Team   string `json:"team"`
	Year   int    `json:"year"`
	Scorer string `json:"scorer"`
}

// Result is the scored outcome of a guess. TotalPoints is the sum of the
// four point fields.
type Result struct {
	TeamCorrect   bool `json:"teamCorrect"`
	YearCorrect   bool `json:"yearCorrect"`
	YearClose     bool `json:"yearClose"`
	ScorerCorrect bool `json:"scorerCorrect"`
	TeamPoints    int  `json:"teamPoints"`
	YearPoints    int  `json:"yearPoints"`
	ScorerPoints  int  `json:"scorerPoints"`
	SpeedBonus    int  `json:"speedBonus"`
	TotalPoints   int  `json:"totalPoints"`

	// TimeTakenMs is the answer time the speed bonus was computed from.
	TimeTakenMs int64 `json:"timeTakenMs"`

	// Match tiers are reported for metrics and are not part of the wire result.
	TeamTier   match.Tier `json:"-"`
	ScorerTier match.Tier `json:"-"`
}

// Matcher decides team and scorer equivalence.
type Matcher interface {
	Team(guess, correct string) match.Decision
	Player(guess, correct string) match.Decision
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMatcher sets the matcher used for team and scorer comparison.
func WithMatcher(m Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// Engine scores guesses. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	matcher Matcher
}

// NewEngine creates an Engine, defaulting to the built-in alias tables.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = match.New()
	}
	return e
}

// Score computes the result of guess against answer.
func (e *Engine) Score(guess Guess, answer Answer) Result {
	team := e.matcher.Team(guess.Team, answer.Team)
	scorer := e.matcher.Player(guess.Scorer, answer.Scorer)

	r := Result{
		TeamCorrect:   team.Matched,
		ScorerCorrect: scorer.Matched,
		YearCorrect:   guess.Year == answer.Year,
		TeamTier:      team.Tier,
		ScorerTier:    scorer.Tier,
		TimeTakenMs:   guess.TimeTakenMs,
	}
	r.YearClose = !r.YearCorrect && abs(guess.Year-answer.Year) == 1

	var correct float64
	if r.TeamCorrect {
		r.TeamPoints = FieldPoints
		correct++
	}
	switch {
	case r.YearCorrect:
		r.YearPoints = FieldPoints
		correct++
	case r.YearClose:
		r.YearPoints = YearClosePoints
		correct += 0.5
	}
	if r.ScorerCorrect {
		r.ScorerPoints = FieldPoints
		correct++
	}

	r.SpeedBonus = SpeedBonus(guess.TimeTakenMs, correct)
	r.TotalPoints = r.TeamPoints + r.YearPoints + r.ScorerPoints + r.SpeedBonus
	return r
}

// BaseSpeedBonus is the unscaled bonus for answering in ms milliseconds.
func BaseSpeedBonus(ms int64) int {
	switch {
	case ms <= FullBonusMs:
		return MaxSpeedBonus
	case ms >= NoBonusMs:
		return 0
	}
	frac := float64(ms-FullBonusMs) / float64(NoBonusMs-FullBonusMs)
	return int(math.Round(MaxSpeedBonus * (1 - frac)))
}

// SpeedBonus scales the base bonus by correctCount/3. An all-wrong guess
// earns nothing regardless of speed.
func SpeedBonus(ms int64, correctCount float64) int {
	if correctCount <= 0 {
		return 0
	}
	return int(math.Round(float64(BaseSpeedBonus(ms)) * correctCount / fieldCount))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
