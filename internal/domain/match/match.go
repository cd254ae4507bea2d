// Package match decides whether a free-text guess names the correct team or
// player, trying cheap exact checks before alias tables and fuzzy scoring.
package match

import (
	"unicode/utf8"

	"github.com/okian/goalguessr/internal/domain/alias"
	"github.com/okian/goalguessr/internal/domain/similarity"
	"github.com/okian/goalguessr/internal/domain/textnorm"
)

// Thresholds tuned on real guesses. Changing them changes game difficulty.
const (
	// TeamSimilarityThreshold is the minimum similarity for a team typo to pass.
	TeamSimilarityThreshold = 0.85
	// PlayerSimilarityThreshold is looser: personal names vary more.
	PlayerSimilarityThreshold = 0.80
	// MinSurnameLength keeps short tokens such as "de" or "di" from
	// matching on surname alone.
	MinSurnameLength = 4
)

// Tier names the rule that decided a match.
type Tier string

const (
	TierExact   Tier = "exact"
	TierSurname Tier = "surname"
	TierAlias   Tier = "alias"
	TierFuzzy   Tier = "fuzzy"
	TierNone    Tier = "none"
)

// Decision is the outcome of comparing one guess to one correct answer.
// Similarity is only computed when the fuzzy tier was reached.
type Decision struct {
	Matched    bool
	Tier       Tier
	Similarity float64
}

// Evaluator compares guesses using immutable alias tables and is safe for
// concurrent use.
type Evaluator struct {
	teams   *alias.Table
	players *alias.Table
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithTeamAliases replaces the built-in team alias table.
func WithTeamAliases(t *alias.Table) Option {
	return func(e *Evaluator) {
		if t != nil {
			e.teams = t
		}
	}
}

// WithPlayerAliases replaces the built-in player alias table.
func WithPlayerAliases(t *alias.Table) Option {
	return func(e *Evaluator) {
		if t != nil {
			e.players = t
		}
	}
}

// New creates an Evaluator backed by the built-in alias tables unless
// options say otherwise.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.teams == nil {
		e.teams = alias.Teams()
	}
	if e.players == nil {
		e.players = alias.Players()
	}
	return e
}

// Team compares a team guess: exact, then alias, then similarity >= 0.85.
func (e *Evaluator) Team(guess, correct string) Decision {
	g, c := textnorm.Normalize(guess), textnorm.Normalize(correct)
	if g == c {
		return Decision{Matched: true, Tier: TierExact, Similarity: 1}
	}
	if e.teams.Resolve(g, c) {
		return Decision{Matched: true, Tier: TierAlias}
	}
	return fuzzy(g, c, TeamSimilarityThreshold)
}

// Player compares a scorer guess: exact, then surname, then alias, then
// similarity >= 0.80.
func (e *Evaluator) Player(guess, correct string) Decision {
	g, c := textnorm.Normalize(guess), textnorm.Normalize(correct)
	if g == c {
		return Decision{Matched: true, Tier: TierExact, Similarity: 1}
	}
	if surname := textnorm.LastWord(g); surname != "" &&
		surname == textnorm.LastWord(c) &&
		utf8.RuneCountInString(surname) >= MinSurnameLength {
		return Decision{Matched: true, Tier: TierSurname}
	}
	if e.players.Resolve(g, c) {
		return Decision{Matched: true, Tier: TierAlias}
	}
	return fuzzy(g, c, PlayerSimilarityThreshold)
}

// TeamsMatch reports whether guess names the correct team.
func (e *Evaluator) TeamsMatch(guess, correct string) bool {
	return e.Team(guess, correct).Matched
}

// PlayersMatch reports whether guess names the correct player.
func (e *Evaluator) PlayersMatch(guess, correct string) bool {
	return e.Player(guess, correct).Matched
}

func fuzzy(g, c string, threshold float64) Decision {
	s := similarity.Score(g, c)
	if s >= threshold {
		return Decision{Matched: true, Tier: TierFuzzy, Similarity: s}
	}
	return Decision{Matched: false, Tier: TierNone, Similarity: s}
}

var defaultEvaluator = New()

// TeamsMatch compares using the built-in alias tables.
func TeamsMatch(guess, correct string) bool {
	return defaultEvaluator.TeamsMatch(guess, correct)
}

// PlayersMatch compares using the built-in alias tables.
func PlayersMatch(guess, correct string) bool {
	return defaultEvaluator.PlayersMatch(guess, correct)
}
