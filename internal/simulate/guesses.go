package simulate

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/domain/types"
)

// Answer pools. They hold the classic goals' answers, some near misses
// and some noise so that every scoring tier is reached.
var (
	teams   = []string{"Manchester United", "Man Utd", "Argentina", "Liverpool", "LFC", "Bayern Munich", "Brazil", "Chelsea"}
	scorers = []string{"Ole Gunnar Solskjaer", "Solskjær", "Diego Maradona", "Maradona", "Steven Gerrard", "Gerrard", "Teddy Sheringham", "Pele"}
	years   = []int{1986, 1987, 1999, 1998, 2005, 2004, 2010}
)

const maxThinkMs = 60_000

// plan returns one guess per round for n fresh players.
func plan(rng *rand.Rand, n, rounds int) []types.GuessSubmission {
	out := make([]types.GuessSubmission, 0, n*rounds)
	for range n {
		player := uuid.NewString()
		for round := 1; round <= rounds; round++ {
			out = append(out, types.GuessSubmission{
				Player:      player,
				Round:       round,
				Team:        teams[rng.IntN(len(teams))],
				Year:        years[rng.IntN(len(years))],
				Scorer:      scorers[rng.IntN(len(scorers))],
				TimeTakenMs: rng.Int64N(maxThinkMs),
			})
		}
	}
	return out
}

// withReplays appends a copy of roughly frac of guesses. Replays must be
// rejected as duplicates.
func withReplays(rng *rand.Rand, guesses []types.GuessSubmission, frac float64) []types.GuessSubmission {
	if frac <= 0 {
		return guesses
	}
	out := slices.Clone(guesses)
	for _, g := range guesses {
		if rng.Float64() < frac {
			out = append(out, g)
		}
	}
	return out
}
