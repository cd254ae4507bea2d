// Package repository holds the leaderboard: each player's summed round
// points, ranked highest first.
package repository

import (
	"context"

	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/internal/domain/types"
)

// Entry is a leaderboard row.
type Entry = types.Entry

// Store provides read/write access to the ranking state.
type Store interface {
	// AddPoints adds a scored round to the player's total and returns the
	// player's updated row.
	AddPoints(ctx context.Context, player string, points int) (Entry, error)

	// Restore replaces the leaderboard with previously persisted totals.
	Restore(ctx context.Context, totals []model.PlayerTotal) error

	// Rank returns the current rank and total for a player.
	// Returns ErrNotFound if the player is unknown.
	Rank(ctx context.Context, player string) (Entry, error)

	// TopN returns the top-N entries ordered by points desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players on the leaderboard.
	Count(ctx context.Context) int
}
