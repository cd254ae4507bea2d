package simulate

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/pkg/logger"
)

// verify compares the server's ranks against expected. Leaderboard updates
// are asynchronous, so it retries after cfg.SettleDelay.
func verify(ctx context.Context, c *client, cfg Config, expected map[string]int, stats *Stats) error {
	pending := expected
	for attempt := range verifyAttempts {
		if attempt > 0 || cfg.SettleDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.SettleDelay):
			}
		}
		pending = checkRanks(ctx, c, pending, stats)
		if len(pending) == 0 {
			break
		}
	}
	stats.Mismatches = len(pending)

	var board []types.Entry
	if err := c.getJSON(ctx, fmt.Sprintf("/leaderboard?limit=%d", cfg.TopN), &board); err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}
	stats.Leaderboard = len(board)
	if err := checkBoard(board, expected); err != nil {
		return err
	}
	if stats.Mismatches > 0 {
		return fmt.Errorf("%w: %d players", ErrMismatch, stats.Mismatches)
	}
	return nil
}

// checkRanks returns the players whose rank entry disagrees with expected.
func checkRanks(ctx context.Context, c *client, expected map[string]int, stats *Stats) map[string]int {
	wrong := make(map[string]int)
	for player, points := range expected {
		var e types.Entry
		if err := c.getJSON(ctx, "/rank/"+url.PathEscape(player), &e); err != nil {
			wrong[player] = points
			continue
		}
		stats.RanksRead++
		if e.Points != points {
			logger.Get().Debug(ctx, "rank disagrees",
				logger.String("player", player),
				logger.Int("want", points),
				logger.Int("got", e.Points))
			wrong[player] = points
		}
	}
	return wrong
}

// checkBoard verifies ordering and competition ranks, and that every
// simulated player on the board has the points they were awarded.
func checkBoard(board []types.Entry, expected map[string]int) error {
	for i, e := range board {
		if want, ok := expected[e.Player]; ok && want != e.Points {
			return fmt.Errorf("%w: %s has %d points, want %d", ErrMismatch, e.Player, e.Points, want)
		}
		if i == 0 {
			if e.Rank != 1 {
				return fmt.Errorf("%w: first entry has rank %d", ErrMismatch, e.Rank)
			}
			continue
		}
		prev := board[i-1]
		switch {
		case e.Points > prev.Points:
			return fmt.Errorf("%w: entry %d outscores entry %d", ErrMismatch, i, i-1)
		case e.Points == prev.Points && e.Rank != prev.Rank:
			return fmt.Errorf("%w: tied entries %d and %d have different ranks", ErrMismatch, i-1, i)
		case e.Points < prev.Points && e.Rank != i+1:
			return fmt.Errorf("%w: entry %d has rank %d, want %d", ErrMismatch, i, e.Rank, i+1)
		}
	}
	return nil
}
