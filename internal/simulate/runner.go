package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/pkg/logger"
)

// Errors reported by Run.
var (
	ErrUnhealthy = errors.New("service is not healthy")
	ErrNoRounds  = errors.New("today's game has no rounds")
	ErrMismatch  = errors.New("leaderboard does not match scored guesses")
)

const verifyAttempts = 5

// Run executes a complete simulation and returns its statistics. It fails
// with ErrMismatch when the server's totals disagree with the points it
// handed out.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	start := time.Now()
	c := newClient(cfg.BaseURL, cfg.Timeout)
	log := logger.Get().Named("simulate")

	log.Info(ctx, "starting simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("players", cfg.Players),
		logger.Int("workers", cfg.Workers))

	if err := c.getJSON(ctx, "/healthz", nil); err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	var daily types.DailyView
	if err := c.getJSON(ctx, "/daily", &daily); err != nil {
		return Stats{}, fmt.Errorf("load daily game: %w", err)
	}
	if len(daily.Rounds) == 0 {
		return Stats{}, ErrNoRounds
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	guesses := withReplays(rng, plan(rng, cfg.Players, len(daily.Rounds)), cfg.Replays)

	stats := Stats{Players: cfg.Players, Rounds: len(daily.Rounds)}
	expected := submit(ctx, c, cfg.Workers, guesses, &stats)
	log.Info(ctx, "guesses submitted",
		logger.Int("submitted", stats.Submitted),
		logger.Int("scored", stats.Scored),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed))

	err := verify(ctx, c, cfg, expected, &stats)
	stats.Duration = time.Since(start)
	log.Info(ctx, "simulation finished",
		logger.Int("ranksRead", stats.RanksRead),
		logger.Int("leaderboard", stats.Leaderboard),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("points", stats.Points),
		logger.String("duration", stats.Duration.String()))
	return stats, err
}

// submit posts guesses from a worker pool and returns the points each
// player was awarded.
func submit(ctx context.Context, c *client, workers int, guesses []types.GuessSubmission, stats *Stats) map[string]int {
	var (
		scored, duplicate, failed atomic.Int64
		mu                        sync.Mutex
		wg                        sync.WaitGroup
	)
	expected := make(map[string]int)
	ch := make(chan types.GuessSubmission, workers*2)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range ch {
				var out types.GuessOutcome
				code, err := c.postJSON(ctx, "/guesses", g, &out, http.StatusOK, http.StatusConflict)
				switch {
				case err != nil:
					failed.Add(1)
					logger.Get().Debug(ctx, "guess failed", logger.Error(err))
				case code == http.StatusConflict:
					duplicate.Add(1)
				default:
					scored.Add(1)
					mu.Lock()
					expected[g.Player] += out.Result.TotalPoints
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, g := range guesses {
			select {
			case <-ctx.Done():
				return
			case ch <- g:
			}
		}
	}()
	wg.Wait()

	stats.Scored = int(scored.Load())
	stats.Duplicate = int(duplicate.Load())
	stats.Failed = int(failed.Load())
	stats.Submitted = stats.Scored + stats.Duplicate + stats.Failed
	for _, p := range expected {
		stats.Points += p
	}
	return expected
}
