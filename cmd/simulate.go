package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/goalguessr/internal/simulate"
)

func (c *cli) newSimulateCmd() *cobra.Command {
	var sc simulate.Config
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play today's game against a running server and check the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := simulate.Run(cmd.Context(), sc)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"players=%d rounds=%d submitted=%d scored=%d duplicate=%d failed=%d points=%d mismatches=%d duration=%s\n",
				stats.Players, stats.Rounds, stats.Submitted, stats.Scored, stats.Duplicate,
				stats.Failed, stats.Points, stats.Mismatches, stats.Duration)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&sc.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	fs.IntVar(&sc.Players, "players", 100, "number of simulated players")
	fs.IntVar(&sc.Workers, "workers", 8, "concurrent HTTP workers")
	fs.IntVar(&sc.TopN, "top", 50, "leaderboard entries to check")
	fs.DurationVar(&sc.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	fs.DurationVar(&sc.SettleDelay, "settle", 500*time.Millisecond, "wait between leaderboard checks")
	fs.Float64Var(&sc.Replays, "replays", 0.1, "fraction of guesses sent twice")
	fs.Uint64Var(&sc.Seed, "seed", uint64(time.Now().UnixNano()), "seed for guess generation")
	return cmd
}
