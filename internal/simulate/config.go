// Package simulate plays today's game against a running server with many
// concurrent players and checks that the leaderboard adds up.
package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Players     int           // Number of simulated players
	Workers     int           // Number of concurrent workers
	TopN        int           // Leaderboard entries to fetch
	Timeout     time.Duration // HTTP request timeout
	SettleDelay time.Duration // Wait before reading the leaderboard
	Replays     float64       // Fraction of guesses sent twice
	Seed        uint64        // Seed for guess generation
}

// Stats holds run statistics.
type Stats struct {
	Players     int
	Rounds      int
	Submitted   int
	Scored      int
	Duplicate   int
	Failed      int
	Points      int
	RanksRead   int
	Leaderboard int
	Mismatches  int
	Duration    time.Duration
}

// Defaults used when fields are left zero.
const (
	defaultPlayers = 100
	defaultWorkers = 8
	defaultTopN    = 50
	defaultTimeout = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:9080"
	}
	if c.Players <= 0 {
		c.Players = defaultPlayers
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.TopN <= 0 {
		c.TopN = defaultTopN
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}
