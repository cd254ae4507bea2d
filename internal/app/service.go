// Package service wires storage, scoring, the leaderboard pipeline and the
// daily scheduler into the operations the HTTP API and CLI call.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	eventqueue "github.com/okian/goalguessr/internal/adapters/mq/queue"
	workerpool "github.com/okian/goalguessr/internal/adapters/mq/worker"
	"github.com/okian/goalguessr/internal/adapters/repository"
	"github.com/okian/goalguessr/internal/adapters/sqlite"
	"github.com/okian/goalguessr/internal/domain/alias"
	"github.com/okian/goalguessr/internal/domain/dedupe"
	"github.com/okian/goalguessr/internal/domain/match"
	"github.com/okian/goalguessr/internal/domain/scoring"
	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/internal/scheduler"
	"github.com/okian/goalguessr/pkg/logger"
	"github.com/okian/goalguessr/pkg/metrics"
)

// Service implements the game operations.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       *sqlite.Store
	leaderboard *repository.TreapStore
	deduper     dedupe.Deduper
	queue       *eventqueue.InMemoryQueue
	pool        *workerpool.Pool
	engine      *scoring.Engine
	sched       *scheduler.Scheduler

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	roundsPerDay int
	dbPath       string
	aliasFile    string
	loc          *time.Location
	schedule     bool
	now          func() time.Time

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of leaderboard workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the scored-round queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the duplicate-guess cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRoundsPerDay sets how many goals a daily game has.
func WithRoundsPerDay(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.roundsPerDay = n
		}
	}
}

// WithDatabasePath sets the SQLite database location.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithAliasFile adds aliases from a YAML file to the built-in tables.
func WithAliasFile(path string) Option {
	return func(s *Service) {
		s.aliasFile = path
	}
}

// WithLocation sets the timezone in which a calendar day starts.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithScheduler turns the daily rollover job on or off.
func WithScheduler(on bool) Option {
	return func(s *Service) {
		s.schedule = on
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		queueSize:    10_000,
		dedupeSize:   50_000,
		roundsPerDay: 3,
		dbPath:       sqlite.MemoryPath,
		loc:          time.UTC,
		schedule:     true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens storage, rebuilds the leaderboard from stored guesses and
// starts the workers and the scheduler.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting goalguessr service...")

	teams, players, err := alias.Tables(s.aliasFile)
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}
	s.engine = scoring.NewEngine(scoring.WithMatcher(match.New(
		match.WithTeamAliases(teams),
		match.WithPlayerAliases(players),
	)))

	store, err := sqlite.Open(ctx, s.dbPath, sqlite.WithClock(s.now))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	leaderboard := repository.NewTreapStore(ctx)
	totals, err := store.PlayerTotals(ctx)
	if err == nil {
		err = leaderboard.Restore(ctx, totals)
	}
	if err != nil {
		_ = leaderboard.Close()
		_ = store.Close()
		return fmt.Errorf("restore leaderboard: %w", err)
	}

	s.store = store
	s.leaderboard = leaderboard
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.leaderboard)
	s.pool.Start(ctx)

	if s.schedule {
		sched, err := scheduler.New(s, s.loc, scheduler.WithClock(s.now))
		if err == nil {
			err = sched.Start(ctx)
		}
		if err != nil {
			s.shutdown(ctx)
			return fmt.Errorf("start scheduler: %w", err)
		}
		s.sched = sched
	}

	s.started = true
	s.logger.Info(ctx, "goalguessr service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("players", len(totals)),
		logger.String("timezone", s.loc.String()),
	)
	return nil
}

// Stop drains the queue and releases storage.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping goalguessr service...")
	s.shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "goalguessr service stopped")
}

func (s *Service) shutdown(ctx context.Context) {
	if s.sched != nil {
		if err := s.sched.Stop(); err != nil {
			s.logger.Warn(ctx, "scheduler stop failed", logger.Error(err))
		}
		s.sched = nil
	}
	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool stop failed", logger.Error(err))
		}
	}
	if s.leaderboard != nil {
		_ = s.leaderboard.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "storage close failed", logger.Error(err))
		}
	}
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Today is the current date in the game timezone.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(time.DateOnly)
}

// TopN returns the top n leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.leaderboard.TopN(ctx, n)
}

// Rank returns the rank and total of a player.
func (s *Service) Rank(ctx context.Context, player string) (types.Entry, error) {
	if err := s.ready(); err != nil {
		return types.Entry{}, err
	}
	e, err := s.leaderboard.Rank(ctx, player)
	if errors.Is(err, repository.ErrNotFound) {
		return types.Entry{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}
	return e, err
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Stats{
		Started:       s.started,
		Today:         s.Today(),
		QueueCapacity: s.queueSize,
	}
	if !s.started {
		return stats, nil
	}

	stats.Workers = s.pool.Size()
	stats.QueueLength = s.queue.Len(ctx)
	stats.DedupeSize = s.deduper.Size()
	stats.Players = s.leaderboard.Count(ctx)
	if snap := s.leaderboard.Snapshot(); snap != nil {
		stats.TotalPoints = snap.TotalPoints
	}

	var err error
	if stats.Guesses, err = s.store.GuessCount(ctx); err != nil {
		return stats, err
	}
	counts, err := s.store.GoalCounts(ctx)
	if err != nil {
		return stats, err
	}
	stats.Goals = make(map[string]int, len(counts))
	for status, n := range counts {
		stats.Goals[string(status)] = n
	}

	metrics.UpdateLeaderboardPlayers(stats.Players)
	return stats, nil
}
