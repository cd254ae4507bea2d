// Package scheduler runs the daily game rollover.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/pkg/logger"
	"github.com/okian/goalguessr/pkg/metrics"
)

// ErrNotStarted is returned when triggering a scheduler that is not running.
var ErrNotStarted = errors.New("scheduler not started")

// Roller creates the daily game for the calendar day containing t.
type Roller interface {
	EnsureDailyGame(ctx context.Context, t time.Time) (model.DailyGame, error)
}

// Scheduler creates each day's game shortly after midnight.
type Scheduler struct {
	s      gocron.Scheduler
	roller Roller
	loc    *time.Location
	now    func() time.Time
	log    logger.Logger

	mu     sync.Mutex
	job    gocron.Job
	ctx    context.Context
	cancel context.CancelFunc
}

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source passed to the roller.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a scheduler running in loc. A nil loc means UTC.
func New(roller Roller, loc *time.Location, opts ...Option) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	gs, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		s:      gs,
		roller: roller,
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("scheduler")
	}
	return s, nil
}

// Start makes sure today's game exists, then schedules the rollover for
// 00:00:05 every day.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.rollover()

	job, err := s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		gocron.NewTask(s.rollover),
		gocron.WithName("daily-rollover"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to create rollover job: %w", err)
	}
	s.job = job
	s.s.Start()
	s.log.Info(ctx, "scheduler started", logger.String("timezone", s.loc.String()))
	return nil
}

// NextRun reports when the rollover runs next.
func (s *Scheduler) NextRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return time.Time{}, ErrNotStarted
	}
	return s.job.NextRun()
}

// Trigger runs the rollover now, outside its schedule.
func (s *Scheduler) Trigger() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return ErrNotStarted
	}
	return s.job.RunNow()
}

// Stop shuts the scheduler down and waits for a running rollover.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	return s.s.Shutdown()
}

func (s *Scheduler) rollover() {
	ctx := s.ctx
	now := s.now().In(s.loc)
	game, err := s.roller.EnsureDailyGame(ctx, now)
	if err != nil {
		metrics.RecordErrorByComponent("scheduler", "rollover")
		s.log.Error(ctx, "daily rollover failed", logger.String("date", now.Format(time.DateOnly)), logger.Error(err))
		return
	}
	metrics.RecordDailyRollover()
	s.log.Info(ctx, "daily game ready",
		logger.String("date", game.Date),
		logger.Int("rounds", game.Rounds()),
	)
}
