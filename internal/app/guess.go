package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/adapters/sqlite"
	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/dedupe"
	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/internal/domain/scoring"
	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/pkg/logger"
	"github.com/okian/goalguessr/pkg/metrics"
)

func (s *Service) checkGuess(g types.GuessSubmission) error {
	currentYear := s.now().In(s.loc).Year()
	switch {
	case strings.TrimSpace(g.Player) == "":
		return fmt.Errorf("%w: missing player", ErrInvalidGuess)
	case g.Round < 1 || g.Round > s.roundsPerDay:
		return fmt.Errorf("%w: round must be between 1 and %d", ErrInvalidGuess, s.roundsPerDay)
	case strings.TrimSpace(g.Team) == "":
		return fmt.Errorf("%w: missing team", ErrInvalidGuess)
	case strings.TrimSpace(g.Scorer) == "":
		return fmt.Errorf("%w: missing scorer", ErrInvalidGuess)
	case g.Year < animation.MinYear || g.Year > currentYear:
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidGuess, animation.MinYear, currentYear)
	case g.TimeTakenMs < 0:
		return fmt.Errorf("%w: negative time taken", ErrInvalidGuess)
	}
	return nil
}

// SubmitGuess scores one round of today's game. Each player gets one guess
// per round; a repeat returns ErrDuplicateGuess. The round's points reach
// the leaderboard asynchronously.
func (s *Service) SubmitGuess(ctx context.Context, g types.GuessSubmission) (types.GuessOutcome, error) {
	if err := s.ready(); err != nil {
		return types.GuessOutcome{}, err
	}
	g.Player = strings.TrimSpace(g.Player)
	if err := s.checkGuess(g); err != nil {
		return types.GuessOutcome{}, err
	}

	game, err := s.EnsureDailyGame(ctx, s.now())
	if err != nil {
		return types.GuessOutcome{}, err
	}
	goalID, ok := game.GoalFor(g.Round)
	if !ok {
		return types.GuessOutcome{}, fmt.Errorf("%w: today's game has %d rounds", ErrInvalidGuess, game.Rounds())
	}

	key := dedupe.Key(g.Player, game.Date, g.Round)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordGuessDuplicate()
		return types.GuessOutcome{}, ErrDuplicateGuess
	}

	goal, err := s.store.Goal(ctx, goalID)
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		return types.GuessOutcome{}, fmt.Errorf("load goal for round %d: %w", g.Round, err)
	}

	guess := scoring.Guess{Team: g.Team, Year: g.Year, Scorer: g.Scorer, TimeTakenMs: g.TimeTakenMs}
	result := s.engine.Score(guess, goal.Answer())
	metrics.RecordMatchDecision("team", string(result.TeamTier))
	metrics.RecordMatchDecision("scorer", string(result.ScorerTier))

	round, err := s.store.SaveGuess(ctx, model.RoundScored{
		ID:     uuid.NewString(),
		Player: g.Player,
		Date:   game.Date,
		Round:  g.Round,
		GoalID: goalID,
		Guess:  guess,
		Result: result,
		TS:     s.now(),
	})
	if errors.Is(err, sqlite.ErrDuplicate) {
		metrics.RecordGuessDuplicate()
		return types.GuessOutcome{}, ErrDuplicateGuess
	}
	if err != nil {
		s.deduper.Unrecord(ctx, key)
		return types.GuessOutcome{}, err
	}
	metrics.RecordGuessScored(result.TotalPoints, result.SpeedBonus)

	if !s.queue.Enqueue(ctx, round) {
		// The guess is stored; apply its points inline rather than lose them.
		s.logger.Warn(ctx, "queue rejected round, updating leaderboard inline",
			logger.String("round_id", round.ID))
		if _, err := s.leaderboard.AddPoints(ctx, round.Player, round.Points()); err != nil {
			s.logger.Error(ctx, "leaderboard update failed", logger.String("round_id", round.ID), logger.Error(err))
		}
	}

	s.logger.Debug(ctx, "guess scored",
		logger.String("player", g.Player),
		logger.String("date", game.Date),
		logger.Int("round", g.Round),
		logger.Int("points", result.TotalPoints),
		logger.String("team_tier", string(result.TeamTier)),
		logger.String("scorer_tier", string(result.ScorerTier)),
	)
	return types.GuessOutcome{
		Date:   game.Date,
		Round:  g.Round,
		GoalID: goalID,
		Result: result,
		Answer: types.RevealOf(goal.Metadata),
	}, nil
}
