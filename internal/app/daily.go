package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/goalguessr/internal/adapters/sqlite"
	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/pkg/logger"
)

// EnsureDailyGame returns the game for the calendar day containing t,
// creating it from the approved goals when it does not exist yet.
func (s *Service) EnsureDailyGame(ctx context.Context, t time.Time) (model.DailyGame, error) {
	if s.store == nil {
		return model.DailyGame{}, ErrNotStarted
	}
	date := t.In(s.loc).Format(time.DateOnly)

	game, err := s.store.DailyGame(ctx, date)
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, sqlite.ErrNotFound) {
		return model.DailyGame{}, err
	}

	ids, err := s.store.ApprovedGoalIDs(ctx)
	if err != nil {
		return model.DailyGame{}, err
	}
	picked, err := pickGoals(ids, date, s.roundsPerDay)
	if err != nil {
		return model.DailyGame{}, err
	}

	game, err = s.store.CreateDailyGame(ctx, model.DailyGame{Date: date, GoalIDs: picked})
	if err != nil {
		return model.DailyGame{}, err
	}
	s.log().Info(ctx, "daily game created",
		logger.String("date", game.Date),
		logger.Int("rounds", game.Rounds()),
	)
	return game, nil
}

// pickGoals rotates through ids by day number, so consecutive days show
// consecutive goals and every approved goal comes up before any repeats.
// Fewer approved goals than rounds shortens the game.
func pickGoals(ids []string, date string, rounds int) ([]string, error) {
	if len(ids) == 0 {
		return nil, ErrNoGoals
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	dayNumber := int(day.Unix() / int64(24*time.Hour/time.Second))

	n := min(rounds, len(ids))
	start := (dayNumber * rounds) % len(ids)
	out := make([]string, n)
	for i := range out {
		out[i] = ids[(start+i)%len(ids)]
	}
	return out, nil
}

// Daily returns today's game for player. Rounds the player has played carry
// their result and the answer; the others only carry the animation.
func (s *Service) Daily(ctx context.Context, player string) (types.DailyView, error) {
	if err := s.ready(); err != nil {
		return types.DailyView{}, err
	}
	game, err := s.EnsureDailyGame(ctx, s.now())
	if err != nil {
		return types.DailyView{}, err
	}

	played := make(map[int]model.RoundScored)
	if player != "" {
		rounds, err := s.store.PlayerRounds(ctx, player, game.Date)
		if err != nil {
			return types.DailyView{}, err
		}
		for _, r := range rounds {
			played[r.Round] = r
		}
	}

	view := types.DailyView{Date: game.Date, Rounds: make([]types.DailyRound, 0, game.Rounds())}
	for i, id := range game.GoalIDs {
		goal, err := s.store.Goal(ctx, id)
		if err != nil {
			return types.DailyView{}, fmt.Errorf("round %d: %w", i+1, err)
		}
		dr := types.DailyRound{Round: i + 1, GoalID: id, Animation: goal.Animation}
		if r, ok := played[i+1]; ok {
			result := r.Result
			reveal := types.RevealOf(goal.Metadata)
			dr.Played, dr.Result, dr.Answer = true, &result, &reveal
			view.TotalPoints += r.Points()
		}
		view.Rounds = append(view.Rounds, dr)
	}
	return view, nil
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get().Named("service")
	}
	return s.logger
}
