package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/adapters/sqlite"
	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/editor"
	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/pkg/logger"
	"github.com/okian/goalguessr/pkg/metrics"
)

// classicNamespace derives stable ids for the built-in goals so seeding
// twice updates them in place.
var classicNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://goalguessr.app/classics"))

// ValidateGoal checks an animation and its metadata without storing them.
func (s *Service) ValidateGoal(a *animation.Animation, m animation.Metadata) animation.Validation {
	if a == nil {
		metrics.RecordAnimationValidation(false)
		return animation.Validation{Errors: []string{"Missing animation"}}
	}
	v := animation.Validate(a, m, s.now().In(s.loc).Year())
	metrics.RecordAnimationValidation(v.Valid)
	return v
}

// SubmitGoal stores a valid goal for review. An invalid goal is rejected
// with ErrInvalidGoal and the validation listing its problems.
func (s *Service) SubmitGoal(ctx context.Context, m animation.Metadata, a *animation.Animation) (model.Goal, animation.Validation, error) {
	if err := s.ready(); err != nil {
		return model.Goal{}, animation.Validation{}, err
	}
	if a != nil {
		a = a.Clone()
		a.RecalculateHolders()
	}
	v := s.ValidateGoal(a, m)
	if !v.Valid {
		return model.Goal{}, v, ErrInvalidGoal
	}

	goal, err := s.store.SaveGoal(ctx, model.Goal{Metadata: m, Status: model.StatusPending, Animation: a})
	if err != nil {
		return model.Goal{}, v, err
	}
	metrics.RecordGoalSubmitted()
	s.logger.Info(ctx, "goal submitted", logger.String("goal_id", goal.ID), logger.String("scorer", m.Scorer))
	return goal, v, nil
}

// Goal returns a stored goal.
func (s *Service) Goal(ctx context.Context, id string) (model.Goal, error) {
	if err := s.ready(); err != nil {
		return model.Goal{}, err
	}
	g, err := s.store.Goal(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return model.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return g, err
}

// SetGoalStatus approves or rejects a goal. Only approved goals are
// scheduled into daily games.
func (s *Service) SetGoalStatus(ctx context.Context, id string, status model.GoalStatus) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := s.store.SetGoalStatus(ctx, id, status)
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	case errors.Is(err, sqlite.ErrInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidGoal, err)
	case err != nil:
		return err
	}
	s.logger.Info(ctx, "goal reviewed", logger.String("goal_id", id), logger.String("status", string(status)))
	return nil
}

// Seed stores the built-in classic goals as approved. Running it again
// refreshes them without creating duplicates.
func (s *Service) Seed(ctx context.Context) ([]model.Goal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	drafts, err := editor.Classics(editor.WithClock(s.now))
	if err != nil {
		return nil, err
	}

	out := make([]model.Goal, 0, len(drafts))
	for _, d := range drafts {
		name := d.Metadata.Team + "|" + strconv.Itoa(d.Metadata.Year) + "|" + d.Metadata.Scorer
		goal, err := s.store.SaveGoal(ctx, model.Goal{
			ID:        uuid.NewSHA1(classicNamespace, []byte(name)).String(),
			Metadata:  d.Metadata,
			Status:    model.StatusApproved,
			Animation: d.Animation,
		})
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", d.Metadata.Scorer, err)
		}
		out = append(out, goal)
	}
	s.logger.Info(ctx, "classic goals seeded", logger.Int("goals", len(out)))
	return out, nil
}
