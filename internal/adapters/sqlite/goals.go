package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/model"
)

// SaveGoal inserts or replaces a goal. A missing id or creation time is
// filled in and the stored goal is returned.
func (s *Store) SaveGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	if g.Animation == nil {
		return model.Goal{}, fmt.Errorf("save goal: %w: missing animation", ErrInvalid)
	}
	if !g.Status.Valid() {
		return model.Goal{}, fmt.Errorf("save goal: %w: status %q", ErrInvalid, g.Status)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now()
	}

	data, err := animation.Encode(g.Animation)
	if err != nil {
		return model.Goal{}, fmt.Errorf("encode animation: %w", err)
	}

	m := g.Metadata
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO goals (id, team, year, scorer, competition, opponent, match_context,
			video_url, is_international, status, animation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team = excluded.team, year = excluded.year, scorer = excluded.scorer,
			competition = excluded.competition, opponent = excluded.opponent,
			match_context = excluded.match_context, video_url = excluded.video_url,
			is_international = excluded.is_international, status = excluded.status,
			animation = excluded.animation`,
		g.ID, m.Team, m.Year, m.Scorer, m.Competition, m.Opponent, m.MatchContext,
		m.VideoURL, m.IsInternational, string(g.Status), string(data), formatTime(g.CreatedAt))
	if err != nil {
		return model.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

// Goal returns the goal with the given id.
func (s *Store) Goal(ctx context.Context, id string) (model.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, team, year, scorer, competition, opponent, match_context, video_url,
			is_international, status, animation, created_at
		FROM goals WHERE id = ?`, id)

	var (
		g         model.Goal
		status    string
		data      string
		createdAt string
	)
	m := &g.Metadata
	err := row.Scan(&g.ID, &m.Team, &m.Year, &m.Scorer, &m.Competition, &m.Opponent,
		&m.MatchContext, &m.VideoURL, &m.IsInternational, &status, &data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("query goal: %w", err)
	}

	g.Status = model.GoalStatus(status)
	if g.Animation, err = animation.Decode([]byte(data)); err != nil {
		return model.Goal{}, fmt.Errorf("decode animation of goal %s: %w", id, err)
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// SetGoalStatus moves a goal through the review workflow.
func (s *Store) SetGoalStatus(ctx context.Context, id string, status model.GoalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("set goal status: %w: status %q", ErrInvalid, status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE goals SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update goal status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return nil
}

// ApprovedGoalIDs lists approved goals, oldest first.
func (s *Store) ApprovedGoalIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM goals WHERE status = ? ORDER BY created_at, id`, string(model.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("query approved goals: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan goal id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return ids, nil
}

// GoalCounts returns the number of goals per status.
func (s *Store) GoalCounts(ctx context.Context) (map[model.GoalStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM goals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count goals: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.GoalStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan goal count: %w", err)
		}
		counts[model.GoalStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal counts: %w", err)
	}
	return counts, nil
}
