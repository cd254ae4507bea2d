package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/domain/model"
)

// DailyGame returns the game scheduled for date (YYYY-MM-DD).
func (s *Store) DailyGame(ctx context.Context, date string) (model.DailyGame, error) {
	var (
		g         model.DailyGame
		goalIDs   string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, goal_ids, created_at FROM daily_games WHERE date = ?`, date).
		Scan(&g.ID, &g.Date, &goalIDs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailyGame{}, fmt.Errorf("daily game %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return model.DailyGame{}, fmt.Errorf("query daily game: %w", err)
	}
	if err := json.Unmarshal([]byte(goalIDs), &g.GoalIDs); err != nil {
		return model.DailyGame{}, fmt.Errorf("decode goal ids of %s: %w", date, err)
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.DailyGame{}, err
	}
	return g, nil
}

// CreateDailyGame stores a game for its date. If the date already has a game
// the existing one is returned unchanged.
func (s *Store) CreateDailyGame(ctx context.Context, g model.DailyGame) (model.DailyGame, error) {
	if g.Date == "" || len(g.GoalIDs) == 0 {
		return model.DailyGame{}, fmt.Errorf("create daily game: %w: date and goals required", ErrInvalid)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now()
	}

	ids, err := json.Marshal(g.GoalIDs)
	if err != nil {
		return model.DailyGame{}, fmt.Errorf("encode goal ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_games (id, date, goal_ids, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO NOTHING`,
		g.ID, g.Date, string(ids), formatTime(g.CreatedAt))
	if err != nil {
		return model.DailyGame{}, fmt.Errorf("insert daily game: %w", err)
	}
	return s.DailyGame(ctx, g.Date)
}
