package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/goalguessr/internal/domain/model"
)

// SaveGuess records a scored round. A second guess by the same player for
// the same date and round returns ErrDuplicate.
func (s *Store) SaveGuess(ctx context.Context, r model.RoundScored) (model.RoundScored, error) {
	if r.Player == "" || r.Date == "" || r.Round < 1 {
		return model.RoundScored{}, fmt.Errorf("save guess: %w: player, date and round required", ErrInvalid)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.TS.IsZero() {
		r.TS = s.now()
	}

	guess, err := json.Marshal(r.Guess)
	if err != nil {
		return model.RoundScored{}, fmt.Errorf("encode guess: %w", err)
	}
	result, err := json.Marshal(r.Result)
	if err != nil {
		return model.RoundScored{}, fmt.Errorf("encode result: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO guesses (id, player, date, round, goal_id, guess, result, total_points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player, date, round) DO NOTHING`,
		r.ID, r.Player, r.Date, r.Round, r.GoalID, string(guess), string(result),
		r.Points(), formatTime(r.TS))
	if err != nil {
		return model.RoundScored{}, fmt.Errorf("insert guess: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.RoundScored{}, fmt.Errorf("insert guess: %w", err)
	}
	if n == 0 {
		return model.RoundScored{}, ErrDuplicate
	}
	return r, nil
}

// PlayerRounds returns the rounds a player has already played on date, in
// round order.
func (s *Store) PlayerRounds(ctx context.Context, player, date string) ([]model.RoundScored, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, round, goal_id, guess, result, created_at
		FROM guesses WHERE player = ? AND date = ? ORDER BY round`, player, date)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []model.RoundScored
	for rows.Next() {
		r := model.RoundScored{Player: player, Date: date}
		var guess, result, createdAt string
		if err := rows.Scan(&r.ID, &r.Round, &r.GoalID, &guess, &result, &createdAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		if err := json.Unmarshal([]byte(guess), &r.Guess); err != nil {
			return nil, fmt.Errorf("decode guess %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(result), &r.Result); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", r.ID, err)
		}
		if r.TS, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}
	return out, nil
}

// PlayerTotals sums every player's recorded points.
func (s *Store) PlayerTotals(ctx context.Context) ([]model.PlayerTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player, SUM(total_points) FROM guesses GROUP BY player ORDER BY player`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var out []model.PlayerTotal
	for rows.Next() {
		var t model.PlayerTotal
		if err := rows.Scan(&t.Player, &t.Points); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return out, nil
}

// GuessCount returns the number of recorded guesses.
func (s *Store) GuessCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM guesses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count guesses: %w", err)
	}
	return n, nil
}
