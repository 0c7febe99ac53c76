package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// SQLiteStreakRepo implements StreakRepo over the single user_streak row.
type SQLiteStreakRepo struct {
	conn db.DBTX
}

// NewSQLiteStreakRepo creates a new SQLiteStreakRepo.
func NewSQLiteStreakRepo(conn db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{conn: conn}
}

func (r *SQLiteStreakRepo) Get(ctx context.Context) (*domain.UserStreak, error) {
	query := `SELECT current_streak, longest_streak, total_points, last_activity
		FROM user_streak WHERE id = 'default'`
	var s domain.UserStreak
	var lastStr sql.NullString
	err := r.conn.QueryRowContext(ctx, query).Scan(&s.CurrentStreak, &s.LongestStreak, &s.TotalPoints, &lastStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user streak: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user streak: %w", err)
	}
	s.LastActivity = parseNullableTime(lastStr, dateLayout)
	return &s, nil
}

func (r *SQLiteStreakRepo) Set(ctx context.Context, s *domain.UserStreak) error {
	query := `UPDATE user_streak SET current_streak = ?, longest_streak = ?, total_points = ?, last_activity = ?
		WHERE id = 'default'`
	_, err := r.conn.ExecContext(ctx, query,
		s.CurrentStreak,
		s.LongestStreak,
		s.TotalPoints,
		nullableTimeToString(s.LastActivity, dateLayout),
	)
	if err != nil {
		return fmt.Errorf("setting user streak: %w", err)
	}
	return nil
}
