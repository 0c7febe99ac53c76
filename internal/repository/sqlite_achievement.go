package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const achievementColumns = `code, progress_value, is_complete, earned_at, notified, updated_at`

// SQLiteAchievementRepo implements AchievementRepo using a SQLite database.
type SQLiteAchievementRepo struct {
	conn db.DBTX
}

// NewSQLiteAchievementRepo creates a new SQLiteAchievementRepo.
func NewSQLiteAchievementRepo(conn db.DBTX) *SQLiteAchievementRepo {
	return &SQLiteAchievementRepo{conn: conn}
}

func (r *SQLiteAchievementRepo) Get(ctx context.Context, code string) (*domain.UserAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM user_achievements WHERE code = ?`
	row := r.conn.QueryRowContext(ctx, query, code)
	a, err := scanAchievement(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("achievement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning achievement: %w", err)
	}
	return a, nil
}

func (r *SQLiteAchievementRepo) Upsert(ctx context.Context, a *domain.UserAchievement) error {
	query := `INSERT INTO user_achievements (` + achievementColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			progress_value = excluded.progress_value,
			is_complete = excluded.is_complete,
			earned_at = excluded.earned_at,
			notified = excluded.notified,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query,
		a.Code,
		a.ProgressValue,
		boolToInt(a.IsComplete),
		nullableTimeToString(a.EarnedAt, time.RFC3339),
		boolToInt(a.Notified),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting achievement: %w", err)
	}
	return nil
}

func (r *SQLiteAchievementRepo) List(ctx context.Context) ([]*domain.UserAchievement, error) {
	return r.list(ctx, `SELECT `+achievementColumns+` FROM user_achievements ORDER BY code`)
}

func (r *SQLiteAchievementRepo) ListUnnotified(ctx context.Context) ([]*domain.UserAchievement, error) {
	return r.list(ctx, `SELECT `+achievementColumns+` FROM user_achievements
		WHERE is_complete = 1 AND notified = 0 ORDER BY code`)
}

func (r *SQLiteAchievementRepo) MarkNotified(ctx context.Context, code string) error {
	res, err := r.conn.ExecContext(ctx, `UPDATE user_achievements SET notified = 1 WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("marking achievement notified: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("achievement: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteAchievementRepo) list(ctx context.Context, query string) ([]*domain.UserAchievement, error) {
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*domain.UserAchievement
	for rows.Next() {
		a, err := scanAchievement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning achievement row: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating achievements: %w", err)
	}
	return achievements, nil
}

func scanAchievement(scan func(dest ...any) error) (*domain.UserAchievement, error) {
	var a domain.UserAchievement
	var completeInt, notifiedInt int
	var earnedAtStr sql.NullString
	var updatedAtStr string

	if err := scan(&a.Code, &a.ProgressValue, &completeInt, &earnedAtStr, &notifiedInt, &updatedAtStr); err != nil {
		return nil, err
	}
	a.IsComplete = intToBool(completeInt)
	a.Notified = intToBool(notifiedInt)
	a.EarnedAt = parseNullableTime(earnedAtStr, time.RFC3339)
	var err error
	a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
