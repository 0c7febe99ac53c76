package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const breakColumns = `id, break_type, started_at, ended_at, suggested_duration_min, actual_duration_min, was_completed`

// SQLiteBreakRepo implements BreakRepo using a SQLite database.
type SQLiteBreakRepo struct {
	conn db.DBTX
}

// NewSQLiteBreakRepo creates a new SQLiteBreakRepo.
func NewSQLiteBreakRepo(conn db.DBTX) *SQLiteBreakRepo {
	return &SQLiteBreakRepo{conn: conn}
}

func (r *SQLiteBreakRepo) Create(ctx context.Context, b *domain.BreakSession) error {
	query := `INSERT INTO break_sessions (` + breakColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		b.ID,
		string(b.BreakType),
		b.StartedAt.Format(time.RFC3339),
		nullableTimeToString(b.EndedAt, time.RFC3339),
		b.SuggestedDurationMin,
		b.ActualDurationMin,
		boolToInt(b.WasCompleted),
	)
	if err != nil {
		return fmt.Errorf("inserting break session: %w", err)
	}
	return nil
}

func (r *SQLiteBreakRepo) GetByID(ctx context.Context, id string) (*domain.BreakSession, error) {
	query := `SELECT ` + breakColumns + ` FROM break_sessions WHERE id = ?`
	return r.scanBreak(r.conn.QueryRowContext(ctx, query, id))
}

func (r *SQLiteBreakRepo) Update(ctx context.Context, b *domain.BreakSession) error {
	query := `UPDATE break_sessions SET break_type = ?, started_at = ?, ended_at = ?,
		suggested_duration_min = ?, actual_duration_min = ?, was_completed = ?
		WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		string(b.BreakType),
		b.StartedAt.Format(time.RFC3339),
		nullableTimeToString(b.EndedAt, time.RFC3339),
		b.SuggestedDurationMin,
		b.ActualDurationMin,
		boolToInt(b.WasCompleted),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating break session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("break session: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteBreakRepo) GetActive(ctx context.Context) (*domain.BreakSession, error) {
	query := `SELECT ` + breakColumns + ` FROM break_sessions WHERE ended_at IS NULL ORDER BY started_at DESC LIMIT 1`
	return r.scanBreak(r.conn.QueryRowContext(ctx, query))
}

func (r *SQLiteBreakRepo) CountCompletedOnDate(ctx context.Context, date time.Time) (int, error) {
	return r.countOnDate(ctx, date, `was_completed = 1`)
}

func (r *SQLiteBreakRepo) CountSkippedOnDate(ctx context.Context, date time.Time) (int, error) {
	return r.countOnDate(ctx, date, `was_completed = 0 AND ended_at IS NOT NULL`)
}

func (r *SQLiteBreakRepo) countOnDate(ctx context.Context, date time.Time, cond string) (int, error) {
	day := domain.DateOf(date)
	next := day.AddDate(0, 0, 1)
	query := `SELECT COUNT(*) FROM break_sessions WHERE started_at >= ? AND started_at < ? AND ` + cond
	var count int
	err := r.conn.QueryRowContext(ctx, query,
		day.Format(time.RFC3339), next.Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting break sessions: %w", err)
	}
	return count, nil
}

func (r *SQLiteBreakRepo) GetPomodoro(ctx context.Context) (*domain.PomodoroStatus, error) {
	query := `SELECT phase, cycles_completed, phase_started_at FROM pomodoro_status WHERE id = 'default'`
	var p domain.PomodoroStatus
	var phaseStr string
	var startedStr sql.NullString
	err := r.conn.QueryRowContext(ctx, query).Scan(&phaseStr, &p.CyclesCompleted, &startedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pomodoro status: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning pomodoro status: %w", err)
	}
	p.Phase = domain.PomodoroPhase(phaseStr)
	p.PhaseStartedAt = parseNullableTime(startedStr, time.RFC3339)
	return &p, nil
}

func (r *SQLiteBreakRepo) SetPomodoro(ctx context.Context, p *domain.PomodoroStatus) error {
	query := `UPDATE pomodoro_status SET phase = ?, cycles_completed = ?, phase_started_at = ? WHERE id = 'default'`
	_, err := r.conn.ExecContext(ctx, query,
		string(p.Phase),
		p.CyclesCompleted,
		nullableTimeToString(p.PhaseStartedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("setting pomodoro status: %w", err)
	}
	return nil
}

func (r *SQLiteBreakRepo) scanBreak(row *sql.Row) (*domain.BreakSession, error) {
	var b domain.BreakSession
	var typeStr, startedAtStr string
	var endedAtStr sql.NullString
	var completedInt int

	err := row.Scan(&b.ID, &typeStr, &startedAtStr, &endedAtStr, &b.SuggestedDurationMin, &b.ActualDurationMin, &completedInt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("break session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning break session: %w", err)
	}
	b.BreakType = domain.BreakType(typeStr)
	b.WasCompleted = intToBool(completedInt)
	b.EndedAt = parseNullableTime(endedAtStr, time.RFC3339)
	b.StartedAt, err = time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	return &b, nil
}
