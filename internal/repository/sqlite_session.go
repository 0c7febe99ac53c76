package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const sessionColumns = `id, subject_code, chapter_id, title, started_at, stopped_at,
		duration_seconds, is_deep_work, points_earned`

// sessionColumnsAliased is the same column list prefixed with "s." for
// the active-timer join.
const sessionColumnsAliased = `s.id, s.subject_code, s.chapter_id, s.title, s.started_at, s.stopped_at,
		s.duration_seconds, s.is_deep_work, s.points_earned`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	conn db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{conn: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		s.ID,
		nullableStrToValue(s.SubjectCode),
		nullableStrToValue(s.ChapterID),
		s.Title,
		s.StartedAt.Format(time.RFC3339),
		nullableTimeToString(s.StoppedAt, time.RFC3339),
		s.DurationSeconds,
		boolToInt(s.IsDeepWork),
		s.PointsEarned,
	)
	if err != nil {
		return fmt.Errorf("inserting study session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`
	return r.scanSession(r.conn.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET subject_code = ?, chapter_id = ?, title = ?, started_at = ?,
		stopped_at = ?, duration_seconds = ?, is_deep_work = ?, points_earned = ?
		WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		nullableStrToValue(s.SubjectCode),
		nullableStrToValue(s.ChapterID),
		s.Title,
		s.StartedAt.Format(time.RFC3339),
		nullableTimeToString(s.StoppedAt, time.RFC3339),
		s.DurationSeconds,
		boolToInt(s.IsDeepWork),
		s.PointsEarned,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("study session: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListInWindow(ctx context.Context, from, to time.Time) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE started_at >= ? AND started_at < ?
		ORDER BY started_at, id`
	rows, err := r.conn.QueryContext(ctx, query,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing sessions in window: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := r.scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) CountDeepWork(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions WHERE is_deep_work = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting deep work sessions: %w", err)
	}
	return count, nil
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumnsAliased + `
		FROM active_timer t
		JOIN study_sessions s ON s.id = t.session_id
		WHERE t.id = 'default'`
	return r.scanSession(r.conn.QueryRowContext(ctx, query))
}

func (r *SQLiteSessionRepo) SetActive(ctx context.Context, sessionID string) error {
	query := `UPDATE active_timer SET session_id = ? WHERE id = 'default'`
	if _, err := r.conn.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("setting active timer: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ClearActive(ctx context.Context) error {
	query := `UPDATE active_timer SET session_id = NULL WHERE id = 'default'`
	if _, err := r.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clearing active timer: %w", err)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.StudySession, error) {
	var s domain.StudySession
	var subjectStr, chapterStr, stoppedAtStr sql.NullString
	var startedAtStr string
	var deepWorkInt int

	err := row.Scan(
		&s.ID, &subjectStr, &chapterStr, &s.Title, &startedAtStr, &stoppedAtStr,
		&s.DurationSeconds, &deepWorkInt, &s.PointsEarned,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}
	return populateSession(&s, subjectStr, chapterStr, startedAtStr, stoppedAtStr, deepWorkInt)
}

func (r *SQLiteSessionRepo) scanSessionRow(rows *sql.Rows) (*domain.StudySession, error) {
	var s domain.StudySession
	var subjectStr, chapterStr, stoppedAtStr sql.NullString
	var startedAtStr string
	var deepWorkInt int

	err := rows.Scan(
		&s.ID, &subjectStr, &chapterStr, &s.Title, &startedAtStr, &stoppedAtStr,
		&s.DurationSeconds, &deepWorkInt, &s.PointsEarned,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning study session row: %w", err)
	}
	return populateSession(&s, subjectStr, chapterStr, startedAtStr, stoppedAtStr, deepWorkInt)
}

func populateSession(s *domain.StudySession, subjectStr, chapterStr sql.NullString, startedAtStr string, stoppedAtStr sql.NullString, deepWorkInt int) (*domain.StudySession, error) {
	s.SubjectCode = parseNullableStr(subjectStr)
	s.ChapterID = parseNullableStr(chapterStr)
	s.IsDeepWork = intToBool(deepWorkInt)
	s.StoppedAt = parseNullableTime(stoppedAtStr, time.RFC3339)

	var err error
	s.StartedAt, err = time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	return s, nil
}
