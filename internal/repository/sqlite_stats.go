package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// SQLiteStatsRepo implements StatsRepo using a SQLite database.
type SQLiteStatsRepo struct {
	conn db.DBTX
}

// NewSQLiteStatsRepo creates a new SQLiteStatsRepo.
func NewSQLiteStatsRepo(conn db.DBTX) *SQLiteStatsRepo {
	return &SQLiteStatsRepo{conn: conn}
}

func (r *SQLiteStatsRepo) Get(ctx context.Context, date time.Time) (*domain.DailyStudyStats, error) {
	query := `SELECT date, study_seconds, deep_work_seconds, session_count, points_earned
		FROM daily_study_stats WHERE date = ?`
	var s domain.DailyStudyStats
	var dateStr string
	err := r.conn.QueryRowContext(ctx, query, date.UTC().Format(dateLayout)).Scan(
		&dateStr, &s.StudySeconds, &s.DeepWorkSeconds, &s.SessionCount, &s.PointsEarned,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily stats: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily stats: %w", err)
	}
	s.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	return &s, nil
}

func (r *SQLiteStatsRepo) AddSession(ctx context.Context, date time.Time, studySeconds, deepWorkSeconds, points int) error {
	query := `INSERT INTO daily_study_stats (date, study_seconds, deep_work_seconds, session_count, points_earned)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(date) DO UPDATE SET
			study_seconds = study_seconds + excluded.study_seconds,
			deep_work_seconds = deep_work_seconds + excluded.deep_work_seconds,
			session_count = session_count + 1,
			points_earned = points_earned + excluded.points_earned`
	_, err := r.conn.ExecContext(ctx, query,
		date.UTC().Format(dateLayout), studySeconds, deepWorkSeconds, points)
	if err != nil {
		return fmt.Errorf("adding session to daily stats: %w", err)
	}
	return nil
}

func (r *SQLiteStatsRepo) ListRange(ctx context.Context, from, to time.Time) ([]*domain.DailyStudyStats, error) {
	query := `SELECT date, study_seconds, deep_work_seconds, session_count, points_earned
		FROM daily_study_stats WHERE date >= ? AND date < ? ORDER BY date`
	rows, err := r.conn.QueryContext(ctx, query,
		from.UTC().Format(dateLayout), to.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing daily stats: %w", err)
	}
	defer rows.Close()

	var stats []*domain.DailyStudyStats
	for rows.Next() {
		var s domain.DailyStudyStats
		var dateStr string
		if err := rows.Scan(&dateStr, &s.StudySeconds, &s.DeepWorkSeconds, &s.SessionCount, &s.PointsEarned); err != nil {
			return nil, fmt.Errorf("scanning daily stats row: %w", err)
		}
		s.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		stats = append(stats, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily stats: %w", err)
	}
	return stats, nil
}

// SQLiteWellbeingRepo implements WellbeingRepo using a SQLite database.
type SQLiteWellbeingRepo struct {
	conn db.DBTX
}

// NewSQLiteWellbeingRepo creates a new SQLiteWellbeingRepo.
func NewSQLiteWellbeingRepo(conn db.DBTX) *SQLiteWellbeingRepo {
	return &SQLiteWellbeingRepo{conn: conn}
}

// recommendationSeparator joins recommendation strings for storage.
// Recommendations never contain newlines.
const recommendationSeparator = "\n"

func (r *SQLiteWellbeingRepo) Get(ctx context.Context, date time.Time) (*domain.WellbeingMetric, error) {
	query := `SELECT date, study_hours, break_count, overdue_tasks, deep_work_sessions, score, recommendations
		FROM wellbeing_metrics WHERE date = ?`
	var m domain.WellbeingMetric
	var dateStr, recsStr string
	err := r.conn.QueryRowContext(ctx, query, date.UTC().Format(dateLayout)).Scan(
		&dateStr, &m.StudyHours, &m.BreakCount, &m.OverdueTasks, &m.DeepWorkSessions, &m.Score, &recsStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wellbeing metric: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wellbeing metric: %w", err)
	}
	m.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if recsStr != "" {
		m.Recommendations = strings.Split(recsStr, recommendationSeparator)
	}
	return &m, nil
}

func (r *SQLiteWellbeingRepo) Upsert(ctx context.Context, m *domain.WellbeingMetric) error {
	query := `INSERT INTO wellbeing_metrics (date, study_hours, break_count, overdue_tasks, deep_work_sessions, score, recommendations)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			study_hours = excluded.study_hours,
			break_count = excluded.break_count,
			overdue_tasks = excluded.overdue_tasks,
			deep_work_sessions = excluded.deep_work_sessions,
			score = excluded.score,
			recommendations = excluded.recommendations`
	_, err := r.conn.ExecContext(ctx, query,
		m.Date.UTC().Format(dateLayout),
		m.StudyHours,
		m.BreakCount,
		m.OverdueTasks,
		m.DeepWorkSessions,
		m.Score,
		strings.Join(m.Recommendations, recommendationSeparator),
	)
	if err != nil {
		return fmt.Errorf("upserting wellbeing metric: %w", err)
	}
	return nil
}
