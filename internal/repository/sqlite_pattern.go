package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// SQLitePatternRepo implements PatternRepo using a SQLite database. The
// empty subject_code row holds the global pattern.
type SQLitePatternRepo struct {
	conn db.DBTX
}

// NewSQLitePatternRepo creates a new SQLitePatternRepo.
func NewSQLitePatternRepo(conn db.DBTX) *SQLitePatternRepo {
	return &SQLitePatternRepo{conn: conn}
}

func (r *SQLitePatternRepo) Get(ctx context.Context, subjectCode *string) (*domain.LearningPattern, error) {
	query := `SELECT subject_code, avg_duration_min, best_study_time, effectiveness_score, samples_count, updated_at
		FROM learning_patterns WHERE subject_code = ?`
	row := r.conn.QueryRowContext(ctx, query, subjectKey(subjectCode))
	p, err := scanPattern(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("learning pattern: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning learning pattern: %w", err)
	}
	return p, nil
}

func (r *SQLitePatternRepo) Upsert(ctx context.Context, p *domain.LearningPattern) error {
	query := `INSERT INTO learning_patterns (subject_code, avg_duration_min, best_study_time, effectiveness_score, samples_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_code) DO UPDATE SET
			avg_duration_min = excluded.avg_duration_min,
			best_study_time = excluded.best_study_time,
			effectiveness_score = excluded.effectiveness_score,
			samples_count = excluded.samples_count,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query,
		subjectKey(p.SubjectCode),
		p.AvgDurationMin,
		string(p.BestStudyTime),
		p.EffectivenessScore,
		p.SamplesCount,
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting learning pattern: %w", err)
	}
	return nil
}

func (r *SQLitePatternRepo) List(ctx context.Context) ([]*domain.LearningPattern, error) {
	query := `SELECT subject_code, avg_duration_min, best_study_time, effectiveness_score, samples_count, updated_at
		FROM learning_patterns ORDER BY subject_code`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing learning patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*domain.LearningPattern
	for rows.Next() {
		p, err := scanPattern(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning learning pattern row: %w", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating learning patterns: %w", err)
	}
	return patterns, nil
}

func scanPattern(scan func(dest ...any) error) (*domain.LearningPattern, error) {
	var p domain.LearningPattern
	var codeStr, bestStr, updatedAtStr string
	if err := scan(&codeStr, &p.AvgDurationMin, &bestStr, &p.EffectivenessScore, &p.SamplesCount, &updatedAtStr); err != nil {
		return nil, err
	}
	if codeStr != "" {
		p.SubjectCode = &codeStr
	}
	p.BestStudyTime = domain.TimeOfDay(bestStr)
	var err error
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

// subjectKey maps a nil subject pointer to the global row's empty key.
func subjectKey(subjectCode *string) string {
	if subjectCode == nil {
		return ""
	}
	return *subjectCode
}

const effectivenessColumns = `id, session_id, subject_code, time_of_day, day_of_week,
		duration_min, focus_score, energy_level, material_covered, created_at`

// SQLiteEffectivenessRepo implements EffectivenessRepo using a SQLite
// database.
type SQLiteEffectivenessRepo struct {
	conn db.DBTX
}

// NewSQLiteEffectivenessRepo creates a new SQLiteEffectivenessRepo.
func NewSQLiteEffectivenessRepo(conn db.DBTX) *SQLiteEffectivenessRepo {
	return &SQLiteEffectivenessRepo{conn: conn}
}

func (r *SQLiteEffectivenessRepo) Create(ctx context.Context, e *domain.SessionEffectiveness) error {
	query := `INSERT INTO session_effectiveness (` + effectivenessColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		nullableStrToValue(e.SubjectCode),
		string(e.TimeOfDay),
		int(e.DayOfWeek),
		e.DurationMin,
		e.FocusScore,
		e.EnergyLevel,
		e.MaterialCovered,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session effectiveness: %w", err)
	}
	return nil
}

func (r *SQLiteEffectivenessRepo) ListBySubject(ctx context.Context, subjectCode *string) ([]*domain.SessionEffectiveness, error) {
	query := `SELECT ` + effectivenessColumns + ` FROM session_effectiveness`
	var args []any
	if subjectCode != nil {
		query += ` WHERE subject_code = ?`
		args = append(args, *subjectCode)
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing session effectiveness: %w", err)
	}
	defer rows.Close()

	var samples []*domain.SessionEffectiveness
	for rows.Next() {
		var e domain.SessionEffectiveness
		var subjectStr sql.NullString
		var todStr, createdAtStr string
		var dow int
		err := rows.Scan(
			&e.ID, &e.SessionID, &subjectStr, &todStr, &dow,
			&e.DurationMin, &e.FocusScore, &e.EnergyLevel, &e.MaterialCovered, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session effectiveness row: %w", err)
		}
		e.SubjectCode = parseNullableStr(subjectStr)
		e.TimeOfDay = domain.TimeOfDay(todStr)
		e.DayOfWeek = time.Weekday(dow)
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		samples = append(samples, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session effectiveness: %w", err)
	}
	return samples, nil
}

func (r *SQLiteEffectivenessRepo) FocusByTimeOfDay(ctx context.Context, subjectCode *string) (map[domain.TimeOfDay]float64, error) {
	query := `SELECT time_of_day, AVG(focus_score) FROM session_effectiveness`
	var args []any
	if subjectCode != nil {
		query += ` WHERE subject_code = ?`
		args = append(args, *subjectCode)
	}
	query += ` GROUP BY time_of_day`
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregating focus by time of day: %w", err)
	}
	defer rows.Close()

	focus := make(map[domain.TimeOfDay]float64)
	for rows.Next() {
		var todStr string
		var avg float64
		if err := rows.Scan(&todStr, &avg); err != nil {
			return nil, fmt.Errorf("scanning focus aggregate: %w", err)
		}
		focus[domain.TimeOfDay(todStr)] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus aggregates: %w", err)
	}
	return focus, nil
}
