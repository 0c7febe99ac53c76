package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const subjectColumns = `code, name, credits, type, color, created_at`

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	conn db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo.
func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{conn: conn}
}

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (` + subjectColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		s.Code,
		s.Name,
		s.Credits,
		string(s.Type),
		s.Color,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByCode(ctx context.Context, code string) (*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE code = ?`
	row := r.conn.QueryRowContext(ctx, query, code)
	return scanSubject(row)
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects ORDER BY code`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubjectRow(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM subjects WHERE code = ?`
	res, err := r.conn.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("subject: %w", ErrNotFound)
	}
	return nil
}

func scanSubject(row *sql.Row) (*domain.Subject, error) {
	var s domain.Subject
	var typeStr, createdAtStr string
	err := row.Scan(&s.Code, &s.Name, &s.Credits, &typeStr, &s.Color, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subject: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return populateSubject(&s, typeStr, createdAtStr)
}

func scanSubjectRow(rows *sql.Rows) (*domain.Subject, error) {
	var s domain.Subject
	var typeStr, createdAtStr string
	if err := rows.Scan(&s.Code, &s.Name, &s.Credits, &typeStr, &s.Color, &createdAtStr); err != nil {
		return nil, fmt.Errorf("scanning subject row: %w", err)
	}
	return populateSubject(&s, typeStr, createdAtStr)
}

func populateSubject(s *domain.Subject, typeStr, createdAtStr string) (*domain.Subject, error) {
	s.Type = domain.SubjectType(typeStr)
	var err error
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return s, nil
}
