package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const labReportColumns = `id, subject_code, title, due_date, deadline, status, created_at`

// SQLiteLabReportRepo implements LabReportRepo using a SQLite database.
type SQLiteLabReportRepo struct {
	conn db.DBTX
}

// NewSQLiteLabReportRepo creates a new SQLiteLabReportRepo.
func NewSQLiteLabReportRepo(conn db.DBTX) *SQLiteLabReportRepo {
	return &SQLiteLabReportRepo{conn: conn}
}

func (r *SQLiteLabReportRepo) Create(ctx context.Context, lr *domain.LabReport) error {
	query := `INSERT INTO lab_reports (` + labReportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		lr.ID,
		lr.SubjectCode,
		lr.Title,
		lr.DueDate.Format(dateLayout),
		lr.Deadline.Format(time.RFC3339),
		string(lr.Status),
		lr.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lab report: %w", err)
	}
	return nil
}

func (r *SQLiteLabReportRepo) GetByID(ctx context.Context, id string) (*domain.LabReport, error) {
	query := `SELECT ` + labReportColumns + ` FROM lab_reports WHERE id = ?`
	return r.scanLabReport(r.conn.QueryRowContext(ctx, query, id))
}

func (r *SQLiteLabReportRepo) Update(ctx context.Context, lr *domain.LabReport) error {
	query := `UPDATE lab_reports SET subject_code = ?, title = ?, due_date = ?, deadline = ?, status = ?
		WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		lr.SubjectCode,
		lr.Title,
		lr.DueDate.Format(dateLayout),
		lr.Deadline.Format(time.RFC3339),
		string(lr.Status),
		lr.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lab report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("lab report: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteLabReportRepo) ListUnsubmittedDueWithin(ctx context.Context, now time.Time, days int) ([]*domain.LabReport, error) {
	horizon := now.AddDate(0, 0, days)
	query := `SELECT ` + labReportColumns + ` FROM lab_reports
		WHERE status != 'submitted'
		  AND deadline <= ?
		ORDER BY deadline, id`
	rows, err := r.conn.QueryContext(ctx, query, horizon.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing lab reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.LabReport
	for rows.Next() {
		lr, err := r.scanLabReportRow(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lab reports: %w", err)
	}
	return reports, nil
}

func (r *SQLiteLabReportRepo) scanLabReport(row *sql.Row) (*domain.LabReport, error) {
	var lr domain.LabReport
	var dueStr, deadlineStr, statusStr, createdAtStr string
	err := row.Scan(&lr.ID, &lr.SubjectCode, &lr.Title, &dueStr, &deadlineStr, &statusStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lab report: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lab report: %w", err)
	}
	return populateLabReport(&lr, dueStr, deadlineStr, statusStr, createdAtStr)
}

func (r *SQLiteLabReportRepo) scanLabReportRow(rows *sql.Rows) (*domain.LabReport, error) {
	var lr domain.LabReport
	var dueStr, deadlineStr, statusStr, createdAtStr string
	if err := rows.Scan(&lr.ID, &lr.SubjectCode, &lr.Title, &dueStr, &deadlineStr, &statusStr, &createdAtStr); err != nil {
		return nil, fmt.Errorf("scanning lab report row: %w", err)
	}
	return populateLabReport(&lr, dueStr, deadlineStr, statusStr, createdAtStr)
}

func populateLabReport(lr *domain.LabReport, dueStr, deadlineStr, statusStr, createdAtStr string) (*domain.LabReport, error) {
	lr.Status = domain.LabReportStatus(statusStr)
	var err error
	lr.DueDate, err = time.Parse(dateLayout, dueStr)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	lr.Deadline, err = time.Parse(time.RFC3339, deadlineStr)
	if err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	lr.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return lr, nil
}
