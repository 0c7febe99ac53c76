package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const revisionColumns = `id, chapter_id, revision_number, due_date, completed, completed_at, points_earned, created_at`

// SQLiteRevisionRepo implements RevisionRepo using a SQLite database.
type SQLiteRevisionRepo struct {
	conn db.DBTX
}

// NewSQLiteRevisionRepo creates a new SQLiteRevisionRepo.
func NewSQLiteRevisionRepo(conn db.DBTX) *SQLiteRevisionRepo {
	return &SQLiteRevisionRepo{conn: conn}
}

func (r *SQLiteRevisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	query := `INSERT INTO revisions (` + revisionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		rev.ID,
		rev.ChapterID,
		rev.RevisionNumber,
		rev.DueDate.Format(dateLayout),
		boolToInt(rev.Completed),
		nullableTimeToString(rev.CompletedAt, time.RFC3339),
		rev.PointsEarned,
		rev.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting revision: %w", err)
	}
	return nil
}

func (r *SQLiteRevisionRepo) GetByID(ctx context.Context, id string) (*domain.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var rev domain.Revision
	var dueStr, createdAtStr string
	var completedAtStr sql.NullString
	var completedInt int
	err := row.Scan(&rev.ID, &rev.ChapterID, &rev.RevisionNumber, &dueStr, &completedInt, &completedAtStr, &rev.PointsEarned, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("revision: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning revision: %w", err)
	}
	return populateRevision(&rev, dueStr, completedInt, completedAtStr, createdAtStr)
}

func (r *SQLiteRevisionRepo) Update(ctx context.Context, rev *domain.Revision) error {
	query := `UPDATE revisions SET due_date = ?, completed = ?, completed_at = ?, points_earned = ?
		WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		rev.DueDate.Format(dateLayout),
		boolToInt(rev.Completed),
		nullableTimeToString(rev.CompletedAt, time.RFC3339),
		rev.PointsEarned,
		rev.ID,
	)
	if err != nil {
		return fmt.Errorf("updating revision: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("revision: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteRevisionRepo) ListByChapter(ctx context.Context, chapterID string) ([]*domain.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE chapter_id = ? ORDER BY revision_number`
	rows, err := r.conn.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("listing revisions by chapter: %w", err)
	}
	defer rows.Close()

	var revisions []*domain.Revision
	for rows.Next() {
		var rev domain.Revision
		var dueStr, createdAtStr string
		var completedAtStr sql.NullString
		var completedInt int
		if err := rows.Scan(&rev.ID, &rev.ChapterID, &rev.RevisionNumber, &dueStr, &completedInt, &completedAtStr, &rev.PointsEarned, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning revision row: %w", err)
		}
		populated, err := populateRevision(&rev, dueStr, completedInt, completedAtStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return revisions, nil
}

func (r *SQLiteRevisionRepo) ListPendingDue(ctx context.Context, asOf time.Time) ([]PendingRevision, error) {
	query := `SELECT r.id, r.chapter_id, r.revision_number, r.due_date, r.completed, r.completed_at,
			r.points_earned, r.created_at,
			c.number, s.code, s.credits, s.type
		FROM revisions r
		JOIN chapters c ON r.chapter_id = c.id
		JOIN subjects s ON c.subject_code = s.code
		WHERE r.completed = 0 AND r.due_date <= ?
		ORDER BY r.due_date, s.credits DESC, r.id`
	rows, err := r.conn.QueryContext(ctx, query, asOf.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing pending revisions: %w", err)
	}
	defer rows.Close()

	var pending []PendingRevision
	for rows.Next() {
		var rev domain.Revision
		var dueStr, createdAtStr string
		var completedAtStr sql.NullString
		var completedInt int
		var p PendingRevision
		var typeStr string

		err := rows.Scan(
			&rev.ID, &rev.ChapterID, &rev.RevisionNumber, &dueStr, &completedInt, &completedAtStr,
			&rev.PointsEarned, &createdAtStr,
			&p.ChapterNumber, &p.SubjectCode, &p.SubjectCredits, &typeStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pending revision: %w", err)
		}
		populated, err := populateRevision(&rev, dueStr, completedInt, completedAtStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		p.Revision = *populated
		p.SubjectType = domain.SubjectType(typeStr)
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending revisions: %w", err)
	}
	return pending, nil
}

func (r *SQLiteRevisionRepo) CountFullyRevisedChapters(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM (
		SELECT chapter_id FROM revisions
		GROUP BY chapter_id
		HAVING COUNT(*) > 0 AND SUM(CASE WHEN completed = 0 THEN 1 ELSE 0 END) = 0
	)`
	var count int
	if err := r.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting fully revised chapters: %w", err)
	}
	return count, nil
}

func populateRevision(rev *domain.Revision, dueStr string, completedInt int, completedAtStr sql.NullString, createdAtStr string) (*domain.Revision, error) {
	rev.Completed = intToBool(completedInt)
	rev.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	var err error
	rev.DueDate, err = time.Parse(dateLayout, dueStr)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	rev.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return rev, nil
}
