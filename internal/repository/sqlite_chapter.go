package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const chapterColumns = `id, subject_code, number, title, created_at`

// SQLiteChapterRepo implements ChapterRepo using a SQLite database.
type SQLiteChapterRepo struct {
	conn db.DBTX
}

// NewSQLiteChapterRepo creates a new SQLiteChapterRepo.
func NewSQLiteChapterRepo(conn db.DBTX) *SQLiteChapterRepo {
	return &SQLiteChapterRepo{conn: conn}
}

func (r *SQLiteChapterRepo) Create(ctx context.Context, c *domain.Chapter) error {
	query := `INSERT INTO chapters (` + chapterColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		c.ID,
		c.SubjectCode,
		c.Number,
		c.Title,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chapter: %w", err)
	}
	return nil
}

func (r *SQLiteChapterRepo) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = ?`
	return r.scanChapter(r.conn.QueryRowContext(ctx, query, id))
}

func (r *SQLiteChapterRepo) GetByNumber(ctx context.Context, subjectCode string, number int) (*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE subject_code = ? AND number = ?`
	return r.scanChapter(r.conn.QueryRowContext(ctx, query, subjectCode, number))
}

func (r *SQLiteChapterRepo) ListBySubject(ctx context.Context, subjectCode string) ([]*domain.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE subject_code = ? ORDER BY number`
	rows, err := r.conn.QueryContext(ctx, query, subjectCode)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*domain.Chapter
	for rows.Next() {
		var c domain.Chapter
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.SubjectCode, &c.Number, &c.Title, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		chapters = append(chapters, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chapters: %w", err)
	}
	return chapters, nil
}

func (r *SQLiteChapterRepo) GetProgress(ctx context.Context, chapterID string) (*domain.ChapterProgress, error) {
	query := `SELECT chapter_id, reading_status, assignment_status, mastery_level, revision_count, updated_at
		FROM chapter_progress WHERE chapter_id = ?`
	var p domain.ChapterProgress
	var readingStr, assignmentStr, updatedAtStr string
	err := r.conn.QueryRowContext(ctx, query, chapterID).Scan(
		&p.ChapterID, &readingStr, &assignmentStr, &p.MasteryLevel, &p.RevisionCount, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("chapter progress: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chapter progress: %w", err)
	}
	p.ReadingStatus = domain.ReadingStatus(readingStr)
	p.AssignmentStatus = domain.AssignmentStatus(assignmentStr)
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteChapterRepo) UpsertProgress(ctx context.Context, p *domain.ChapterProgress) error {
	query := `INSERT INTO chapter_progress (chapter_id, reading_status, assignment_status, mastery_level, revision_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chapter_id) DO UPDATE SET
			reading_status = excluded.reading_status,
			assignment_status = excluded.assignment_status,
			mastery_level = excluded.mastery_level,
			revision_count = excluded.revision_count,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query,
		p.ChapterID,
		string(p.ReadingStatus),
		string(p.AssignmentStatus),
		p.MasteryLevel,
		p.RevisionCount,
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting chapter progress: %w", err)
	}
	return nil
}

func (r *SQLiteChapterRepo) scanChapter(row *sql.Row) (*domain.Chapter, error) {
	var c domain.Chapter
	var createdAtStr string
	err := row.Scan(&c.ID, &c.SubjectCode, &c.Number, &c.Title, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("chapter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chapter: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
