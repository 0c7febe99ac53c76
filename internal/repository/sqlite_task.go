package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, subject_code, priority, duration_min, task_type, status,
		is_deep_work, scheduled_start, scheduled_end, due_date, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.Title,
		nullableStrToValue(t.SubjectCode),
		t.Priority,
		t.DurationMin,
		string(t.TaskType),
		string(t.Status),
		boolToInt(t.IsDeepWork),
		nullableTimeToString(t.ScheduledStart, time.RFC3339),
		nullableTimeToString(t.ScheduledEnd, time.RFC3339),
		nullableTimeToString(t.DueDate, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return r.scanTask(r.conn.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, subject_code = ?, priority = ?, duration_min = ?,
		task_type = ?, status = ?, is_deep_work = ?, scheduled_start = ?, scheduled_end = ?,
		due_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		t.Title,
		nullableStrToValue(t.SubjectCode),
		t.Priority,
		t.DurationMin,
		string(t.TaskType),
		string(t.Status),
		boolToInt(t.IsDeepWork),
		nullableTimeToString(t.ScheduledStart, time.RFC3339),
		nullableTimeToString(t.ScheduledEnd, time.RFC3339),
		nullableTimeToString(t.DueDate, time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = ? ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing tasks by status: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListPlacedInRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE scheduled_start IS NOT NULL
		  AND status != 'cancelled'
		  AND scheduled_start >= ? AND scheduled_start < ?
		ORDER BY scheduled_start, id`
	rows, err := r.conn.QueryContext(ctx, query,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing placed tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE due_date IS NOT NULL
		  AND status IN ('pending', 'in_progress')
		  AND due_date >= ? AND due_date < ?
		ORDER BY due_date, id`
	rows, err := r.conn.QueryContext(ctx, query,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing tasks due in range: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM tasks
		WHERE due_date IS NOT NULL
		  AND status IN ('pending', 'in_progress')
		  AND due_date < ?`
	var count int
	if err := r.conn.QueryRowContext(ctx, query, now.UTC().Format(time.RFC3339)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting overdue tasks: %w", err)
	}
	return count, nil
}

func (r *SQLiteTaskRepo) CountCompleted(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE status = 'completed'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting completed tasks: %w", err)
	}
	return count, nil
}

func (r *SQLiteTaskRepo) AnyOverlapping(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM tasks
		WHERE scheduled_start IS NOT NULL
		  AND status != 'cancelled'
		  AND id != ?
		  AND scheduled_start < ? AND scheduled_end > ?`
	var count int
	err := r.conn.QueryRowContext(ctx, query,
		excludeID, end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking task overlap: %w", err)
	}
	return count > 0, nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var subjectStr, schedStartStr, schedEndStr, dueDateStr sql.NullString
	var typeStr, statusStr, createdAtStr, updatedAtStr string
	var deepWorkInt int

	err := row.Scan(
		&t.ID, &t.Title, &subjectStr, &t.Priority, &t.DurationMin, &typeStr, &statusStr,
		&deepWorkInt, &schedStartStr, &schedEndStr, &dueDateStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, subjectStr, typeStr, statusStr, schedStartStr, schedEndStr, dueDateStr, deepWorkInt, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var subjectStr, schedStartStr, schedEndStr, dueDateStr sql.NullString
		var typeStr, statusStr, createdAtStr, updatedAtStr string
		var deepWorkInt int

		err := rows.Scan(
			&t.ID, &t.Title, &subjectStr, &t.Priority, &t.DurationMin, &typeStr, &statusStr,
			&deepWorkInt, &schedStartStr, &schedEndStr, &dueDateStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := r.populateTask(&t, subjectStr, typeStr, statusStr, schedStartStr, schedEndStr, dueDateStr, deepWorkInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	subjectStr sql.NullString,
	typeStr, statusStr string,
	schedStartStr, schedEndStr, dueDateStr sql.NullString,
	deepWorkInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.SubjectCode = parseNullableStr(subjectStr)
	t.TaskType = domain.TaskType(typeStr)
	t.Status = domain.TaskStatus(statusStr)
	t.IsDeepWork = intToBool(deepWorkInt)
	t.ScheduledStart = parseNullableTime(schedStartStr, time.RFC3339)
	t.ScheduledEnd = parseNullableTime(schedEndStr, time.RFC3339)
	t.DueDate = parseNullableTime(dueDateStr, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
