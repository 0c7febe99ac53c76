package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

const notificationColumns = `id, type, priority, title, message, dedup_key, created_at, scheduled_for,
		sent_at, read_at, dismissed_at, expires_at, action_url, action_label, action_data`

// SQLiteNotificationRepo implements NotificationRepo using a SQLite database.
type SQLiteNotificationRepo struct {
	conn db.DBTX
}

// NewSQLiteNotificationRepo creates a new SQLiteNotificationRepo.
func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{conn: conn}
}

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		n.ID,
		string(n.Type),
		string(n.Priority),
		n.Title,
		n.Message,
		n.DedupKey,
		n.CreatedAt.Format(time.RFC3339),
		n.ScheduledFor.Format(time.RFC3339),
		nullableTimeToString(n.SentAt, time.RFC3339),
		nullableTimeToString(n.ReadAt, time.RFC3339),
		nullableTimeToString(n.DismissedAt, time.RFC3339),
		nullableTimeToString(n.ExpiresAt, time.RFC3339),
		n.ActionURL,
		n.ActionLabel,
		n.ActionData,
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`
	rows, err := r.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying notification: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying notification: %w", err)
		}
		return nil, fmt.Errorf("notification: %w", ErrNotFound)
	}
	return scanNotificationRow(rows)
}

func (r *SQLiteNotificationRepo) List(ctx context.Context, f NotificationFilter) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE dismissed_at IS NULL`
	var args []any
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.UnreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	return r.queryNotifications(ctx, query, args...)
}

func (r *SQLiteNotificationRepo) ListDeliverable(ctx context.Context, now time.Time) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE sent_at IS NULL AND dismissed_at IS NULL
			AND scheduled_for <= ?
			AND (expires_at IS NULL OR expires_at > ?)
		ORDER BY scheduled_for, id`
	nowStr := now.UTC().Format(time.RFC3339)
	return r.queryNotifications(ctx, query, nowStr, nowStr)
}

func (r *SQLiteNotificationRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	return r.stamp(ctx, `sent_at`, id, at)
}

func (r *SQLiteNotificationRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	return r.stamp(ctx, `read_at`, id, at)
}

func (r *SQLiteNotificationRepo) Dismiss(ctx context.Context, id string, at time.Time) error {
	return r.stamp(ctx, `dismissed_at`, id, at)
}

func (r *SQLiteNotificationRepo) stamp(ctx context.Context, column, id string, at time.Time) error {
	query := `UPDATE notifications SET ` + column + ` = ? WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query, at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("stamping notification %s: %w", column, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("notification: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteNotificationRepo) CountSentSince(ctx context.Context, typ domain.NotificationType, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE type = ? AND sent_at IS NOT NULL AND sent_at >= ?`
	var count int
	err := r.conn.QueryRowContext(ctx, query, string(typ), since.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sent notifications: %w", err)
	}
	return count, nil
}

func (r *SQLiteNotificationRepo) ExistsDedup(ctx context.Context, dedupKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM notifications WHERE dedup_key = ?)`
	var exists int
	if err := r.conn.QueryRowContext(ctx, query, dedupKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking dedup key: %w", err)
	}
	return exists == 1, nil
}

func (r *SQLiteNotificationRepo) GetPreference(ctx context.Context, typ domain.NotificationType) (*domain.NotificationPreference, error) {
	query := `SELECT type, enabled, quiet_hours_start, quiet_hours_end, frequency_limit, channels
		FROM notification_preferences WHERE type = ?`
	row := r.conn.QueryRowContext(ctx, query, string(typ))
	p, err := scanPreference(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("notification preference: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning notification preference: %w", err)
	}
	return p, nil
}

func (r *SQLiteNotificationRepo) UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error {
	query := `INSERT INTO notification_preferences (type, enabled, quiet_hours_start, quiet_hours_end, frequency_limit, channels)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(type) DO UPDATE SET
			enabled = excluded.enabled,
			quiet_hours_start = excluded.quiet_hours_start,
			quiet_hours_end = excluded.quiet_hours_end,
			frequency_limit = excluded.frequency_limit,
			channels = excluded.channels`
	_, err := r.conn.ExecContext(ctx, query,
		string(p.Type),
		boolToInt(p.Enabled),
		p.QuietHoursStart,
		p.QuietHoursEnd,
		p.FrequencyLimit,
		p.Channels,
	)
	if err != nil {
		return fmt.Errorf("upserting notification preference: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) ListPreferences(ctx context.Context) ([]*domain.NotificationPreference, error) {
	query := `SELECT type, enabled, quiet_hours_start, quiet_hours_end, frequency_limit, channels
		FROM notification_preferences ORDER BY type`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing notification preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*domain.NotificationPreference
	for rows.Next() {
		p, err := scanPreference(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning notification preference row: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification preferences: %w", err)
	}
	return prefs, nil
}

func scanPreference(scan func(dest ...any) error) (*domain.NotificationPreference, error) {
	var p domain.NotificationPreference
	var typeStr string
	var enabledInt int
	if err := scan(&typeStr, &enabledInt, &p.QuietHoursStart, &p.QuietHoursEnd, &p.FrequencyLimit, &p.Channels); err != nil {
		return nil, err
	}
	p.Type = domain.NotificationType(typeStr)
	p.Enabled = intToBool(enabledInt)
	return &p, nil
}

func (r *SQLiteNotificationRepo) queryNotifications(ctx context.Context, query string, args ...any) ([]*domain.Notification, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifs []*domain.Notification
	for rows.Next() {
		n, err := scanNotificationRow(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return notifs, nil
}

func scanNotificationRow(rows *sql.Rows) (*domain.Notification, error) {
	var n domain.Notification
	var typeStr, priorityStr, createdAtStr, scheduledForStr string
	var sentAtStr, readAtStr, dismissedAtStr, expiresAtStr sql.NullString

	err := rows.Scan(
		&n.ID, &typeStr, &priorityStr, &n.Title, &n.Message, &n.DedupKey,
		&createdAtStr, &scheduledForStr,
		&sentAtStr, &readAtStr, &dismissedAtStr, &expiresAtStr,
		&n.ActionURL, &n.ActionLabel, &n.ActionData,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning notification row: %w", err)
	}
	n.Type = domain.NotificationType(typeStr)
	n.Priority = domain.NotificationPriority(priorityStr)
	n.SentAt = parseNullableTime(sentAtStr, time.RFC3339)
	n.ReadAt = parseNullableTime(readAtStr, time.RFC3339)
	n.DismissedAt = parseNullableTime(dismissedAtStr, time.RFC3339)
	n.ExpiresAt = parseNullableTime(expiresAtStr, time.RFC3339)
	n.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	n.ScheduledFor, err = time.Parse(time.RFC3339, scheduledForStr)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled_for: %w", err)
	}
	return &n, nil
}
