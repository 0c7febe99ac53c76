package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations a second time must be a no-op.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"subjects", "chapters", "chapter_progress", "tasks", "lab_reports",
		"revisions", "study_sessions", "active_timer", "session_effectiveness",
		"learning_patterns", "daily_study_stats", "wellbeing_metrics",
		"break_sessions", "pomodoro_status", "user_streak", "notifications",
		"notification_preferences", "user_achievements", "guidelines",
		"memory_facts",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_tasks_status",
		"idx_tasks_scheduled",
		"idx_revisions_due",
		"idx_sessions_started",
		"idx_notifications_type_sent",
		"idx_notifications_dedup",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_SeedsRegisters(t *testing.T) {
	db := openTestDB(t)

	var sessionID sql.NullString
	err := db.QueryRow(`SELECT session_id FROM active_timer WHERE id = 'default'`).Scan(&sessionID)
	require.NoError(t, err)
	assert.False(t, sessionID.Valid, "fresh timer register should be empty")

	var phase string
	err = db.QueryRow(`SELECT phase FROM pomodoro_status WHERE id = 'default'`).Scan(&phase)
	require.NoError(t, err)
	assert.Equal(t, "idle", phase)

	var current, longest int
	err = db.QueryRow(`SELECT current_streak, longest_streak FROM user_streak WHERE id = 'default'`).Scan(&current, &longest)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestMigrate_SubjectCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO subjects (code, name, credits, type, created_at)
		VALUES ('MATH101', 'Calculus I', 9, 'concept_heavy', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "credits outside 1-6 should be rejected")

	_, err = db.Exec(`INSERT INTO subjects (code, name, credits, type, created_at)
		VALUES ('MATH101', 'Calculus I', 4, 'mystery', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown subject type should be rejected")

	_, err = db.Exec(`INSERT INTO subjects (code, name, credits, type, created_at)
		VALUES ('MATH101', 'Calculus I', 4, 'concept_heavy', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_ChapterNumberUniquePerSubject(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO subjects (code, name, credits, type, created_at)
		VALUES ('MATH101', 'Calculus I', 4, 'concept_heavy', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO chapters (id, subject_code, number, title, created_at)
		VALUES ('c1', 'MATH101', 3, 'Limits', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO chapters (id, subject_code, number, title, created_at)
		VALUES ('c2', 'MATH101', 3, 'Duplicate', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "duplicate chapter number within a subject should be rejected")
}

func TestMigrate_TaskCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, title, priority, duration_min, task_type, status, created_at, updated_at)
		VALUES ('t1', 'Bad', 5, 0, 'study', 'pending', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "zero duration should be rejected")

	_, err = db.Exec(`INSERT INTO tasks (id, title, priority, duration_min, task_type, status, created_at, updated_at)
		VALUES ('t1', 'Bad', 5, 30, 'chores', 'pending', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown task type should be rejected")

	_, err = db.Exec(`INSERT INTO tasks (id, title, priority, duration_min, task_type, status, created_at, updated_at)
		VALUES ('t1', 'Good', 5, 30, 'study', 'pending', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_NotificationDedupPartialUniqueIndex(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO notifications (id, type, priority, title, dedup_key, created_at, scheduled_for)
		VALUES (?, 'reminder', 'normal', 'Reminder', ?, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`

	// Empty dedup keys may repeat; non-empty ones may not.
	_, err := db.Exec(insert, "n1", "")
	require.NoError(t, err)
	_, err = db.Exec(insert, "n2", "")
	require.NoError(t, err)

	_, err = db.Exec(insert, "n3", "reminder:task:t1:2026-01-01")
	require.NoError(t, err)
	_, err = db.Exec(insert, "n4", "reminder:task:t1:2026-01-01")
	assert.Error(t, err)
}

func TestMigrate_UpgradesLegacyNotifications(t *testing.T) {
	// A database created before the action_data column existed must come
	// out of Migrate with the column added and its rows intact.
	legacy, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { legacy.Close() })

	_, err = legacy.Exec(`CREATE TABLE notifications (
		id            TEXT PRIMARY KEY,
		type          TEXT NOT NULL,
		priority      TEXT NOT NULL DEFAULT 'normal',
		title         TEXT NOT NULL,
		message       TEXT NOT NULL DEFAULT '',
		dedup_key     TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		scheduled_for TEXT NOT NULL,
		sent_at       TEXT,
		read_at       TEXT,
		dismissed_at  TEXT,
		expires_at    TEXT,
		action_url    TEXT NOT NULL DEFAULT '',
		action_label  TEXT NOT NULL DEFAULT ''
	)`)
	require.NoError(t, err)

	_, err = legacy.Exec(`INSERT INTO notifications (id, type, title, created_at, scheduled_for)
		VALUES ('n1', 'reminder', 'Old reminder', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(legacy))

	var title, actionData string
	err = legacy.QueryRow(`SELECT title, action_data FROM notifications WHERE id = 'n1'`).Scan(&title, &actionData)
	require.NoError(t, err)
	assert.Equal(t, "Old reminder", title)
	assert.Equal(t, "", actionData)

	require.NoError(t, Migrate(legacy))
}
