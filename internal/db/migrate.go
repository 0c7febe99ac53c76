package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		code       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		credits    INTEGER NOT NULL CHECK(credits BETWEEN 1 AND 6),
		type       TEXT NOT NULL DEFAULT 'concept_heavy'
		           CHECK(type IN ('practice_heavy','concept_heavy')),
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id           TEXT PRIMARY KEY,
		subject_code TEXT NOT NULL REFERENCES subjects(code) ON DELETE CASCADE,
		number       INTEGER NOT NULL CHECK(number > 0),
		title        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		UNIQUE(subject_code, number)
	)`,

	`CREATE TABLE IF NOT EXISTS chapter_progress (
		chapter_id        TEXT PRIMARY KEY REFERENCES chapters(id) ON DELETE CASCADE,
		reading_status    TEXT NOT NULL DEFAULT 'not_started'
		                  CHECK(reading_status IN ('not_started','in_progress','completed')),
		assignment_status TEXT NOT NULL DEFAULT 'locked'
		                  CHECK(assignment_status IN ('locked','available','in_progress','submitted')),
		mastery_level     INTEGER NOT NULL DEFAULT 0 CHECK(mastery_level BETWEEN 0 AND 100),
		revision_count    INTEGER NOT NULL DEFAULT 0,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		subject_code    TEXT REFERENCES subjects(code) ON DELETE SET NULL,
		priority        INTEGER NOT NULL DEFAULT 5 CHECK(priority BETWEEN 1 AND 10),
		duration_min    INTEGER NOT NULL CHECK(duration_min > 0),
		task_type       TEXT NOT NULL DEFAULT 'study'
		                CHECK(task_type IN ('study','revision','practice','assignment','lab_work','break','free_time')),
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_progress','completed','cancelled')),
		is_deep_work    INTEGER NOT NULL DEFAULT 0,
		scheduled_start TEXT,
		scheduled_end   TEXT,
		due_date        TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_scheduled ON tasks(scheduled_start)`,

	`CREATE TABLE IF NOT EXISTS lab_reports (
		id           TEXT PRIMARY KEY,
		subject_code TEXT NOT NULL REFERENCES subjects(code) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		due_date     TEXT NOT NULL,
		deadline     TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','drafting','submitted')),
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS revisions (
		id              TEXT PRIMARY KEY,
		chapter_id      TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		revision_number INTEGER NOT NULL CHECK(revision_number > 0),
		due_date        TEXT NOT NULL,
		completed       INTEGER NOT NULL DEFAULT 0,
		completed_at    TEXT,
		points_earned   INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_revisions_due ON revisions(due_date, completed)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id               TEXT PRIMARY KEY,
		subject_code     TEXT,
		chapter_id       TEXT,
		title            TEXT NOT NULL DEFAULT '',
		started_at       TEXT NOT NULL,
		stopped_at       TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		is_deep_work     INTEGER NOT NULL DEFAULT 0,
		points_earned    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_started ON study_sessions(started_at)`,

	// Register cell pointing at the single open session, if any.
	`CREATE TABLE IF NOT EXISTS active_timer (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		session_id TEXT REFERENCES study_sessions(id) ON DELETE SET NULL
	)`,
	`INSERT OR IGNORE INTO active_timer (id, session_id) VALUES ('default', NULL)`,

	`CREATE TABLE IF NOT EXISTS session_effectiveness (
		id               TEXT PRIMARY KEY,
		session_id       TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		subject_code     TEXT,
		time_of_day      TEXT NOT NULL,
		day_of_week      INTEGER NOT NULL,
		duration_min     INTEGER NOT NULL DEFAULT 0,
		focus_score      REAL NOT NULL DEFAULT 0.5 CHECK(focus_score BETWEEN 0 AND 1),
		energy_level     INTEGER NOT NULL DEFAULT 5,
		material_covered TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	// Empty subject_code is the global pattern across all subjects.
	`CREATE TABLE IF NOT EXISTS learning_patterns (
		subject_code        TEXT PRIMARY KEY DEFAULT '',
		avg_duration_min    REAL NOT NULL DEFAULT 0,
		best_study_time     TEXT NOT NULL DEFAULT '',
		effectiveness_score REAL NOT NULL DEFAULT 0,
		samples_count       INTEGER NOT NULL DEFAULT 0,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_study_stats (
		date              TEXT PRIMARY KEY,
		study_seconds     INTEGER NOT NULL DEFAULT 0,
		deep_work_seconds INTEGER NOT NULL DEFAULT 0,
		session_count     INTEGER NOT NULL DEFAULT 0,
		points_earned     INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS wellbeing_metrics (
		date               TEXT PRIMARY KEY,
		study_hours        REAL NOT NULL DEFAULT 0,
		break_count        INTEGER NOT NULL DEFAULT 0,
		overdue_tasks      INTEGER NOT NULL DEFAULT 0,
		deep_work_sessions INTEGER NOT NULL DEFAULT 0,
		score              REAL NOT NULL DEFAULT 0 CHECK(score BETWEEN 0 AND 1),
		recommendations    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS break_sessions (
		id                     TEXT PRIMARY KEY,
		break_type             TEXT NOT NULL
		                       CHECK(break_type IN ('short','pomodoro','meal','exercise','meditation','walk','long')),
		started_at             TEXT NOT NULL,
		ended_at               TEXT,
		suggested_duration_min INTEGER NOT NULL DEFAULT 0,
		actual_duration_min    INTEGER NOT NULL DEFAULT 0,
		was_completed          INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS pomodoro_status (
		id               TEXT PRIMARY KEY DEFAULT 'default',
		phase            TEXT NOT NULL DEFAULT 'idle'
		                 CHECK(phase IN ('idle','work','short_break','long_break')),
		cycles_completed INTEGER NOT NULL DEFAULT 0,
		phase_started_at TEXT
	)`,
	`INSERT OR IGNORE INTO pomodoro_status (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS user_streak (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		total_points   INTEGER NOT NULL DEFAULT 0,
		last_activity  TEXT
	)`,
	`INSERT OR IGNORE INTO user_streak (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id            TEXT PRIMARY KEY,
		type          TEXT NOT NULL
		              CHECK(type IN ('reminder','achievement','suggestion','warning','deadline','break','motivation')),
		priority      TEXT NOT NULL DEFAULT 'normal'
		              CHECK(priority IN ('low','normal','high','urgent')),
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
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_type_sent ON notifications(type, sent_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_dedup ON notifications(dedup_key) WHERE dedup_key != ''`,

	`CREATE TABLE IF NOT EXISTS notification_preferences (
		type              TEXT PRIMARY KEY
		                  CHECK(type IN ('reminder','achievement','suggestion','warning','deadline','break','motivation')),
		enabled           INTEGER NOT NULL DEFAULT 1,
		quiet_hours_start TEXT NOT NULL DEFAULT '',
		quiet_hours_end   TEXT NOT NULL DEFAULT '',
		frequency_limit   INTEGER NOT NULL DEFAULT 0,
		channels          TEXT NOT NULL DEFAULT 'in_app'
	)`,

	// Achievement definitions live in code; this table tracks progress only.
	`CREATE TABLE IF NOT EXISTS user_achievements (
		code           TEXT PRIMARY KEY,
		progress_value INTEGER NOT NULL DEFAULT 0,
		is_complete    INTEGER NOT NULL DEFAULT 0,
		earned_at      TEXT,
		notified       INTEGER NOT NULL DEFAULT 0,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS guidelines (
		id         TEXT PRIMARY KEY,
		rule       TEXT NOT NULL,
		priority   INTEGER NOT NULL DEFAULT 5 CHECK(priority BETWEEN 1 AND 10),
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS memory_facts (
		category   TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (category, key)
	)`,

	// Free-form payload for notification actions, added after the v1 shape.
	`ALTER TABLE notifications ADD COLUMN action_data TEXT NOT NULL DEFAULT ''`,
}
