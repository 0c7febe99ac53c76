package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// SubjectRepo provides access to subjects.
type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByCode(ctx context.Context, code string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	Delete(ctx context.Context, code string) error
}

// ChapterRepo provides access to chapters and their progress rows.
type ChapterRepo interface {
	Create(ctx context.Context, c *domain.Chapter) error
	GetByID(ctx context.Context, id string) (*domain.Chapter, error)
	GetByNumber(ctx context.Context, subjectCode string, number int) (*domain.Chapter, error)
	ListBySubject(ctx context.Context, subjectCode string) ([]*domain.Chapter, error)

	GetProgress(ctx context.Context, chapterID string) (*domain.ChapterProgress, error)
	UpsertProgress(ctx context.Context, p *domain.ChapterProgress) error
}

// TaskRepo provides access to tasks, including the range queries the
// placer and timeline builder run.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error

	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	ListPlacedInRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
	ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
	CountCompleted(ctx context.Context) (int, error)
	// AnyOverlapping reports whether a non-cancelled placed task other
	// than excludeID intersects [start, end).
	AnyOverlapping(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
}

// LabReportRepo provides access to lab reports.
type LabReportRepo interface {
	Create(ctx context.Context, r *domain.LabReport) error
	GetByID(ctx context.Context, id string) (*domain.LabReport, error)
	Update(ctx context.Context, r *domain.LabReport) error
	ListUnsubmittedDueWithin(ctx context.Context, now time.Time, days int) ([]*domain.LabReport, error)
}

// PendingRevision is a joined view of a revision with its chapter and
// subject context, ordered for the placer's pending set.
type PendingRevision struct {
	Revision       domain.Revision
	ChapterNumber  int
	SubjectCode    string
	SubjectCredits int
	SubjectType    domain.SubjectType
}

// RevisionRepo provides access to the spaced-repetition queue.
type RevisionRepo interface {
	Create(ctx context.Context, r *domain.Revision) error
	GetByID(ctx context.Context, id string) (*domain.Revision, error)
	Update(ctx context.Context, r *domain.Revision) error
	ListByChapter(ctx context.Context, chapterID string) ([]*domain.Revision, error)
	// ListPendingDue returns uncompleted revisions with due_date <= asOf,
	// ordered by (due_date, subject credits desc).
	ListPendingDue(ctx context.Context, asOf time.Time) ([]PendingRevision, error)
	// CountFullyRevisedChapters counts chapters that have at least one
	// revision and no uncompleted ones.
	CountFullyRevisedChapters(ctx context.Context) (int, error)
}

// SessionRepo provides access to study sessions and the active-timer
// register cell.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	Update(ctx context.Context, s *domain.StudySession) error
	ListInWindow(ctx context.Context, from, to time.Time) ([]*domain.StudySession, error)
	CountDeepWork(ctx context.Context) (int, error)

	// GetActive returns the open session, or ErrNotFound when no timer
	// is running.
	GetActive(ctx context.Context) (*domain.StudySession, error)
	SetActive(ctx context.Context, sessionID string) error
	ClearActive(ctx context.Context) error
}

// EffectivenessRepo stores per-session effectiveness samples.
type EffectivenessRepo interface {
	Create(ctx context.Context, e *domain.SessionEffectiveness) error
	ListBySubject(ctx context.Context, subjectCode *string) ([]*domain.SessionEffectiveness, error)
	// FocusByTimeOfDay returns the mean focus score per time-of-day
	// bucket for a subject (nil for the global aggregate).
	FocusByTimeOfDay(ctx context.Context, subjectCode *string) (map[domain.TimeOfDay]float64, error)
}

// PatternRepo caches the running learning-pattern aggregates.
type PatternRepo interface {
	// Get returns the pattern for a subject (nil for global), or
	// ErrNotFound before the first sample.
	Get(ctx context.Context, subjectCode *string) (*domain.LearningPattern, error)
	Upsert(ctx context.Context, p *domain.LearningPattern) error
	List(ctx context.Context) ([]*domain.LearningPattern, error)
}

// StatsRepo maintains per-day study aggregates.
type StatsRepo interface {
	Get(ctx context.Context, date time.Time) (*domain.DailyStudyStats, error)
	// AddSession folds one stopped session into the day's row.
	AddSession(ctx context.Context, date time.Time, studySeconds, deepWorkSeconds, points int) error
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.DailyStudyStats, error)
}

// WellbeingRepo persists daily wellbeing metrics.
type WellbeingRepo interface {
	Get(ctx context.Context, date time.Time) (*domain.WellbeingMetric, error)
	Upsert(ctx context.Context, m *domain.WellbeingMetric) error
}

// BreakRepo provides access to break sessions and the pomodoro register
// cell.
type BreakRepo interface {
	Create(ctx context.Context, b *domain.BreakSession) error
	GetByID(ctx context.Context, id string) (*domain.BreakSession, error)
	Update(ctx context.Context, b *domain.BreakSession) error
	// GetActive returns the open break, or ErrNotFound.
	GetActive(ctx context.Context) (*domain.BreakSession, error)
	CountCompletedOnDate(ctx context.Context, date time.Time) (int, error)
	CountSkippedOnDate(ctx context.Context, date time.Time) (int, error)

	GetPomodoro(ctx context.Context) (*domain.PomodoroStatus, error)
	SetPomodoro(ctx context.Context, p *domain.PomodoroStatus) error
}

// StreakRepo is the user-streak register cell.
type StreakRepo interface {
	Get(ctx context.Context) (*domain.UserStreak, error)
	Set(ctx context.Context, s *domain.UserStreak) error
}

// NotificationFilter narrows List results; zero values mean "any".
type NotificationFilter struct {
	Type       domain.NotificationType
	UnreadOnly bool
	Limit      int
}

// NotificationRepo provides access to notifications and per-type
// delivery preferences.
type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context, f NotificationFilter) ([]*domain.Notification, error)
	// ListDeliverable returns unsent notifications whose scheduled_for
	// has arrived and that have not expired, oldest first.
	ListDeliverable(ctx context.Context, now time.Time) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkRead(ctx context.Context, id string, at time.Time) error
	Dismiss(ctx context.Context, id string, at time.Time) error
	CountSentSince(ctx context.Context, typ domain.NotificationType, since time.Time) (int, error)
	ExistsDedup(ctx context.Context, dedupKey string) (bool, error)

	GetPreference(ctx context.Context, typ domain.NotificationType) (*domain.NotificationPreference, error)
	UpsertPreference(ctx context.Context, p *domain.NotificationPreference) error
	ListPreferences(ctx context.Context) ([]*domain.NotificationPreference, error)
}

// AchievementRepo tracks achievement progress rows.
type AchievementRepo interface {
	Get(ctx context.Context, code string) (*domain.UserAchievement, error)
	Upsert(ctx context.Context, a *domain.UserAchievement) error
	List(ctx context.Context) ([]*domain.UserAchievement, error)
	ListUnnotified(ctx context.Context) ([]*domain.UserAchievement, error)
	MarkNotified(ctx context.Context, code string) error
}

// MemoryRepo stores guidelines and memory facts for policy callers.
type MemoryRepo interface {
	CreateGuideline(ctx context.Context, g *domain.Guideline) error
	ListGuidelines(ctx context.Context, activeOnly bool) ([]*domain.Guideline, error)
	SetGuidelineActive(ctx context.Context, id string, active bool) error

	UpsertFact(ctx context.Context, f *domain.MemoryFact) error
	GetFact(ctx context.Context, category, key string) (*domain.MemoryFact, error)
	ListFacts(ctx context.Context, category string) ([]*domain.MemoryFact, error)
}
