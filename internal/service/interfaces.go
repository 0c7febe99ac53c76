package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/importer"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/schedule"
)

// SubjectService manages subjects, chapters and reading progress.
type SubjectService interface {
	CreateSubject(ctx context.Context, s *domain.Subject) error
	GetSubject(ctx context.Context, code string) (*domain.Subject, error)
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	DeleteSubject(ctx context.Context, code string) error

	AddChapter(ctx context.Context, subjectCode string, number int, title string) (*domain.Chapter, error)
	ListChapters(ctx context.Context, subjectCode string) ([]*domain.Chapter, error)
	GetProgress(ctx context.Context, chapterID string) (*domain.ChapterProgress, error)
	StartReading(ctx context.Context, chapterID string) error
	// CompleteReading marks the chapter read, unlocks its assignment and
	// seeds the revision queue in one transaction.
	CompleteReading(ctx context.Context, chapterID string) ([]*domain.Revision, error)
}

// TaskService manages tasks and their timeline placement.
type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	List(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// Place assigns a slot starting at start. Idempotent when the task is
	// already placed at the identical start.
	Place(ctx context.Context, id string, start time.Time) error
	// RescheduleAll unplaces every non-completed placed task on the date
	// and re-runs the priority sweep.
	RescheduleAll(ctx context.Context, date time.Time, reason string) (*RescheduleReport, error)
}

// LabReportService manages lab reports and their derived urgency.
type LabReportService interface {
	CreateReport(ctx context.Context, r *domain.LabReport) error
	GetReport(ctx context.Context, id string) (*domain.LabReport, error)
	SetStatus(ctx context.Context, id string, status domain.LabReportStatus) error
	// Looming returns unsubmitted reports due within the deadline window,
	// most urgent first.
	Looming(ctx context.Context, now time.Time) ([]*domain.LabReport, error)
}

// Slot is one committed placement interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// OptimizeResult reports what an optimization pass changed.
type OptimizeResult struct {
	ChangesMade int
	Placements  map[string]Slot
	Unplaced    []schedule.Unplaced
}

// RescheduleReport summarizes a reschedule-all run.
type RescheduleReport struct {
	Reason   string
	Cleared  int
	Replaced int
	Unplaced []schedule.Unplaced
}

// TimelineService renders and optimizes day timelines.
type TimelineService interface {
	Get(ctx context.Context, date time.Time) (*schedule.Timeline, error)
	Week(ctx context.Context, start time.Time) ([]*schedule.Timeline, error)
	// Optimize places the pending set into the day's free gaps. A second
	// call without intervening mutation is a no-op.
	Optimize(ctx context.Context, date time.Time) (*OptimizeResult, error)
}

// BackwardRequest asks for a deadline-anchored study plan.
type BackwardRequest struct {
	SubjectCode string
	Title       string
	Deadline    time.Time
	Hours       float64
}

// PlannerService distributes deadline-anchored work backwards from the
// deadline with rising intensity.
type PlannerService interface {
	Backward(ctx context.Context, req BackwardRequest) (*schedule.PlanResult, error)
}

// RevisionCompletion reports the reward for one completed revision.
type RevisionCompletion struct {
	PointsEarned int
	Streak       domain.UserStreak
}

// RevisionService manages the spaced-repetition queue.
type RevisionService interface {
	// Schedule creates one revision per interval day offset; nil intervals
	// use the explicit-scheduling defaults.
	Schedule(ctx context.Context, chapterID string, intervals []int) ([]*domain.Revision, error)
	Complete(ctx context.Context, revisionID string) (*RevisionCompletion, error)
	Pending(ctx context.Context, asOf time.Time) ([]repository.PendingRevision, error)
}

// TimerStatus describes the active timer, if any.
type TimerStatus struct {
	Active         bool
	Session        *domain.StudySession
	ElapsedSeconds int
}

// TimerService is the singleton study-session timer.
type TimerService interface {
	Start(ctx context.Context, subjectCode, chapterID *string, title string) (*domain.StudySession, error)
	// Stop closes the active session and applies every derived write in
	// one transaction. A nil focus uses the default focus score.
	Stop(ctx context.Context, focus *float64) (*domain.StudySession, error)
	Status(ctx context.Context) (*TimerStatus, error)
}

// WellbeingService scores daily sustainability and manages breaks and
// the pomodoro register.
type WellbeingService interface {
	Score(ctx context.Context, date time.Time) (*domain.WellbeingMetric, error)
	// DailyTick recomputes today's score and emits its recommendations as
	// suggestion notifications. Idempotent within a day.
	DailyTick(ctx context.Context, now time.Time) error

	StartBreak(ctx context.Context, typ domain.BreakType, hintMin int) (*domain.BreakSession, error)
	EndBreak(ctx context.Context, id string) (*domain.BreakSession, error)

	StartPomodoroWork(ctx context.Context) (*domain.PomodoroStatus, error)
	StartPomodoroBreak(ctx context.Context) (*domain.PomodoroStatus, error)
	StopPomodoro(ctx context.Context) error
	PomodoroStatus(ctx context.Context) (*domain.PomodoroStatus, error)
}

// PatternService aggregates session effectiveness into learning
// patterns and answers recommendation queries.
type PatternService interface {
	Record(ctx context.Context, e *domain.SessionEffectiveness) error
	// OptimalTime returns the best study time for a subject (nil for the
	// global pattern), or ErrPrecondition below the sample floor.
	OptimalTime(ctx context.Context, subjectCode *string) (domain.TimeOfDay, error)
	SuggestedDuration(ctx context.Context, subjectCode *string) (int, error)
	Recommend(ctx context.Context, subjectCode *string) ([]domain.Recommendation, error)
	Patterns(ctx context.Context) ([]*domain.LearningPattern, error)
}

// Notifier is the delivery entry point other services use to emit
// proactive notifications through the preference pipeline.
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// NotificationService manages notifications: the periodic scan, the
// delivery pipeline and live fan-out.
type NotificationService interface {
	Notifier

	List(ctx context.Context, f repository.NotificationFilter) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
	Subscribe() (<-chan *domain.Notification, func())
	// Scan runs the proactive rules, flushes pending achievements and
	// delivers everything whose scheduled time has arrived.
	Scan(ctx context.Context, now time.Time) error

	ListPreferences(ctx context.Context) ([]*domain.NotificationPreference, error)
	UpdatePreference(ctx context.Context, p *domain.NotificationPreference) error
}

// AchievementService evaluates the achievement catalog against current
// counters.
type AchievementService interface {
	// Check re-evaluates every definition and returns codes newly awarded.
	Check(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]*domain.UserAchievement, error)
	Streak(ctx context.Context) (*domain.UserStreak, error)
}

// SyllabusImportReport summarizes one syllabus import run.
type SyllabusImportReport struct {
	Subjects   int
	Chapters   int
	LabReports int
	// Skipped lists subject codes that already existed.
	Skipped []string
}

// ImportService persists term syllabi from import files.
type ImportService interface {
	ImportSyllabus(ctx context.Context, schema *importer.SyllabusSchema) (*SyllabusImportReport, error)
}

// MemoryService stores guidelines and facts for external policy callers.
type MemoryService interface {
	AddGuideline(ctx context.Context, rule string, priority int) (*domain.Guideline, error)
	ListGuidelines(ctx context.Context, activeOnly bool) ([]*domain.Guideline, error)
	SetGuidelineActive(ctx context.Context, id string, active bool) error

	Remember(ctx context.Context, category, key, value string) error
	Recall(ctx context.Context, category string) ([]*domain.MemoryFact, error)
	RecallFact(ctx context.Context, category, key string) (*domain.MemoryFact, error)
}
