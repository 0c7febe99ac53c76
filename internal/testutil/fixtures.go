package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/google/uuid"
)

var testSubjectCounter atomic.Int64

// Subject options
type SubjectOption func(*domain.Subject)

func WithCredits(c int) SubjectOption {
	return func(s *domain.Subject) {
		s.Credits = c
	}
}

func WithSubjectType(t domain.SubjectType) SubjectOption {
	return func(s *domain.Subject) {
		s.Type = t
	}
}

// NewTestSubject builds a subject with a unique generated code like
// "TST101" unless an explicit code is passed via name collision.
func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	n := testSubjectCounter.Add(1)
	s := &domain.Subject{
		Code:      fmt.Sprintf("TST%03d", 100+n),
		Name:      name,
		Credits:   4,
		Type:      domain.SubjectConceptHeavy,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestChapter builds a chapter for the given subject.
func NewTestChapter(subjectCode string, number int) *domain.Chapter {
	return &domain.Chapter{
		ID:          uuid.New().String(),
		SubjectCode: subjectCode,
		Number:      number,
		Title:       fmt.Sprintf("Chapter %d", number),
		CreatedAt:   time.Now().UTC(),
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskSubject(code string) TaskOption {
	return func(t *domain.Task) {
		t.SubjectCode = &code
	}
}

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) {
		t.TaskType = tt
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithPlacement(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ScheduledStart = &start
		t.ScheduledEnd = &end
	}
}

func WithDeepWork() TaskOption {
	return func(t *domain.Task) {
		t.IsDeepWork = true
	}
}

func WithDuration(min int) TaskOption {
	return func(t *domain.Task) {
		t.DurationMin = min
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Priority:    5,
		DurationMin: 60,
		TaskType:    domain.TaskStudy,
		Status:      domain.TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestRevision builds a revision due on the given date.
func NewTestRevision(chapterID string, number int, due time.Time) *domain.Revision {
	return &domain.Revision{
		ID:             uuid.New().String(),
		ChapterID:      chapterID,
		RevisionNumber: number,
		DueDate:        due,
		CreatedAt:      time.Now().UTC(),
	}
}

// Session options
type SessionOption func(*domain.StudySession)

func WithSessionSubject(code string) SessionOption {
	return func(s *domain.StudySession) {
		s.SubjectCode = &code
	}
}

func WithStartedAt(t time.Time) SessionOption {
	return func(s *domain.StudySession) {
		s.StartedAt = t
	}
}

func WithStopped(at time.Time, durationSeconds int) SessionOption {
	return func(s *domain.StudySession) {
		s.StoppedAt = &at
		s.DurationSeconds = durationSeconds
	}
}

func NewTestSession(title string, opts ...SessionOption) *domain.StudySession {
	s := &domain.StudySession{
		ID:        uuid.New().String(),
		Title:     title,
		StartedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notification options
type NotificationOption func(*domain.Notification)

func WithDedupKey(key string) NotificationOption {
	return func(n *domain.Notification) {
		n.DedupKey = key
	}
}

func WithScheduledFor(t time.Time) NotificationOption {
	return func(n *domain.Notification) {
		n.ScheduledFor = t
	}
}

func WithExpiresAt(t time.Time) NotificationOption {
	return func(n *domain.Notification) {
		n.ExpiresAt = &t
	}
}

func WithPriority(p domain.NotificationPriority) NotificationOption {
	return func(n *domain.Notification) {
		n.Priority = p
	}
}

func NewTestNotification(typ domain.NotificationType, title string, opts ...NotificationOption) *domain.Notification {
	now := time.Now().UTC()
	n := &domain.Notification{
		ID:           uuid.New().String(),
		Type:         typ,
		Priority:     domain.PriorityNormal,
		Title:        title,
		CreatedAt:    now,
		ScheduledFor: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewTestLabReport builds a lab report due in the given number of days.
func NewTestLabReport(subjectCode, title string, daysUntilDue int) *domain.LabReport {
	now := time.Now().UTC()
	due := now.AddDate(0, 0, daysUntilDue)
	return &domain.LabReport{
		ID:          uuid.New().String(),
		SubjectCode: subjectCode,
		Title:       title,
		DueDate:     due,
		Deadline:    due,
		Status:      domain.LabReportPending,
		CreatedAt:   now,
	}
}
