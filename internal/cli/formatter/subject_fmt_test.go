package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chronos/internal/domain"
)

func TestFormatSubjects(t *testing.T) {
	out := stripANSI(FormatSubjects([]*domain.Subject{
		{Code: "MATH101", Name: "Calculus I", Credits: 4, Type: domain.SubjectPracticeHeavy},
		{Code: "THER105", Name: "Thermodynamics", Credits: 3, Type: domain.SubjectConceptHeavy},
	}))

	assert.Contains(t, out, "MATH101")
	assert.Contains(t, out, "Calculus I")
	assert.Contains(t, out, "practice heavy")
}

func TestFormatChapters(t *testing.T) {
	chapters := []*domain.Chapter{
		{ID: "c1", Number: 1, Title: "Limits"},
		{ID: "c2", Number: 2, Title: "Derivatives"},
	}
	progress := map[string]*domain.ChapterProgress{
		"c1": {ChapterID: "c1", ReadingStatus: domain.ReadingCompleted, MasteryLevel: 30, RevisionCount: 3},
	}

	out := stripANSI(FormatChapters("MATH101", chapters, progress))
	assert.Contains(t, out, "Limits")
	assert.Contains(t, out, "✔ Read")
	assert.Contains(t, out, "30%")
	// Chapters without a progress row fall back to unread.
	assert.Contains(t, out, "○ Unread")
}

func TestFormatWellbeing(t *testing.T) {
	m := &domain.WellbeingMetric{
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StudyHours:      5.5,
		BreakCount:      2,
		OverdueTasks:    1,
		Score:           0.7,
		Recommendations: []string{"You have 1 overdue task"},
	}

	out := stripANSI(FormatWellbeing(m))
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "5.5h")
	assert.Contains(t, out, "overdue task")
}

func TestFormatAchievements(t *testing.T) {
	earned := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	progress := map[string]*domain.UserAchievement{
		"streak_3": {Code: "streak_3", ProgressValue: 3, IsComplete: true, EarnedAt: &earned},
		"streak_7": {Code: "streak_7", ProgressValue: 3},
	}
	streak := &domain.UserStreak{CurrentStreak: 3, LongestStreak: 5, TotalPoints: 10}

	out := stripANSI(FormatAchievements(streak, progress))
	assert.Contains(t, out, "Getting Started")
	assert.Contains(t, out, "✔ earned")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "3d")
}

func TestFormatNotifications(t *testing.T) {
	sent := time.Now()
	out := stripANSI(FormatNotifications([]*domain.Notification{
		{ID: "n1", Type: domain.NotifyReminder, Title: "Task starting soon", Message: "Circuit analysis at 12:10", SentAt: &sent},
	}))
	assert.Contains(t, out, "Task starting soon")
	assert.Contains(t, out, "reminder")

	assert.Contains(t, stripANSI(FormatNotifications(nil)), "No notifications")
}

func TestFormatRecommendations(t *testing.T) {
	out := stripANSI(FormatRecommendations([]domain.Recommendation{
		{Kind: domain.RecommendTiming, Message: "Your focus peaks in the morning", Confidence: 0.8},
	}))
	assert.Contains(t, out, "focus peaks")
	assert.Contains(t, out, "80% confidence")

	assert.Contains(t, stripANSI(FormatRecommendations(nil)), "Not enough sessions")
}
