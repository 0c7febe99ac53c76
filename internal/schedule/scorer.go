package schedule

import (
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// Priority tiers for the pending sweep. Higher places first.
const (
	PriorityOverdue          = 100
	PriorityDueToday         = 90
	PriorityExamPrep         = 85
	PriorityDueTomorrow      = 80
	PriorityUrgentLab        = 75
	PriorityTestPrep         = 70
	PriorityRevisionDue      = 65
	PriorityAssignment       = 60
	PriorityLabWork          = 55
	PriorityRegularStudy     = 50
	PriorityPractice         = 45
	PriorityRevisionUpcoming = 40
	PriorityFreeTime         = 10
)

// PendingKind labels what a pending item is, which drives its base
// priority tier.
type PendingKind string

const (
	KindStudy      PendingKind = "study"
	KindPractice   PendingKind = "practice"
	KindAssignment PendingKind = "assignment"
	KindLabWork    PendingKind = "lab_work"
	KindUrgentLab  PendingKind = "urgent_lab"
	KindRevision   PendingKind = "revision"
	KindExamPrep   PendingKind = "exam_prep"
	KindTestPrep   PendingKind = "test_prep"
	KindFreeTime   PendingKind = "free_time"
)

// PendingItem is one unit of work awaiting placement: an unplaced task,
// a due revision, urgent lab prep, or an exam prep request.
type PendingItem struct {
	ID          string
	Kind        PendingKind
	Title       string
	SubjectCode string
	SubjectType domain.SubjectType
	Credits     int
	DurationMin int
	Deadline    *time.Time
	DeepWork    bool
}

// Priority returns the integer priority tier for an item as of now.
// Revisions and free time keep their own tiers regardless of date;
// everything else escalates by deadline proximity first.
func Priority(item PendingItem, now time.Time) int {
	today := domain.DateOf(now)

	switch item.Kind {
	case KindFreeTime:
		return PriorityFreeTime
	case KindRevision:
		if item.Deadline != nil && !domain.DateOf(*item.Deadline).After(today) {
			return PriorityRevisionDue
		}
		return PriorityRevisionUpcoming
	}

	if item.Deadline != nil {
		due := domain.DateOf(*item.Deadline)
		switch {
		case due.Before(today):
			return PriorityOverdue
		case due.Equal(today):
			return PriorityDueToday
		case due.Equal(today.AddDate(0, 0, 1)):
			return PriorityDueTomorrow
		}
	}

	switch item.Kind {
	case KindExamPrep:
		return PriorityExamPrep
	case KindUrgentLab:
		return PriorityUrgentLab
	case KindTestPrep:
		return PriorityTestPrep
	case KindAssignment:
		return PriorityAssignment
	case KindLabWork:
		return PriorityLabWork
	case KindPractice:
		return PriorityPractice
	default:
		return PriorityRegularStudy
	}
}

// MatchScore rates how well a gap suits an item. Deep work wants long
// gaps, concept-heavy subjects want the morning, practice-heavy subjects
// the evening; far deadlines prefer earlier gaps for buffer.
func MatchScore(item PendingItem, gap Gap) int {
	score := 0
	tod := domain.ClassifyHour(gap.Start.Hour())

	if item.DeepWork && gap.DurationMin >= 90 {
		score += 20
	}
	switch item.SubjectType {
	case domain.SubjectConceptHeavy:
		switch tod {
		case domain.Morning:
			score += 20
		case domain.Evening:
			score -= 10
		}
	case domain.SubjectPracticeHeavy:
		switch tod {
		case domain.Evening:
			score += 20
		case domain.Morning:
			score -= 10
		}
	}
	if item.Deadline != nil {
		days := int(domain.DateOf(*item.Deadline).Sub(domain.DateOf(gap.Start)).Hours() / 24)
		if days > 0 {
			score += 2 * days
		}
	}
	return score
}
