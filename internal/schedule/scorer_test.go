package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chronos/internal/domain"
)

var scorerNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func deadline(days int) *time.Time {
	d := scorerNow.AddDate(0, 0, days)
	return &d
}

func TestPriority_DeadlineEscalation(t *testing.T) {
	tests := []struct {
		name string
		item PendingItem
		want int
	}{
		{"overdue", PendingItem{Kind: KindStudy, Deadline: deadline(-1)}, PriorityOverdue},
		{"due today", PendingItem{Kind: KindStudy, Deadline: deadline(0)}, PriorityDueToday},
		{"due tomorrow", PendingItem{Kind: KindStudy, Deadline: deadline(1)}, PriorityDueTomorrow},
		{"overdue assignment outranks kind", PendingItem{Kind: KindAssignment, Deadline: deadline(-3)}, PriorityOverdue},
		{"far deadline falls through to kind", PendingItem{Kind: KindStudy, Deadline: deadline(10)}, PriorityRegularStudy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Priority(tt.item, scorerNow))
		})
	}
}

func TestPriority_KindTiers(t *testing.T) {
	tests := []struct {
		kind PendingKind
		want int
	}{
		{KindExamPrep, PriorityExamPrep},
		{KindUrgentLab, PriorityUrgentLab},
		{KindTestPrep, PriorityTestPrep},
		{KindAssignment, PriorityAssignment},
		{KindLabWork, PriorityLabWork},
		{KindStudy, PriorityRegularStudy},
		{KindPractice, PriorityPractice},
		{KindFreeTime, PriorityFreeTime},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Priority(PendingItem{Kind: tt.kind}, scorerNow), string(tt.kind))
	}
}

func TestPriority_RevisionTiers(t *testing.T) {
	due := PendingItem{Kind: KindRevision, Deadline: deadline(0)}
	past := PendingItem{Kind: KindRevision, Deadline: deadline(-2)}
	upcoming := PendingItem{Kind: KindRevision, Deadline: deadline(5)}

	assert.Equal(t, PriorityRevisionDue, Priority(due, scorerNow))
	assert.Equal(t, PriorityRevisionDue, Priority(past, scorerNow))
	assert.Equal(t, PriorityRevisionUpcoming, Priority(upcoming, scorerNow))
}

func TestMatchScore_DeepWorkWantsLongGaps(t *testing.T) {
	item := PendingItem{DeepWork: true, DurationMin: 90}
	long := Gap{Start: scorerNow, DurationMin: 120, Class: GapDeepWork}
	short := Gap{Start: scorerNow, DurationMin: 60, Class: GapStandard}

	assert.Equal(t, 20, MatchScore(item, long))
	assert.Equal(t, 0, MatchScore(item, short))
}

func TestMatchScore_SubjectTimePairing(t *testing.T) {
	morning := Gap{Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	evening := Gap{Start: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)}

	concept := PendingItem{SubjectType: domain.SubjectConceptHeavy}
	practice := PendingItem{SubjectType: domain.SubjectPracticeHeavy}

	assert.Equal(t, 20, MatchScore(concept, morning))
	assert.Equal(t, -10, MatchScore(concept, evening))
	assert.Equal(t, 20, MatchScore(practice, evening))
	assert.Equal(t, -10, MatchScore(practice, morning))
}

func TestMatchScore_DeadlineBuffer(t *testing.T) {
	item := PendingItem{Deadline: deadline(5)}
	today := Gap{Start: scorerNow}
	inThreeDays := Gap{Start: scorerNow.AddDate(0, 0, 3)}

	// Earlier gaps leave more buffer before the deadline.
	assert.Equal(t, 10, MatchScore(item, today))
	assert.Equal(t, 4, MatchScore(item, inThreeDays))
}

func TestCanonicalSort_Deterministic(t *testing.T) {
	items := []PendingItem{
		{ID: "b", Kind: KindStudy, Credits: 4, DurationMin: 60},
		{ID: "a", Kind: KindStudy, Credits: 4, DurationMin: 60},
		{ID: "c", Kind: KindStudy, Credits: 6, DurationMin: 60},
		{ID: "d", Kind: KindRevision, Deadline: deadline(0), Credits: 2},
		{ID: "e", Kind: KindStudy, Credits: 4, DurationMin: 90},
	}

	first := ScoreAll(items, scorerNow)
	CanonicalSort(first)
	second := ScoreAll(items, scorerNow)
	CanonicalSort(second)
	assert.Equal(t, first, second)

	var order []string
	for _, s := range first {
		order = append(order, s.Item.ID)
	}
	// Revision due (65) first, then credits desc, duration desc, ID asc.
	assert.Equal(t, []string{"d", "c", "e", "a", "b"}, order)
}

func TestCanonicalSort_EarliestDeadlineBreaksTies(t *testing.T) {
	items := []PendingItem{
		{ID: "late", Kind: KindStudy, Credits: 4, Deadline: deadline(9)},
		{ID: "soon", Kind: KindStudy, Credits: 4, Deadline: deadline(8)},
		{ID: "none", Kind: KindStudy, Credits: 4},
	}
	scored := ScoreAll(items, scorerNow)
	CanonicalSort(scored)

	assert.Equal(t, "soon", scored[0].Item.ID)
	assert.Equal(t, "late", scored[1].Item.ID)
	assert.Equal(t, "none", scored[2].Item.ID)
}
