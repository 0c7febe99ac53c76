package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampAllocations_LinearRamp(t *testing.T) {
	// 600 minutes over 3 days: fractions 1/6, 2/6, 3/6.
	alloc := RampAllocations(600, 3)
	assert.Equal(t, []int{100, 200, 300}, alloc)
}

func TestRampAllocations_RoundingLandsOnLastDay(t *testing.T) {
	alloc := RampAllocations(100, 3)
	total := 0
	for _, a := range alloc {
		total += a
	}
	assert.Equal(t, 100, total)
	// Intensity still increases toward the deadline.
	assert.LessOrEqual(t, alloc[0], alloc[1])
	assert.LessOrEqual(t, alloc[1], alloc[2])
}

func TestRampAllocations_Degenerate(t *testing.T) {
	assert.Nil(t, RampAllocations(100, 0))
	assert.Equal(t, []int{100}, RampAllocations(100, 1))
}

func backwardBudget(start time.Time, days int, gapMins ...int) []DayBudget {
	budget := make([]DayBudget, days)
	for i := range budget {
		date := start.AddDate(0, 0, i)
		budget[i].Date = date
		for _, m := range gapMins {
			budget[i].Gaps = append(budget[i].Gaps, gapAt(date.Add(9*time.Hour), m))
		}
	}
	return budget
}

func TestPlanBackward_RampsTowardDeadline(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 3)
	budget := backwardBudget(start, 3, 300)

	item := PendingItem{ID: "exam", Kind: KindExamPrep, Deadline: &deadline}
	result, err := PlanBackward(item, 360, budget, DefaultPlacerConfig(), start.Add(6*time.Hour), nil)
	require.NoError(t, err)

	perDay := map[time.Time]int{}
	for _, p := range result.Placed {
		day := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
		perDay[day] += int(p.End.Sub(p.Start).Minutes())
	}
	assert.Equal(t, 60, perDay[start])
	assert.Equal(t, 120, perDay[start.AddDate(0, 0, 1)])
	assert.Equal(t, 180, perDay[start.AddDate(0, 0, 2)])
}

func TestPlanBackward_SplitsIntoCappedBlocks(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 1)
	budget := backwardBudget(start, 1, 300)

	item := PendingItem{ID: "exam", Kind: KindExamPrep, Deadline: &deadline}
	result, err := PlanBackward(item, 150, budget, DefaultPlacerConfig(), start.Add(6*time.Hour), nil)
	require.NoError(t, err)
	require.Len(t, result.Placed, 2)

	first := result.Placed[0]
	second := result.Placed[1]
	assert.Equal(t, 90, int(first.End.Sub(first.Start).Minutes()))
	assert.Equal(t, 60, int(second.End.Sub(second.Start).Minutes()))
	// Break slack separates consecutive blocks.
	assert.True(t, second.Start.Equal(first.End.Add(15*time.Minute)))
}

func TestPlanBackward_OverflowsToEarlierDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 2)
	// The day before the deadline has almost no room.
	budget := []DayBudget{
		{Date: start, Gaps: []Gap{gapAt(start.Add(9*time.Hour), 300)}},
		{Date: start.AddDate(0, 0, 1), Gaps: []Gap{gapAt(start.AddDate(0, 0, 1).Add(9*time.Hour), 30)}},
	}

	item := PendingItem{ID: "exam", Kind: KindExamPrep, Deadline: &deadline}
	result, err := PlanBackward(item, 180, budget, DefaultPlacerConfig(), start.Add(6*time.Hour), nil)
	require.NoError(t, err)

	perDay := map[time.Time]int{}
	for _, p := range result.Placed {
		day := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
		perDay[day] += int(p.End.Sub(p.Start).Minutes())
	}
	assert.Equal(t, 180, perDay[start]+perDay[start.AddDate(0, 0, 1)])
	assert.LessOrEqual(t, perDay[start.AddDate(0, 0, 1)], 30)
}

func TestPlanBackward_Unschedulable(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 1)
	budget := backwardBudget(start, 1, 30)

	item := PendingItem{ID: "exam", Kind: KindExamPrep, Deadline: &deadline}
	_, err := PlanBackward(item, 300, budget, DefaultPlacerConfig(), start.Add(6*time.Hour), nil)

	var unsched *UnschedulableError
	require.ErrorAs(t, err, &unsched)
	assert.Equal(t, "exam", unsched.ItemID)
}

func TestPlanBackward_PastDeadline(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(-time.Hour)

	item := PendingItem{ID: "late", Kind: KindExamPrep, Deadline: &deadline}
	_, err := PlanBackward(item, 60, nil, DefaultPlacerConfig(), start, nil)

	var conflict *DeadlineConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "late", conflict.ItemID)
}
