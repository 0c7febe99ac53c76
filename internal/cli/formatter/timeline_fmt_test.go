package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/schedule"
)

func sampleTimeline() *schedule.Timeline {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	return &schedule.Timeline{
		Date: day,
		Blocks: []schedule.Block{
			{Start: day, End: day.Add(6 * time.Hour), Activity: domain.ActivitySleep, Label: "Sleep"},
			{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), Activity: domain.ActivityUniversity, Label: "MATH101 lecture", SubjectCode: "MATH101"},
			{Start: day.Add(10 * time.Hour), End: day.Add(11*time.Hour + 30*time.Minute), Activity: domain.ActivityDeepWork, Label: "Problem set", SubjectCode: "MATH101"},
			{Start: day.Add(20 * time.Hour), End: day.Add(22 * time.Hour), Activity: domain.ActivityFreeTime, Label: "Free"},
		},
	}
}

func TestFormatTimeline(t *testing.T) {
	out := stripANSI(FormatTimeline(sampleTimeline()))

	assert.Contains(t, out, "00:00 - 06:00")
	assert.Contains(t, out, "Sleep")
	assert.Contains(t, out, "MATH101 lecture")
	assert.Contains(t, out, "Problem set")
	// Free blocks show the reclaimable length.
	assert.Contains(t, out, "2h")
}

func TestFormatWeek(t *testing.T) {
	days := []*schedule.Timeline{sampleTimeline()}
	out := stripANSI(FormatWeek(days))

	assert.Contains(t, out, "Mon Sep 7")
	assert.Contains(t, out, "1h")      // classes
	assert.Contains(t, out, "1h 30m")  // study
	assert.Contains(t, out, "STUDY")
}

func TestFormatPlanResult(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	result := &schedule.PlanResult{
		Placed: []schedule.Placement{
			{Item: schedule.PendingItem{Title: "Exam prep: MATH101", SubjectCode: "MATH101"},
				Start: day.Add(8 * time.Hour), End: day.Add(9 * time.Hour)},
		},
		Unplaced: []schedule.Unplaced{
			{Item: schedule.PendingItem{Title: "Extra drill"}, Reason: "no gap fits 240 min"},
		},
	}

	out := stripANSI(FormatPlanResult(result))
	assert.Contains(t, out, "MON SEP 7")
	assert.Contains(t, out, "08:00 - 09:00")
	assert.Contains(t, out, "Exam prep: MATH101")
	assert.Contains(t, out, `could not place "Extra drill"`)

	empty := stripANSI(FormatPlanResult(&schedule.PlanResult{}))
	assert.Contains(t, empty, "Nothing to place")
}
