package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/testutil"
)

// monday 2026-03-02 carries COMP104, THER105 and a MATH101 tutorial.
var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestBuildDay_ContiguousPartition(t *testing.T) {
	tl, err := BuildDay(testMonday, DefaultBuilderConfig(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, tl.Blocks)

	assert.True(t, tl.Blocks[0].Start.Equal(testMonday))
	last := tl.Blocks[len(tl.Blocks)-1]
	assert.True(t, last.End.Equal(testMonday.AddDate(0, 0, 1)))

	for i := 1; i < len(tl.Blocks); i++ {
		assert.True(t, tl.Blocks[i].Start.Equal(tl.Blocks[i-1].End),
			"block %d does not abut its predecessor", i)
	}
}

func TestBuildDay_FixedStructure(t *testing.T) {
	tl, err := BuildDay(testMonday, DefaultBuilderConfig(), nil)
	require.NoError(t, err)

	counts := map[domain.ActivityType]int{}
	for _, b := range tl.Blocks {
		counts[b.Activity]++
	}
	assert.Equal(t, 2, counts[domain.ActivitySleep]) // split at the day boundaries
	assert.Equal(t, 1, counts[domain.ActivityWakeRoutine])
	assert.Equal(t, 1, counts[domain.ActivityBreakfast])
	assert.Equal(t, 1, counts[domain.ActivityLunch])
	assert.Equal(t, 1, counts[domain.ActivityDinner])
	assert.Equal(t, 3, counts[domain.ActivityUniversity])
	assert.Greater(t, counts[domain.ActivityFreeTime], 0)
}

func TestBuildDay_PlacedTasksAndEnergy(t *testing.T) {
	task := testutil.NewTestTask("Integrals recap",
		testutil.WithPlacement(testMonday.Add(16*time.Hour), testMonday.Add(17*time.Hour)))
	deep := testutil.NewTestTask("Lab writeup",
		testutil.WithDeepWork(),
		testutil.WithPlacement(testMonday.Add(20*time.Hour), testMonday.Add(21*time.Hour+30*time.Minute)))
	otherDay := testutil.NewTestTask("tomorrow",
		testutil.WithPlacement(testMonday.Add(40*time.Hour), testMonday.Add(41*time.Hour)))

	tl, err := BuildDay(testMonday, DefaultBuilderConfig(), []*domain.Task{task, deep, otherDay})
	require.NoError(t, err)

	var study, deepWork *Block
	for i := range tl.Blocks {
		switch tl.Blocks[i].TaskID {
		case task.ID:
			study = &tl.Blocks[i]
		case deep.ID:
			deepWork = &tl.Blocks[i]
		case otherDay.ID:
			t.Fatal("task from another day leaked into the timeline")
		}
	}
	require.NotNil(t, study)
	require.NotNil(t, deepWork)
	assert.Equal(t, domain.ActivityStudy, study.Activity)
	assert.Equal(t, domain.ActivityDeepWork, deepWork.Activity)

	// 16:00 inherits the 16->7 curve entry, 20:00 has its own.
	assert.Equal(t, 7, study.EnergyLevel)
	assert.Equal(t, 5, deepWork.EnergyLevel)
}

func TestBuildDay_OverlapIsAnError(t *testing.T) {
	// Collides with the 08:00-09:30 COMP104 lecture.
	clash := testutil.NewTestTask("clash",
		testutil.WithPlacement(testMonday.Add(9*time.Hour), testMonday.Add(10*time.Hour)))

	_, err := BuildDay(testMonday, DefaultBuilderConfig(), []*domain.Task{clash})
	assert.Error(t, err)
}

func TestFreeGaps_ExcludesFixedBlocks(t *testing.T) {
	gaps, err := FreeGaps(testMonday, DefaultBuilderConfig(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, gaps)

	wake := testMonday.Add(6 * time.Hour)
	sleep := testMonday.Add(23 * time.Hour)
	for _, g := range gaps {
		assert.False(t, g.Start.Before(wake))
		assert.False(t, g.End.After(sleep))
	}
}
