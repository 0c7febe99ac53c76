package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/schedule"
	"github.com/alexanderramin/chronos/internal/testutil"
)

func TestTimeline_GetComposesDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	friday := futureFriday()

	task := &domain.Task{Title: "Thermo problem set", DurationMin: 60}
	require.NoError(t, env.tasks.Create(ctx, task))
	require.NoError(t, env.tasks.Place(ctx, task.ID, friday.Add(9*time.Hour)))

	tl, err := env.timeline.Get(ctx, friday)
	require.NoError(t, err)
	require.NotEmpty(t, tl.Blocks)

	// The day is a contiguous partition from midnight to midnight.
	assert.True(t, tl.Blocks[0].Start.Equal(friday))
	last := tl.Blocks[len(tl.Blocks)-1]
	assert.True(t, last.End.Equal(friday.AddDate(0, 0, 1)))

	var found bool
	for _, b := range tl.Blocks {
		if b.TaskID == task.ID {
			found = true
			assert.Equal(t, "Thermo problem set", b.Label)
			assert.True(t, b.Start.Equal(friday.Add(9*time.Hour)))
		}
	}
	assert.True(t, found, "placed task should appear on the timeline")
}

func TestTimeline_WeekReturnsSevenDays(t *testing.T) {
	env := newTestEnv(t)

	week, err := env.timeline.Week(context.Background(), futureFriday())
	require.NoError(t, err)
	require.Len(t, week, 7)
	for i, tl := range week {
		assert.True(t, tl.Date.Equal(futureFriday().AddDate(0, 0, i)))
	}
}

func TestTimeline_OptimizePlacesPendingOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	friday := futureFriday()

	long := &domain.Task{Title: "Derivations review", DurationMin: 60}
	short := &domain.Task{Title: "Skim notes", DurationMin: 45}
	require.NoError(t, env.tasks.Create(ctx, long))
	require.NoError(t, env.tasks.Create(ctx, short))

	result, err := env.timeline.Optimize(ctx, friday)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChangesMade)
	assert.Empty(t, result.Unplaced)

	// Equal-priority items break ties on duration, longer first.
	longSlot := result.Placements[long.ID]
	shortSlot := result.Placements[short.ID]
	assert.True(t, longSlot.Start.Before(shortSlot.Start))
	assert.False(t, shortSlot.Start.Before(longSlot.End), "slots must not overlap")

	for _, id := range []string{long.ID, short.ID} {
		got, err := env.tasks.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, got.Placed())
		assert.True(t, domain.DateOf(*got.ScheduledStart).Equal(friday))
	}

	// A second sweep with nothing new changes nothing.
	again, err := env.timeline.Optimize(ctx, friday)
	require.NoError(t, err)
	assert.Equal(t, 0, again.ChangesMade)
}

func TestTimeline_OptimizeMaterializesRevisionsAndLabs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	subject, chapter := env.seedSubjectChapter(t)
	revs, err := env.subjects.CompleteReading(ctx, chapter.ID)
	require.NoError(t, err)
	require.Len(t, revs, 3)

	// Optimize on the first revision's due day; only that revision is due.
	day := revs[0].DueDate

	lab := &domain.LabReport{
		SubjectCode: subject.Code,
		Title:       "Pendulum analysis",
		DueDate:     day.AddDate(0, 0, 1).Add(17 * time.Hour),
	}
	require.NoError(t, env.labs.CreateReport(ctx, lab))

	result, err := env.timeline.Optimize(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChangesMade)

	revTask, err := env.tasks.GetByID(ctx, "rev-"+revs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskRevision, revTask.TaskType)
	assert.Equal(t, defaultRevisionMin, revTask.DurationMin)
	require.True(t, revTask.Placed())
	require.NotNil(t, revTask.SubjectCode)
	assert.Equal(t, subject.Code, *revTask.SubjectCode)

	labTask, err := env.tasks.GetByID(ctx, "lab-"+lab.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskLabWork, labTask.TaskType)
	assert.Equal(t, defaultLabMin, labTask.DurationMin)
	require.True(t, labTask.Placed())

	// Re-running does not duplicate the derived tasks.
	again, err := env.timeline.Optimize(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 0, again.ChangesMade)
}

func TestTimeline_OptimizeKeepsPlacementsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	friday := futureFriday()

	long := &domain.Task{Title: "Derivations review", DurationMin: 60}
	short := &domain.Task{Title: "Skim notes", DurationMin: 45}
	require.NoError(t, env.tasks.Create(context.Background(), long))
	require.NoError(t, env.tasks.Create(context.Background(), short))

	// The read transaction and the first placement complete, then the
	// context is cancelled before the second placement.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uow := &testutil.CancelAfterNTxUoW{Inner: env.uow, Cancel: cancel, After: 2}
	timeline := NewTimelineService(env.taskRepo, uow, schedule.DefaultBuilderConfig(), schedule.DefaultPlacerConfig())

	_, err := timeline.Optimize(ctx, friday)
	var pErr *schedule.PartialPlanError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, 1, pErr.Committed)
	assert.ErrorIs(t, err, context.Canceled)

	// The committed placement survives the interruption.
	placed, err := env.taskRepo.ListPlacedInRange(context.Background(), friday, friday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, long.ID, placed[0].ID)
}
