package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

// seedCompletedBreak inserts a finished break on the given date.
func (env *testEnv) seedCompletedBreak(t *testing.T, day time.Time) {
	t.Helper()
	start := day.Add(10 * time.Hour)
	end := start.Add(10 * time.Minute)
	require.NoError(t, env.breakRepo.Create(context.Background(), &domain.BreakSession{
		ID:                   uuid.New().String(),
		BreakType:            domain.BreakWalk,
		StartedAt:            start,
		EndedAt:              &end,
		SuggestedDurationMin: 10,
		ActualDurationMin:    10,
		WasCompleted:         true,
	}))
}

func TestWellbeing_ScoreFormula(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	today := domain.DateOf(time.Now().UTC())

	// Five study hours, two real breaks, one overdue task.
	require.NoError(t, env.statsRepo.AddSession(ctx, today, 18000, 0, 30))
	env.seedCompletedBreak(t, today)
	env.seedCompletedBreak(t, today)

	due := today.AddDate(0, 0, -2)
	overdue := &domain.Task{Title: "Forgotten essay", DurationMin: 60, DueDate: &due}
	require.NoError(t, env.tasks.Create(ctx, overdue))

	metric, err := env.wellbeing.Score(ctx, today)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, metric.StudyHours, 0.001)
	assert.Equal(t, 2, metric.BreakCount)
	assert.Equal(t, 1, metric.OverdueTasks)
	// 0.5 base + 0.2 healthy hours + 0.1 breaks - 0.05 overdue.
	assert.InDelta(t, 0.75, metric.Score, 0.001)

	require.Len(t, metric.Recommendations, 1)
	assert.Contains(t, metric.Recommendations[0], "overdue")

	// The metric is persisted and recomputable in place.
	stored, err := env.wellbeingRepo.Get(ctx, today)
	require.NoError(t, err)
	assert.InDelta(t, metric.Score, stored.Score, 0.001)
	_, err = env.wellbeing.Score(ctx, today)
	require.NoError(t, err)
}

func TestWellbeing_DailyTickEmitsSuggestionsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	due := domain.DateOf(now).AddDate(0, 0, -1)
	overdue := &domain.Task{Title: "Late lab writeup", DurationMin: 60, DueDate: &due}
	require.NoError(t, env.tasks.Create(ctx, overdue))

	require.NoError(t, env.wellbeing.DailyTick(ctx, now))

	list, err := env.notifications.List(ctx, repository.NotificationFilter{Type: domain.NotifySuggestion})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	var found bool
	for _, n := range list {
		if strings.Contains(n.Message, "overdue") {
			found = true
		}
	}
	assert.True(t, found, "overdue recommendation should become a suggestion")

	// A second tick on the same day dedups to nothing new.
	require.NoError(t, env.wellbeing.DailyTick(ctx, now))
	again, err := env.notifications.List(ctx, repository.NotificationFilter{Type: domain.NotifySuggestion})
	require.NoError(t, err)
	assert.Len(t, again, len(list))
}

func TestWellbeing_BreakLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.wellbeing.StartBreak(ctx, domain.BreakType("nap"), 0)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	// Hints clamp to the break type's maximum.
	b, err := env.wellbeing.StartBreak(ctx, domain.BreakWalk, 45)
	require.NoError(t, err)
	assert.Equal(t, 20, b.SuggestedDurationMin)

	_, err = env.wellbeing.StartBreak(ctx, domain.BreakShort, 0)
	assert.ErrorIs(t, err, repository.ErrConflict)

	ended, err := env.wellbeing.EndBreak(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, ended.EndedAt)
	assert.False(t, ended.WasCompleted, "ending immediately falls short of the suggestion")

	_, err = env.wellbeing.EndBreak(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrPrecondition)
}

func TestWellbeing_PomodoroCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	status, err := env.wellbeing.PomodoroStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroIdle, status.Phase)

	// Three full cycles take the short break; the fourth earns the long
	// one.
	for cycle := 1; cycle <= 4; cycle++ {
		status, err = env.wellbeing.StartPomodoroWork(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.PomodoroWork, status.Phase)

		status, err = env.wellbeing.StartPomodoroBreak(ctx)
		require.NoError(t, err)
		assert.Equal(t, cycle, status.CyclesCompleted)
		if cycle == domain.PomodoroCyclesPerLong {
			assert.Equal(t, domain.PomodoroLongBreak, status.Phase)
		} else {
			assert.Equal(t, domain.PomodoroShortBreak, status.Phase)
		}
	}

	require.NoError(t, env.wellbeing.StopPomodoro(ctx))
	status, err = env.wellbeing.PomodoroStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroIdle, status.Phase)
	assert.Equal(t, 0, status.CyclesCompleted)
	assert.Nil(t, status.PhaseStartedAt)
}
