package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// setStreak pins the current streak counter directly.
func setStreak(t *testing.T, env *testEnv, days int) {
	t.Helper()
	ctx := context.Background()
	streak, err := env.streakRepo.Get(ctx)
	require.NoError(t, err)
	streak.CurrentStreak = days
	require.NoError(t, env.streakRepo.Set(ctx, streak))
}

// evaluateWithEvent runs the evaluator with explicit one-shot signals.
func evaluateWithEvent(t *testing.T, env *testEnv, ev achievementEvent) []string {
	t.Helper()
	var awarded []string
	err := env.uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var err error
		awarded, err = evaluateAchievements(ctx, tx, time.Now().UTC(), ev)
		return err
	})
	require.NoError(t, err)
	return awarded
}

func TestAchievement_StreakAwardOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setStreak(t, env, 3)

	awarded, err := env.achievements.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"streak_3"}, awarded)

	streak, err := env.streakRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, streak.TotalPoints)

	// Already-earned achievements never re-award.
	again, err := env.achievements.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestAchievement_PrerequisiteChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setStreak(t, env, 7)

	awarded, err := env.achievements.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"streak_3", "streak_7"}, awarded)

	// The next tier unlocked and tracks progress without completing.
	next, err := env.achievementRepo.Get(ctx, "streak_30")
	require.NoError(t, err)
	assert.Equal(t, 7, next.ProgressValue)
	assert.False(t, next.IsComplete)

	streak, err := env.streakRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10+25, streak.TotalPoints)
}

func TestAchievement_DeepWorkFromSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start := time.Now().UTC().AddDate(0, 0, -1)
	env.seedStoppedSession(t, start, domain.DeepWorkMinSeconds)

	awarded, err := env.achievements.Check(ctx)
	require.NoError(t, err)
	assert.Contains(t, awarded, "deep_work_1")
}

func TestAchievement_EarlyBirdEventDriven(t *testing.T) {
	env := newTestEnv(t)

	// Without the event flag the special achievement never advances.
	awarded := evaluateWithEvent(t, env, achievementEvent{})
	assert.NotContains(t, awarded, "early_bird")

	awarded = evaluateWithEvent(t, env, achievementEvent{earlyBird: true})
	assert.Contains(t, awarded, "early_bird")

	// A second early start changes nothing once earned.
	awarded = evaluateWithEvent(t, env, achievementEvent{earlyBird: true})
	assert.Empty(t, awarded)
}

func TestAchievement_PerfectionistCounterResets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	yes, no := true, false
	evaluateWithEvent(t, env, achievementEvent{perfectDay: &yes})
	evaluateWithEvent(t, env, achievementEvent{perfectDay: &yes})

	a, err := env.achievementRepo.Get(ctx, "perfectionist")
	require.NoError(t, err)
	assert.Equal(t, 2, a.ProgressValue)

	// One missed day resets the run.
	evaluateWithEvent(t, env, achievementEvent{perfectDay: &no})
	a, err = env.achievementRepo.Get(ctx, "perfectionist")
	require.NoError(t, err)
	assert.Equal(t, 0, a.ProgressValue)
	assert.False(t, a.IsComplete)
}

func TestAchievement_ListTracksProgressRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setStreak(t, env, 1)

	_, err := env.achievements.Check(ctx)
	require.NoError(t, err)

	all, err := env.achievements.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)
	for _, a := range all {
		assert.False(t, a.IsComplete)
	}
}
