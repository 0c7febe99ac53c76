package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/testutil"
)

func newBreak(typ domain.BreakType, startedAt time.Time) *domain.BreakSession {
	return &domain.BreakSession{
		ID:                   uuid.New().String(),
		BreakType:            typ,
		StartedAt:            startedAt,
		SuggestedDurationMin: 5,
	}
}

func TestBreakRepo_Lifecycle(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBreakRepo(database)
	ctx := context.Background()

	started := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := newBreak(domain.BreakShort, started)
	require.NoError(t, repo.Create(ctx, b))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)

	ended := started.Add(6 * time.Minute)
	active.EndedAt = &ended
	active.ActualDurationMin = 6
	active.WasCompleted = true
	require.NoError(t, repo.Update(ctx, active))

	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.WasCompleted)
	assert.Equal(t, 6, got.ActualDurationMin)
}

func TestBreakRepo_CountsOnDate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBreakRepo(database)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	completed := newBreak(domain.BreakShort, day.Add(10*time.Hour))
	end := day.Add(10*time.Hour + 5*time.Minute)
	completed.EndedAt = &end
	completed.WasCompleted = true
	require.NoError(t, repo.Create(ctx, completed))

	skipped := newBreak(domain.BreakPomodoro, day.Add(12*time.Hour))
	skipEnd := day.Add(12*time.Hour + time.Minute)
	skipped.EndedAt = &skipEnd
	require.NoError(t, repo.Create(ctx, skipped))

	otherDay := newBreak(domain.BreakShort, day.AddDate(0, 0, 1).Add(9*time.Hour))
	otherEnd := otherDay.StartedAt.Add(5 * time.Minute)
	otherDay.EndedAt = &otherEnd
	otherDay.WasCompleted = true
	require.NoError(t, repo.Create(ctx, otherDay))

	done, err := repo.CountCompletedOnDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	skippedCount, err := repo.CountSkippedOnDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, skippedCount)
}

func TestBreakRepo_PomodoroRegister(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBreakRepo(database)
	ctx := context.Background()

	// Seeded idle by migration.
	p, err := repo.GetPomodoro(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroIdle, p.Phase)
	assert.Equal(t, 0, p.CyclesCompleted)
	assert.Nil(t, p.PhaseStartedAt)

	now := time.Now().UTC().Truncate(time.Second)
	p.Phase = domain.PomodoroWork
	p.PhaseStartedAt = &now
	require.NoError(t, repo.SetPomodoro(ctx, p))

	p.Phase = domain.PomodoroShortBreak
	p.CyclesCompleted = 1
	require.NoError(t, repo.SetPomodoro(ctx, p))

	got, err := repo.GetPomodoro(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PomodoroShortBreak, got.Phase)
	assert.Equal(t, 1, got.CyclesCompleted)
	require.NotNil(t, got.PhaseStartedAt)
}
