package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/testutil"
)

func TestSessionRepo_ActiveTimerRegister(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	// Empty register.
	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	session := testutil.NewTestSession("morning block")
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.SetActive(ctx, session.ID))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)
	assert.True(t, active.Active())

	require.NoError(t, repo.ClearActive(ctx))
	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_StopRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	stopped := started.Add(100 * time.Minute)
	session := testutil.NewTestSession("deep block", testutil.WithStartedAt(started))
	require.NoError(t, repo.Create(ctx, session))

	session.StoppedAt = &stopped
	session.DurationSeconds = 6000
	session.IsDeepWork = true
	session.PointsEarned = 10
	require.NoError(t, repo.Update(ctx, session))

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, got.Active())
	assert.Equal(t, 6000, got.DurationSeconds)
	assert.True(t, got.IsDeepWork)
	assert.Equal(t, 10, got.PointsEarned)
}

func TestSessionRepo_ListInWindow(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	inWindow := testutil.NewTestSession("today", testutil.WithStartedAt(day.Add(10*time.Hour)))
	before := testutil.NewTestSession("yesterday", testutil.WithStartedAt(day.Add(-2*time.Hour)))
	require.NoError(t, repo.Create(ctx, inWindow))
	require.NoError(t, repo.Create(ctx, before))

	sessions, err := repo.ListInWindow(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, inWindow.ID, sessions[0].ID)
}

func TestSessionRepo_CountDeepWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	deep := testutil.NewTestSession("deep")
	deep.IsDeepWork = true
	require.NoError(t, repo.Create(ctx, deep))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("shallow")))

	count, err := repo.CountDeepWork(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
