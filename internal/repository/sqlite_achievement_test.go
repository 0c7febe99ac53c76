package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/testutil"
)

func TestAchievementRepo_ProgressLifecycle(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAchievementRepo(database)
	ctx := context.Background()

	_, err := repo.Get(ctx, "streak_3")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.UserAchievement{Code: "streak_3", ProgressValue: 2, UpdatedAt: now}
	require.NoError(t, repo.Upsert(ctx, a))

	a.ProgressValue = 3
	a.IsComplete = true
	a.EarnedAt = &now
	require.NoError(t, repo.Upsert(ctx, a))

	got, err := repo.Get(ctx, "streak_3")
	require.NoError(t, err)
	assert.True(t, got.IsComplete)
	assert.Equal(t, 3, got.ProgressValue)
	require.NotNil(t, got.EarnedAt)
	assert.False(t, got.Notified)
}

func TestAchievementRepo_UnnotifiedQueue(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAchievementRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	earned := &domain.UserAchievement{Code: "deep_work_1", ProgressValue: 1, IsComplete: true, EarnedAt: &now, UpdatedAt: now}
	inProgress := &domain.UserAchievement{Code: "tasks_10", ProgressValue: 4, UpdatedAt: now}
	require.NoError(t, repo.Upsert(ctx, earned))
	require.NoError(t, repo.Upsert(ctx, inProgress))

	pending, err := repo.ListUnnotified(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "deep_work_1", pending[0].Code)

	require.NoError(t, repo.MarkNotified(ctx, "deep_work_1"))
	pending, err = repo.ListUnnotified(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, repo.MarkNotified(ctx, "missing"), ErrNotFound)
}
