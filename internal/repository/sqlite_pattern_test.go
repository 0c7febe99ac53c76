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

func TestPatternRepo_GlobalAndSubjectRows(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePatternRepo(database)
	ctx := context.Background()

	_, err := repo.Get(ctx, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	global := &domain.LearningPattern{
		AvgDurationMin:     45,
		BestStudyTime:      domain.Morning,
		EffectivenessScore: 0.7,
		SamplesCount:       6,
		UpdatedAt:          now,
	}
	require.NoError(t, repo.Upsert(ctx, global))

	code := "MATH101"
	perSubject := &domain.LearningPattern{
		SubjectCode:        &code,
		AvgDurationMin:     60,
		BestStudyTime:      domain.Evening,
		EffectivenessScore: 0.5,
		SamplesCount:       3,
		UpdatedAt:          now,
	}
	require.NoError(t, repo.Upsert(ctx, perSubject))

	gotGlobal, err := repo.Get(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, gotGlobal.SubjectCode)
	assert.Equal(t, 6, gotGlobal.SamplesCount)

	gotSubject, err := repo.Get(ctx, &code)
	require.NoError(t, err)
	require.NotNil(t, gotSubject.SubjectCode)
	assert.Equal(t, code, *gotSubject.SubjectCode)
	assert.Equal(t, domain.Evening, gotSubject.BestStudyTime)

	patterns, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patterns, 2)
}

func TestPatternRepo_UpsertOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePatternRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.LearningPattern{AvgDurationMin: 30, SamplesCount: 1, UpdatedAt: now}
	require.NoError(t, repo.Upsert(ctx, p))

	p.AvgDurationMin = 40
	p.SamplesCount = 2
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.AvgDurationMin)
	assert.Equal(t, 2, got.SamplesCount)
}

// seedEffectiveness inserts one sample bound to a fresh session row.
func seedEffectiveness(t *testing.T, repo *SQLiteEffectivenessRepo, sessions *SQLiteSessionRepo, subject *string, tod domain.TimeOfDay, focus float64) {
	t.Helper()
	ctx := context.Background()
	session := testutil.NewTestSession("sample")
	require.NoError(t, sessions.Create(ctx, session))
	require.NoError(t, repo.Create(ctx, &domain.SessionEffectiveness{
		ID:          uuid.New().String(),
		SessionID:   session.ID,
		SubjectCode: subject,
		TimeOfDay:   tod,
		DayOfWeek:   time.Monday,
		DurationMin: 50,
		FocusScore:  focus,
		EnergyLevel: 7,
		CreatedAt:   time.Now().UTC(),
	}))
}

func TestEffectivenessRepo_FocusByTimeOfDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEffectivenessRepo(database)
	sessions := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	code := "PHYS102"
	seedEffectiveness(t, repo, sessions, nil, domain.Morning, 0.8)
	seedEffectiveness(t, repo, sessions, nil, domain.Morning, 0.6)
	seedEffectiveness(t, repo, sessions, nil, domain.Evening, 0.4)
	seedEffectiveness(t, repo, sessions, &code, domain.Evening, 0.9)

	global, err := repo.FocusByTimeOfDay(ctx, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, global[domain.Morning], 1e-9)

	bySubject, err := repo.FocusByTimeOfDay(ctx, &code)
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.InDelta(t, 0.9, bySubject[domain.Evening], 1e-9)

	samples, err := repo.ListBySubject(ctx, &code)
	require.NoError(t, err)
	assert.Len(t, samples, 1)

	all, err := repo.ListBySubject(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
