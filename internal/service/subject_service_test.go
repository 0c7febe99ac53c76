package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
	"github.com/alexanderramin/chronos/internal/testutil"
)

func TestSubjectService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var vErr *domain.ValidationError
	err := env.subjects.CreateSubject(ctx, &domain.Subject{Code: "math101", Name: "Calculus", Credits: 4})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "subject_code", vErr.Field)

	err = env.subjects.CreateSubject(ctx, &domain.Subject{Code: "MATH101", Name: "Calculus", Credits: 9})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "credits", vErr.Field)
}

func TestSubjectService_AddChapterSeedsProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, chapter := env.seedSubjectChapter(t)

	progress, err := env.subjects.GetProgress(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingNotStarted, progress.ReadingStatus)
	assert.Equal(t, domain.AssignmentLocked, progress.AssignmentStatus)
}

func TestSubjectService_AddChapterUnknownSubject(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.subjects.AddChapter(context.Background(), "NOPE999", 1, "Ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubjectService_CompleteReadingChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, chapter := env.seedSubjectChapter(t)
	require.NoError(t, env.subjects.StartReading(ctx, chapter.ID))

	created, err := env.subjects.CompleteReading(ctx, chapter.ID)
	require.NoError(t, err)
	require.Len(t, created, 3)

	// Revisions land at the reading-completion offsets.
	today := domain.DateOf(time.Now().UTC())
	for i, offset := range []int{7, 14, 21} {
		assert.Equal(t, i+1, created[i].RevisionNumber)
		assert.True(t, created[i].DueDate.Equal(today.AddDate(0, 0, offset)),
			"revision %d due %s", i+1, created[i].DueDate)
	}

	progress, err := env.subjects.GetProgress(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingCompleted, progress.ReadingStatus)
	assert.Equal(t, domain.AssignmentAvailable, progress.AssignmentStatus)
}

func TestSubjectService_CompleteReadingTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, chapter := env.seedSubjectChapter(t)
	_, err := env.subjects.CompleteReading(ctx, chapter.ID)
	require.NoError(t, err)

	_, err = env.subjects.CompleteReading(ctx, chapter.ID)
	assert.ErrorIs(t, err, repository.ErrPrecondition)

	revs, err := env.revisionRepo.ListByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 3)
}

func TestSubjectService_CompleteReadingRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, chapter := env.seedSubjectChapter(t)

	// Fail on the final revision insert: the progress update and the
	// first two revisions must unwind with it.
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 4, Err: errors.New("disk full")}
	subjects := NewSubjectService(env.subjectRepo, env.chapterRepo, failing)

	_, err := subjects.CompleteReading(ctx, chapter.ID)
	require.Error(t, err)

	progress, err := env.subjects.GetProgress(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingNotStarted, progress.ReadingStatus)
	assert.Equal(t, domain.AssignmentLocked, progress.AssignmentStatus)

	revs, err := env.revisionRepo.ListByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Empty(t, revs)
}
