package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

func TestLabReport_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	subject, _ := env.seedSubjectChapter(t)
	due := time.Now().UTC().AddDate(0, 0, 5)

	var vErr *domain.ValidationError
	err := env.labs.CreateReport(ctx, &domain.LabReport{SubjectCode: "bad code", Title: "x"})
	require.ErrorAs(t, err, &vErr)
	err = env.labs.CreateReport(ctx, &domain.LabReport{SubjectCode: subject.Code})
	require.ErrorAs(t, err, &vErr)

	r := &domain.LabReport{SubjectCode: subject.Code, Title: "Heat transfer", DueDate: due}
	require.NoError(t, env.labs.CreateReport(ctx, r))

	got, err := env.labs.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LabReportPending, got.Status)
	assert.True(t, got.Deadline.Equal(due), "deadline falls back to the due date")
}

func TestLabReport_StatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	subject, _ := env.seedSubjectChapter(t)
	r := &domain.LabReport{SubjectCode: subject.Code, Title: "Optics", DueDate: time.Now().UTC().AddDate(0, 0, 2)}
	require.NoError(t, env.labs.CreateReport(ctx, r))

	require.NoError(t, env.labs.SetStatus(ctx, r.ID, domain.LabReportDrafting))
	require.NoError(t, env.labs.SetStatus(ctx, r.ID, domain.LabReportSubmitted))

	// Submission is final.
	err := env.labs.SetStatus(ctx, r.ID, domain.LabReportDrafting)
	assert.ErrorIs(t, err, repository.ErrPrecondition)

	var vErr *domain.ValidationError
	err = env.labs.SetStatus(ctx, r.ID, domain.LabReportStatus("graded"))
	assert.ErrorAs(t, err, &vErr)
}

func TestLabReport_LoomingWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	subject, _ := env.seedSubjectChapter(t)
	mk := func(title string, daysOut int) *domain.LabReport {
		r := &domain.LabReport{SubjectCode: subject.Code, Title: title, DueDate: now.AddDate(0, 0, daysOut)}
		require.NoError(t, env.labs.CreateReport(ctx, r))
		return r
	}
	soon := mk("Due soon", 2)
	mk("Far off", 10)
	submitted := mk("Handed in", 1)
	require.NoError(t, env.labs.SetStatus(ctx, submitted.ID, domain.LabReportSubmitted))

	looming, err := env.labs.Looming(ctx, now)
	require.NoError(t, err)
	require.Len(t, looming, 1)
	assert.Equal(t, soon.ID, looming[0].ID)
}
