package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

const maxMasteryLevel = 100

type revisionService struct {
	revisions repository.RevisionRepo
	uow       db.UnitOfWork
}

func NewRevisionService(revisions repository.RevisionRepo, uow db.UnitOfWork) RevisionService {
	return &revisionService{revisions: revisions, uow: uow}
}

// Schedule creates one revision per interval day offset. A nil or empty
// intervals slice falls back to the explicit-scheduling defaults, which
// are distinct from the reading-completion offsets.
func (s *revisionService) Schedule(ctx context.Context, chapterID string, intervals []int) ([]*domain.Revision, error) {
	if len(intervals) == 0 {
		intervals = domain.DefaultExplicitIntervals
	}
	for _, d := range intervals {
		if d < 1 {
			return nil, &domain.ValidationError{Field: "intervals", Reason: "day offsets must be positive"}
		}
	}

	now := time.Now().UTC()
	var created []*domain.Revision
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChapters := repository.NewSQLiteChapterRepo(tx)
		txRevisions := repository.NewSQLiteRevisionRepo(tx)

		if _, err := txChapters.GetByID(ctx, chapterID); err != nil {
			return err
		}
		existing, err := txRevisions.ListByChapter(ctx, chapterID)
		if err != nil {
			return err
		}
		for i, offset := range intervals {
			rev := &domain.Revision{
				ID:             uuid.New().String(),
				ChapterID:      chapterID,
				RevisionNumber: len(existing) + i + 1,
				DueDate:        domain.DateOf(now).AddDate(0, 0, offset),
				CreatedAt:      now,
			}
			if err := txRevisions.Create(ctx, rev); err != nil {
				return err
			}
			created = append(created, rev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Complete rewards 5 points per subject credit, bumps the chapter's
// revision counters and extends the streak, atomically.
func (s *revisionService) Complete(ctx context.Context, revisionID string) (*RevisionCompletion, error) {
	now := time.Now().UTC()
	var completion *RevisionCompletion

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRevisions := repository.NewSQLiteRevisionRepo(tx)
		txChapters := repository.NewSQLiteChapterRepo(tx)
		txSubjects := repository.NewSQLiteSubjectRepo(tx)
		txStreak := repository.NewSQLiteStreakRepo(tx)

		rev, err := txRevisions.GetByID(ctx, revisionID)
		if err != nil {
			return err
		}
		if rev.Completed {
			return fmt.Errorf("revision already completed: %w", repository.ErrConflict)
		}

		chapter, err := txChapters.GetByID(ctx, rev.ChapterID)
		if err != nil {
			return err
		}
		subject, err := txSubjects.GetByCode(ctx, chapter.SubjectCode)
		if err != nil {
			return err
		}

		points := domain.PointsPerCredit * subject.Credits
		rev.Completed = true
		rev.CompletedAt = &now
		rev.PointsEarned = points
		if err := txRevisions.Update(ctx, rev); err != nil {
			return err
		}

		progress, err := txChapters.GetProgress(ctx, chapter.ID)
		if err != nil {
			return err
		}
		progress.RevisionCount++
		progress.MasteryLevel += 10
		if progress.MasteryLevel > maxMasteryLevel {
			progress.MasteryLevel = maxMasteryLevel
		}
		progress.UpdatedAt = now
		if err := txChapters.UpsertProgress(ctx, progress); err != nil {
			return err
		}

		streak, err := txStreak.Get(ctx)
		if err != nil {
			return err
		}
		streak.TotalPoints += points
		streak.RecordActivity(now)
		if err := txStreak.Set(ctx, streak); err != nil {
			return err
		}

		completion = &RevisionCompletion{PointsEarned: points, Streak: *streak}
		return triggerAchievementCheck(ctx, tx, now, achievementEvent{})
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *revisionService) Pending(ctx context.Context, asOf time.Time) ([]repository.PendingRevision, error) {
	return s.revisions.ListPendingDue(ctx, asOf)
}
