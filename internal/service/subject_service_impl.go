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

type subjectService struct {
	subjects repository.SubjectRepo
	chapters repository.ChapterRepo
	uow      db.UnitOfWork
}

func NewSubjectService(subjects repository.SubjectRepo, chapters repository.ChapterRepo, uow db.UnitOfWork) SubjectService {
	return &subjectService{subjects: subjects, chapters: chapters, uow: uow}
}

func (s *subjectService) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	if subject.Type == "" {
		subject.Type = domain.SubjectConceptHeavy
	}
	if err := subject.Validate(); err != nil {
		return err
	}
	subject.CreatedAt = time.Now().UTC()
	return s.subjects.Create(ctx, subject)
}

func (s *subjectService) GetSubject(ctx context.Context, code string) (*domain.Subject, error) {
	return s.subjects.GetByCode(ctx, code)
}

func (s *subjectService) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *subjectService) DeleteSubject(ctx context.Context, code string) error {
	return s.subjects.Delete(ctx, code)
}

func (s *subjectService) AddChapter(ctx context.Context, subjectCode string, number int, title string) (*domain.Chapter, error) {
	if number < 1 || number > 99 {
		return nil, &domain.ValidationError{Field: "number", Reason: "must be between 1 and 99"}
	}
	chapter := &domain.Chapter{
		ID:          uuid.New().String(),
		SubjectCode: subjectCode,
		Number:      number,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubjects := repository.NewSQLiteSubjectRepo(tx)
		txChapters := repository.NewSQLiteChapterRepo(tx)

		if _, err := txSubjects.GetByCode(ctx, subjectCode); err != nil {
			return err
		}
		if err := txChapters.Create(ctx, chapter); err != nil {
			return err
		}
		// Every chapter carries a progress row from birth.
		return txChapters.UpsertProgress(ctx, &domain.ChapterProgress{
			ChapterID:        chapter.ID,
			ReadingStatus:    domain.ReadingNotStarted,
			AssignmentStatus: domain.AssignmentLocked,
			UpdatedAt:        chapter.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *subjectService) ListChapters(ctx context.Context, subjectCode string) ([]*domain.Chapter, error) {
	return s.chapters.ListBySubject(ctx, subjectCode)
}

func (s *subjectService) GetProgress(ctx context.Context, chapterID string) (*domain.ChapterProgress, error) {
	return s.chapters.GetProgress(ctx, chapterID)
}

func (s *subjectService) StartReading(ctx context.Context, chapterID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChapters := repository.NewSQLiteChapterRepo(tx)
		progress, err := txChapters.GetProgress(ctx, chapterID)
		if err != nil {
			return err
		}
		if progress.ReadingStatus == domain.ReadingCompleted {
			return fmt.Errorf("reading already completed: %w", repository.ErrPrecondition)
		}
		progress.ReadingStatus = domain.ReadingInProgress
		progress.UpdatedAt = time.Now().UTC()
		return txChapters.UpsertProgress(ctx, progress)
	})
}

// CompleteReading flips the reading status, unlocks the assignment and
// seeds revisions at the reading-completion offsets. All-or-nothing.
func (s *subjectService) CompleteReading(ctx context.Context, chapterID string) ([]*domain.Revision, error) {
	now := time.Now().UTC()
	var created []*domain.Revision

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChapters := repository.NewSQLiteChapterRepo(tx)
		txRevisions := repository.NewSQLiteRevisionRepo(tx)

		progress, err := txChapters.GetProgress(ctx, chapterID)
		if err != nil {
			return err
		}
		if progress.ReadingStatus == domain.ReadingCompleted {
			return fmt.Errorf("reading already completed: %w", repository.ErrPrecondition)
		}

		progress.ReadingStatus = domain.ReadingCompleted
		if progress.AssignmentStatus == domain.AssignmentLocked {
			progress.AssignmentStatus = domain.AssignmentAvailable
		}
		progress.UpdatedAt = now
		if err := txChapters.UpsertProgress(ctx, progress); err != nil {
			return err
		}

		existing, err := txRevisions.ListByChapter(ctx, chapterID)
		if err != nil {
			return err
		}
		for i, offset := range domain.DefaultRevisionOffsets {
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
