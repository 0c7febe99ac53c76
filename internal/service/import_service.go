package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/importer"
	"github.com/alexanderramin/chronos/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

// ImportSyllabus validates, converts and persists a syllabus in one
// transaction. Subjects already present are skipped together with
// their chapters and lab reports, so re-importing the same file is a
// no-op.
func (s *importService) ImportSyllabus(ctx context.Context, schema *importer.SyllabusSchema) (*SyllabusImportReport, error) {
	if errs := importer.ValidateSyllabusSchema(schema); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return nil, &domain.ValidationError{Field: "syllabus", Reason: strings.Join(msgs, "; ")}
	}

	bundle, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}

	report := &SyllabusImportReport{}
	now := time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubjects := repository.NewSQLiteSubjectRepo(tx)
		txChapters := repository.NewSQLiteChapterRepo(tx)
		txLabs := repository.NewSQLiteLabReportRepo(tx)

		imported := make(map[string]bool)
		for _, subject := range bundle.Subjects {
			_, err := txSubjects.GetByCode(ctx, subject.Code)
			switch {
			case err == nil:
				report.Skipped = append(report.Skipped, subject.Code)
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}

			if err := txSubjects.Create(ctx, subject); err != nil {
				return err
			}
			imported[subject.Code] = true
			report.Subjects++

			for _, chapter := range bundle.Chapters[subject.Code] {
				if err := txChapters.Create(ctx, chapter); err != nil {
					return err
				}
				if err := txChapters.UpsertProgress(ctx, &domain.ChapterProgress{
					ChapterID:        chapter.ID,
					ReadingStatus:    domain.ReadingNotStarted,
					AssignmentStatus: domain.AssignmentLocked,
					UpdatedAt:        now,
				}); err != nil {
					return err
				}
				report.Chapters++
			}
		}

		for _, lab := range bundle.LabReports {
			if !imported[lab.SubjectCode] {
				continue
			}
			if err := txLabs.Create(ctx, lab); err != nil {
				return err
			}
			report.LabReports++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
