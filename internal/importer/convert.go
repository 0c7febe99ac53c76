package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/chronos/internal/domain"
)

// SyllabusBundle holds the converted domain objects ready for
// persistence, chapters keyed by subject code.
type SyllabusBundle struct {
	Subjects   []*domain.Subject
	Chapters   map[string][]*domain.Chapter
	LabReports []*domain.LabReport
}

// Convert transforms a validated SyllabusSchema into domain objects.
// Call ValidateSyllabusSchema first; Convert assumes the schema is valid.
func Convert(schema *SyllabusSchema) (*SyllabusBundle, error) {
	now := time.Now().UTC()

	bundle := &SyllabusBundle{
		Chapters: make(map[string][]*domain.Chapter),
	}

	for _, s := range schema.Subjects {
		code := strings.ToUpper(s.Code)
		bundle.Subjects = append(bundle.Subjects, &domain.Subject{
			Code:      code,
			Name:      s.Name,
			Credits:   s.Credits,
			Type:      domain.SubjectType(s.Type),
			Color:     s.Color,
			CreatedAt: now,
		})

		for _, c := range s.Chapters {
			bundle.Chapters[code] = append(bundle.Chapters[code], &domain.Chapter{
				ID:          uuid.New().String(),
				SubjectCode: code,
				Number:      c.Number,
				Title:       c.Title,
				CreatedAt:   now,
			})
		}
	}

	for _, r := range schema.LabReports {
		due, err := time.Parse("2006-01-02", r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date for %q: %w", r.Title, err)
		}
		deadline := due
		if r.Deadline != nil && *r.Deadline != "" {
			t, err := time.Parse("2006-01-02", *r.Deadline)
			if err != nil {
				return nil, fmt.Errorf("parsing deadline for %q: %w", r.Title, err)
			}
			deadline = t
		}
		bundle.LabReports = append(bundle.LabReports, &domain.LabReport{
			ID:          uuid.New().String(),
			SubjectCode: strings.ToUpper(r.SubjectCode),
			Title:       r.Title,
			DueDate:     due,
			Deadline:    deadline,
			Status:      domain.LabReportPending,
			CreatedAt:   now,
		})
	}

	return bundle, nil
}
