package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// ValidateSyllabusSchema checks the import schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateSyllabusSchema(schema *SyllabusSchema) []error {
	var errs []error

	if len(schema.Subjects) == 0 {
		errs = append(errs, fmt.Errorf("subjects: at least one subject is required"))
	}

	subjectCodes := make(map[string]bool)
	errs = append(errs, validateSubjects(schema.Subjects, subjectCodes)...)
	errs = append(errs, validateLabReports(schema.LabReports, subjectCodes)...)

	return errs
}

func validateSubjects(subjects []SubjectImport, subjectCodes map[string]bool) []error {
	var errs []error

	for i, s := range subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)

		if s.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		} else if err := domain.ValidateSubjectCode(s.Code); err != nil {
			errs = append(errs, fmt.Errorf("%s.code: %w", prefix, err))
		} else if subjectCodes[s.Code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate code %q", prefix, s.Code))
		} else {
			subjectCodes[s.Code] = true
		}

		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if s.Credits < 1 || s.Credits > 6 {
			errs = append(errs, fmt.Errorf("%s.credits: %d out of range 1-6", prefix, s.Credits))
		}
		if s.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		} else if !domain.ValidSubjectTypes[s.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, s.Type))
		}

		errs = append(errs, validateChapters(prefix, s.Chapters)...)
	}

	return errs
}

func validateChapters(prefix string, chapters []ChapterImport) []error {
	var errs []error

	numbers := make(map[int]bool)
	for i, c := range chapters {
		cp := fmt.Sprintf("%s.chapters[%d]", prefix, i)

		if c.Number <= 0 {
			errs = append(errs, fmt.Errorf("%s.number must be positive", cp))
		} else if numbers[c.Number] {
			errs = append(errs, fmt.Errorf("%s.number: duplicate chapter number %d", cp, c.Number))
		} else {
			numbers[c.Number] = true
		}

		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", cp))
		}
	}

	return errs
}

func validateLabReports(reports []LabReportImport, subjectCodes map[string]bool) []error {
	var errs []error

	for i, r := range reports {
		prefix := fmt.Sprintf("lab_reports[%d]", i)

		if r.SubjectCode == "" {
			errs = append(errs, fmt.Errorf("%s.subject_code is required", prefix))
		} else if !subjectCodes[r.SubjectCode] {
			errs = append(errs, fmt.Errorf("%s.subject_code: code %q not found in subjects", prefix, r.SubjectCode))
		}

		if r.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		var due time.Time
		if r.DueDate == "" {
			errs = append(errs, fmt.Errorf("%s.due_date is required", prefix))
		} else if t, err := time.Parse("2006-01-02", r.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", prefix, r.DueDate))
		} else {
			due = t
		}

		if r.Deadline != nil && *r.Deadline != "" {
			t, err := time.Parse("2006-01-02", *r.Deadline)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.deadline: invalid date format %q (expected YYYY-MM-DD)", prefix, *r.Deadline))
			} else if !due.IsZero() && t.Before(due) {
				errs = append(errs, fmt.Errorf("%s.deadline %q must not precede due_date %q", prefix, *r.Deadline, r.DueDate))
			}
		}
	}

	return errs
}
