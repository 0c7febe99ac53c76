package domain

import (
	"fmt"
	"regexp"
)

var (
	subjectCodeRe = regexp.MustCompile(`^[A-Z]{2,5}[0-9]{3}$`)
	chapterSlugRe = regexp.MustCompile(`^chapter[0-9]{2}$`)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateSubjectCode enforces the DEPT-number form, e.g. "MATH101".
func ValidateSubjectCode(code string) error {
	if !subjectCodeRe.MatchString(code) {
		return &ValidationError{Field: "subject_code", Reason: fmt.Sprintf("%q does not match 2-5 uppercase letters followed by 3 digits", code)}
	}
	return nil
}

// ValidateChapterSlug enforces the "chapterNN" form.
func ValidateChapterSlug(slug string) error {
	if !chapterSlugRe.MatchString(slug) {
		return &ValidationError{Field: "chapter", Reason: fmt.Sprintf("%q does not match chapterNN", slug)}
	}
	return nil
}

// ChapterSlug renders a chapter number as its canonical slug.
func ChapterSlug(number int) string {
	return fmt.Sprintf("chapter%02d", number)
}

// Validate checks a subject at the create boundary.
func (s *Subject) Validate() error {
	if err := ValidateSubjectCode(s.Code); err != nil {
		return err
	}
	if s.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if s.Credits < 1 || s.Credits > 6 {
		return &ValidationError{Field: "credits", Reason: "must be between 1 and 6"}
	}
	if !ValidSubjectTypes[string(s.Type)] {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown subject type %q", s.Type)}
	}
	return nil
}

// Validate checks a task at the create/update boundary.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if t.Priority < 1 || t.Priority > 10 {
		return &ValidationError{Field: "priority", Reason: "must be between 1 and 10"}
	}
	if t.DurationMin <= 0 {
		return &ValidationError{Field: "duration_mins", Reason: "must be positive"}
	}
	if !ValidTaskTypes[string(t.TaskType)] {
		return &ValidationError{Field: "task_type", Reason: fmt.Sprintf("unknown task type %q", t.TaskType)}
	}
	if t.SubjectCode != nil {
		return ValidateSubjectCode(*t.SubjectCode)
	}
	return nil
}
