package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// SyllabusSchema is the top-level JSON structure for a term syllabus
// import: the subjects being taken, their chapter lists and any lab
// reports already announced.
type SyllabusSchema struct {
	Term       string            `json:"term,omitempty"`
	Subjects   []SubjectImport   `json:"subjects"`
	LabReports []LabReportImport `json:"lab_reports,omitempty"`
}

// SubjectImport defines one subject and its chapters in the import file.
type SubjectImport struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Credits  int             `json:"credits"`
	Type     string          `json:"type"`
	Color    string          `json:"color,omitempty"`
	Chapters []ChapterImport `json:"chapters,omitempty"`
}

// ChapterImport defines one chapter of a subject.
type ChapterImport struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// LabReportImport defines a lab report announced in the syllabus.
type LabReportImport struct {
	SubjectCode string  `json:"subject_code"`
	Title       string  `json:"title"`
	DueDate     string  `json:"due_date"`
	Deadline    *string `json:"deadline,omitempty"`
}

// LoadSyllabusSchema reads and parses a syllabus import JSON file.
func LoadSyllabusSchema(path string) (*SyllabusSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema SyllabusSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing syllabus file: %w", err)
	}
	return &schema, nil
}
