package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/domain"
)

func TestConvert_SubjectsAndChapters(t *testing.T) {
	schema := &SyllabusSchema{
		Subjects: []SubjectImport{
			{Code: "math101", Name: "Calculus I", Credits: 4, Type: "practice_heavy",
				Chapters: []ChapterImport{{Number: 1, Title: "Limits"}, {Number: 2, Title: "Derivatives"}}},
			{Code: "THER105", Name: "Thermodynamics", Credits: 3, Type: "concept_heavy", Color: "#d65d0e"},
		},
	}

	bundle, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, bundle.Subjects, 2)

	// Codes are normalized to upper case.
	math := bundle.Subjects[0]
	assert.Equal(t, "MATH101", math.Code)
	assert.Equal(t, domain.SubjectPracticeHeavy, math.Type)
	assert.Equal(t, 4, math.Credits)

	chapters := bundle.Chapters["MATH101"]
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, "Derivatives", chapters[1].Title)
	assert.NotEmpty(t, chapters[0].ID)
	assert.NotEqual(t, chapters[0].ID, chapters[1].ID)

	assert.Empty(t, bundle.Chapters["THER105"])
	assert.Empty(t, bundle.LabReports)
}

func TestConvert_LabReports(t *testing.T) {
	schema := &SyllabusSchema{
		Subjects: []SubjectImport{
			{Code: "THER105", Name: "Thermodynamics", Credits: 3, Type: "concept_heavy"},
		},
		LabReports: []LabReportImport{
			{SubjectCode: "ther105", Title: "Heat transfer", DueDate: "2026-10-01", Deadline: ptrStr("2026-10-03")},
			{SubjectCode: "THER105", Title: "Entropy lab", DueDate: "2026-11-01"},
		},
	}

	bundle, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, bundle.LabReports, 2)

	first := bundle.LabReports[0]
	assert.Equal(t, "THER105", first.SubjectCode)
	assert.Equal(t, domain.LabReportPending, first.Status)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.Equal(t, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), first.Deadline)

	// The hard deadline falls back to the due date when absent.
	second := bundle.LabReports[1]
	assert.True(t, second.Deadline.Equal(second.DueDate))
}

func TestConvert_BadDateSurfaces(t *testing.T) {
	schema := &SyllabusSchema{
		Subjects: []SubjectImport{
			{Code: "MATH101", Name: "Calculus I", Credits: 4, Type: "practice_heavy"},
		},
		LabReports: []LabReportImport{
			{SubjectCode: "MATH101", Title: "x", DueDate: "not-a-date"},
		},
	}

	_, err := Convert(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing due_date")
}
