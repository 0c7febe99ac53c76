package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chronos/internal/domain"
)

const masteryBarWidth = 10

// FormatSubjects renders the subject list.
func FormatSubjects(subjects []*domain.Subject) string {
	headers := []string{"CODE", "NAME", "CREDITS", "TYPE"}
	rows := make([][]string, 0, len(subjects))

	for _, s := range subjects {
		rows = append(rows, []string{
			SubjectBadge(s.Code),
			Bold(s.Name),
			fmt.Sprintf("%d", s.Credits),
			Dim(strings.ReplaceAll(string(s.Type), "_", " ")),
		})
	}

	return RenderTable(headers, rows)
}

// FormatChapters renders a subject's chapters with reading state and
// mastery, progress keyed by chapter ID.
func FormatChapters(subjectCode string, chapters []*domain.Chapter, progress map[string]*domain.ChapterProgress) string {
	headers := []string{"#", "TITLE", "READING", "MASTERY", "REVISIONS"}
	rows := make([][]string, 0, len(chapters))

	for _, c := range chapters {
		reading := StyleDim.Render("○ Unread")
		mastery := Dim("--")
		revisions := "0"
		if p, ok := progress[c.ID]; ok {
			reading = ReadingPill(p.ReadingStatus)
			mastery = RenderProgress(float64(p.MasteryLevel)/100.0, masteryBarWidth)
			revisions = fmt.Sprintf("%d", p.RevisionCount)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Number),
			Bold(c.Title),
			reading,
			mastery,
			revisions,
		})
	}

	return RenderBox(subjectCode, RenderTable(headers, rows))
}
