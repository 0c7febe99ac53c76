package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// FormatTasks renders a task list.
func FormatTasks(tasks []*domain.Task) string {
	headers := []string{"ID", "TITLE", "SUBJECT", "TYPE", "LEN", "STATUS", "SLOT", "DUE"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		subject := ""
		if t.SubjectCode != nil {
			subject = *t.SubjectCode
		}

		slot := Dim("unplaced")
		if t.ScheduledStart != nil && t.ScheduledEnd != nil {
			slot = StyleFg.Render(t.ScheduledStart.Format("Jan 2 ") + ClockRange(*t.ScheduledStart, *t.ScheduledEnd))
		}

		due := Dim("--")
		if t.DueDate != nil {
			due = RelativeDateStyled(*t.DueDate)
		}

		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			SubjectBadge(subject),
			Dim(strings.ReplaceAll(string(t.TaskType), "_", " ")),
			FormatMinutes(t.DurationMin),
			TaskStatusPill(t.Status),
			slot,
			due,
		})
	}

	return RenderTable(headers, rows)
}

// FormatLabReports renders lab reports with their urgency as of now.
func FormatLabReports(reports []*domain.LabReport, now time.Time) string {
	headers := []string{"ID", "SUBJECT", "TITLE", "DUE", "DEADLINE", "URGENCY", "STATUS"}
	rows := make([][]string, 0, len(reports))

	for _, r := range reports {
		rows = append(rows, []string{
			TruncID(r.ID),
			SubjectBadge(r.SubjectCode),
			Bold(r.Title),
			RelativeDateStyled(r.DueDate),
			r.Deadline.Format("Jan 2"),
			UrgencyIndicator(r.Urgency(now)),
			Dim(string(r.Status)),
		})
	}

	return RenderTable(headers, rows)
}

// FormatReschedule summarizes a reschedule-all run.
func FormatReschedule(reason string, cleared, replaced int, unplacedTitles []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Rescheduled:"), Dim(reason)))
	b.WriteString(fmt.Sprintf("  cleared %d, replaced %d\n", cleared, replaced))
	for _, title := range unplacedTitles {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  could not place: %s", title)) + "\n")
	}
	return b.String()
}
