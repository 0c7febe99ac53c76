package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/schedule"
)

// FormatTimeline renders one day's block list as a styled schedule.
func FormatTimeline(tl *schedule.Timeline) string {
	var b strings.Builder

	for _, block := range tl.Blocks {
		style := ActivityStyle(block.Activity)
		label := block.Label
		if label == "" {
			label = strings.ReplaceAll(string(block.Activity), "_", " ")
		}

		line := fmt.Sprintf("%s  %s", Dim(ClockRange(block.Start, block.End)), style.Render(label))
		if block.SubjectCode != "" {
			line += "  " + SubjectBadge(block.SubjectCode)
		}
		if block.Activity == domain.ActivityFreeTime {
			line += "  " + Dim(FormatMinutes(int(block.End.Sub(block.Start).Minutes())))
		}
		b.WriteString(line + "\n")
	}

	return RenderBox(HumanDate(tl.Date), b.String())
}

// FormatWeek renders a seven-day summary: scheduled study load and free
// time per day.
func FormatWeek(days []*schedule.Timeline) string {
	headers := []string{"DAY", "CLASSES", "STUDY", "FREE"}
	rows := make([][]string, 0, len(days))

	for _, tl := range days {
		var classMin, studyMin, freeMin int
		for _, block := range tl.Blocks {
			min := int(block.End.Sub(block.Start).Minutes())
			switch block.Activity {
			case domain.ActivityUniversity:
				classMin += min
			case domain.ActivityStudy, domain.ActivityDeepWork, domain.ActivityRevision,
				domain.ActivityPractice, domain.ActivityAssignment, domain.ActivityLabWork:
				studyMin += min
			case domain.ActivityFreeTime:
				freeMin += min
			}
		}
		rows = append(rows, []string{
			Bold(tl.Date.Format("Mon Jan 2")),
			StyleBlue.Render(FormatMinutes(classMin)),
			StyleGreen.Render(FormatMinutes(studyMin)),
			Dim(FormatMinutes(freeMin)),
		})
	}

	return RenderTable(headers, rows)
}
