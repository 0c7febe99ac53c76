package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chronos/internal/schedule"
)

// FormatPlanResult renders a placement sweep outcome: blocks grouped by
// day, unplaced items listed with their reasons.
func FormatPlanResult(result *schedule.PlanResult) string {
	var b strings.Builder

	var lastDay string
	for _, p := range result.Placed {
		day := p.Start.Format("Mon Jan 2")
		if day != lastDay {
			if lastDay != "" {
				b.WriteString("\n")
			}
			b.WriteString(Header(day) + "\n")
			lastDay = day
		}
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim(ClockRange(p.Start, p.End)),
			Bold(p.Item.Title),
			SubjectBadge(p.Item.SubjectCode)))
	}

	if len(result.Placed) == 0 {
		b.WriteString(Dim("Nothing to place.") + "\n")
	}

	if len(result.Unplaced) > 0 {
		b.WriteString("\n")
		for _, u := range result.Unplaced {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  could not place %q: %s", u.Item.Title, u.Reason)) + "\n")
		}
	}

	return b.String()
}
