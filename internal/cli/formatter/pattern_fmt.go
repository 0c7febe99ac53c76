package formatter

import (
	"fmt"

	"github.com/alexanderramin/chronos/internal/domain"
)

// FormatPatterns renders the learned per-subject patterns, the global
// row first.
func FormatPatterns(patterns []*domain.LearningPattern) string {
	headers := []string{"SUBJECT", "BEST TIME", "AVG LEN", "EFFECTIVENESS", "SAMPLES"}
	rows := make([][]string, 0, len(patterns))

	for _, p := range patterns {
		subject := Dim("overall")
		if p.SubjectCode != nil {
			subject = SubjectBadge(*p.SubjectCode)
		}
		rows = append(rows, []string{
			subject,
			StyleFg.Render(TimeOfDayLabel(p.BestStudyTime)),
			FormatMinutes(int(p.AvgDurationMin)),
			RenderProgress(p.EffectivenessScore, 10),
			fmt.Sprintf("%d", p.SamplesCount),
		})
	}

	return RenderTable(headers, rows)
}

// FormatRecommendations renders recommendation lines with confidence.
func FormatRecommendations(recs []domain.Recommendation) string {
	if len(recs) == 0 {
		return Dim("Not enough sessions recorded yet.") + "\n"
	}

	var out string
	for _, r := range recs {
		out += fmt.Sprintf("%s %s %s\n",
			StyleGreen.Render("●"),
			StyleFg.Render(r.Message),
			Dim(fmt.Sprintf("(%.0f%% confidence)", r.Confidence*100)))
	}
	return out
}
