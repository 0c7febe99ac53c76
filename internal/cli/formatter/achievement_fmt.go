package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/chronos/internal/domain"
)

func rarityStyle(r domain.Rarity) lipgloss.Style {
	switch r {
	case domain.RarityLegendary:
		return StyleHeader
	case domain.RarityEpic:
		return StylePurple
	case domain.RarityRare:
		return StyleBlue
	default:
		return StyleFg
	}
}

// FormatAchievements renders the full catalog against the user's
// progress rows, keyed by code, with the streak summary on top.
func FormatAchievements(streak *domain.UserStreak, progress map[string]*domain.UserAchievement) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		Bold("Streak"), StyleGreen.Render(fmt.Sprintf("%dd", streak.CurrentStreak)),
		Bold("Longest"), StyleFg.Render(fmt.Sprintf("%dd", streak.LongestStreak)),
		Bold("Points"), StyleYellow.Render(fmt.Sprintf("%d", streak.TotalPoints))))

	headers := []string{"ACHIEVEMENT", "DESCRIPTION", "PROGRESS", "PTS"}
	var rows [][]string

	for _, def := range domain.AchievementCatalog() {
		name := rarityStyle(def.Rarity).Render(def.Title)

		state := Dim("locked")
		if p, ok := progress[def.Code]; ok {
			if p.IsComplete {
				state = StyleGreen.Render("✔ earned")
			} else if def.ThresholdValue > 0 {
				state = RenderProgress(float64(p.ProgressValue)/float64(def.ThresholdValue), 8)
			}
		}

		rows = append(rows, []string{
			name,
			Dim(def.Description),
			state,
			fmt.Sprintf("%d", def.Points),
		})
	}

	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
