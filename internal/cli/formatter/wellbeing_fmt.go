package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

const wellbeingBarWidth = 20

// FormatWellbeing renders one day's wellbeing metric with its
// recommendations.
func FormatWellbeing(m *domain.WellbeingMetric) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n\n", Bold("Score"), RenderProgress(m.Score, wellbeingBarWidth)))
	b.WriteString(fmt.Sprintf("Study        %s\n", StyleFg.Render(fmt.Sprintf("%.1fh", m.StudyHours))))
	b.WriteString(fmt.Sprintf("Breaks       %s\n", StyleFg.Render(fmt.Sprintf("%d", m.BreakCount))))
	b.WriteString(fmt.Sprintf("Deep work    %s\n", StyleFg.Render(fmt.Sprintf("%d", m.DeepWorkSessions))))

	overdue := StyleGreen.Render("0")
	if m.OverdueTasks > 0 {
		overdue = StyleRed.Render(fmt.Sprintf("%d", m.OverdueTasks))
	}
	b.WriteString(fmt.Sprintf("Overdue      %s\n", overdue))

	if len(m.Recommendations) > 0 {
		b.WriteString("\n")
		for _, r := range m.Recommendations {
			b.WriteString(StyleYellow.Render("  → "+r) + "\n")
		}
	}

	return RenderBox("Wellbeing "+HumanDate(m.Date), b.String())
}

// FormatPomodoro renders the pomodoro register state.
func FormatPomodoro(s *domain.PomodoroStatus, now time.Time) string {
	var b strings.Builder

	switch s.Phase {
	case domain.PomodoroIdle:
		b.WriteString(Dim("idle") + "\n")
	case domain.PomodoroWork:
		b.WriteString(StyleGreen.Render("● working") + "\n")
	case domain.PomodoroShortBreak:
		b.WriteString(StyleBlue.Render("○ short break") + "\n")
	case domain.PomodoroLongBreak:
		b.WriteString(StyleBlue.Render("○ long break") + "\n")
	}

	if s.PhaseStartedAt != nil {
		elapsed := int(now.Sub(*s.PhaseStartedAt).Minutes())
		b.WriteString(fmt.Sprintf("%s of %s elapsed\n", FormatMinutes(elapsed), FormatMinutes(s.PhaseDurationMin())))
	}
	b.WriteString(fmt.Sprintf("cycles completed: %d\n", s.CyclesCompleted))

	return RenderBox("Pomodoro", b.String())
}

// FormatBreak renders a started or finished break.
func FormatBreak(br *domain.BreakSession) string {
	if br.EndedAt == nil {
		return fmt.Sprintf("%s %s break started, aim for %s\n",
			StyleGreen.Render("●"), string(br.BreakType), Bold(FormatMinutes(br.SuggestedDurationMin)))
	}
	check := StyleYellow.Render("cut short")
	if br.WasCompleted {
		check = StyleGreen.Render("completed")
	}
	return fmt.Sprintf("%s break ended after %s (%s)\n",
		string(br.BreakType), Bold(FormatMinutes(br.ActualDurationMin)), check)
}
