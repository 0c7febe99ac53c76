package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chronos/internal/domain"
)

// ansiPattern matches ANSI escape sequences so assertions stay
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestClockRange(t *testing.T) {
	start := time.Date(2026, 9, 7, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, "07:30 - 09:00", ClockRange(start, start.Add(90*time.Minute)))
}

func TestTruncID(t *testing.T) {
	got := stripANSI(TruncID("0123456789abcdef"))
	assert.Equal(t, "01234567", got)
}

func TestTaskStatusPill(t *testing.T) {
	assert.Contains(t, stripANSI(TaskStatusPill(domain.TaskPending)), "Pending")
	assert.Contains(t, stripANSI(TaskStatusPill(domain.TaskCompleted)), "Completed")
	assert.Contains(t, stripANSI(TaskStatusPill(domain.TaskStatus("odd"))), "odd")
}

func TestUrgencyIndicator(t *testing.T) {
	assert.Contains(t, stripANSI(UrgencyIndicator(domain.UrgencyUrgent)), "URGENT")
	assert.Contains(t, stripANSI(UrgencyIndicator(domain.UrgencySoon)), "SOON")
	assert.Contains(t, stripANSI(UrgencyIndicator(domain.UrgencyNormal)), "NORMAL")
}

func TestRenderProgressClamps(t *testing.T) {
	assert.Contains(t, stripANSI(RenderProgress(1.5, 4)), "100%")
	assert.Contains(t, stripANSI(RenderProgress(-0.2, 4)), "0%")
	assert.Contains(t, stripANSI(RenderProgress(0.5, 4)), "50%")
}

func TestRenderTableAlignment(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{"wide cell", "x"}, {"y", "z"}},
	))

	lines := regexp.MustCompile("\n").Split(out, -1)
	assert.Contains(t, lines[0], "A")
	assert.Contains(t, lines[0], "LONG HEADER")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, out, "wide cell")
}

func TestTimeOfDayLabel(t *testing.T) {
	assert.Equal(t, "early morning", TimeOfDayLabel(domain.EarlyMorning))
}
