package domain

import "time"

type BreakSession struct {
	ID                   string
	BreakType            BreakType
	StartedAt            time.Time
	EndedAt              *time.Time
	SuggestedDurationMin int
	ActualDurationMin    int
	WasCompleted         bool
}

// BreakDuration holds the suggested and maximum length for a break type.
type BreakDuration struct {
	SuggestedMin int
	MaxMin       int
}

// BreakDurations maps each break type to its duration envelope.
var BreakDurations = map[BreakType]BreakDuration{
	BreakShort:      {SuggestedMin: 5, MaxMin: 10},
	BreakPomodoro:   {SuggestedMin: 5, MaxMin: 5},
	BreakMeal:       {SuggestedMin: 30, MaxMin: 60},
	BreakExercise:   {SuggestedMin: 15, MaxMin: 30},
	BreakMeditation: {SuggestedMin: 5, MaxMin: 15},
	BreakWalk:       {SuggestedMin: 10, MaxMin: 20},
	BreakLong:       {SuggestedMin: 15, MaxMin: 20},
}

const (
	PomodoroWorkMin       = 25
	PomodoroShortBreakMin = 5
	PomodoroLongBreakMin  = 15
	PomodoroCyclesPerLong = 4
)

// PomodoroStatus is a singleton register tracking the current pomodoro
// phase.
type PomodoroStatus struct {
	Phase           PomodoroPhase
	CyclesCompleted int
	PhaseStartedAt  *time.Time
}

// PhaseDurationMin returns the nominal length of the current phase, or 0
// when idle.
func (p *PomodoroStatus) PhaseDurationMin() int {
	switch p.Phase {
	case PomodoroWork:
		return PomodoroWorkMin
	case PomodoroShortBreak:
		return PomodoroShortBreakMin
	case PomodoroLongBreak:
		return PomodoroLongBreakMin
	default:
		return 0
	}
}
