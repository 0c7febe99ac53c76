package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// Block is one rendered timeline entry. TaskID is set only for blocks
// backed by a placed task.
type Block struct {
	Start       time.Time
	End         time.Time
	Activity    domain.ActivityType
	Label       string
	SubjectCode string
	TaskID      string
	EnergyLevel int
}

// Timeline is the full-day block list: a contiguous partition of the
// calendar day, sleep included.
type Timeline struct {
	Date   time.Time
	Blocks []Block
}

// BuilderConfig carries the fixed day structure the builder composes
// around placed tasks.
type BuilderConfig struct {
	Routine   domain.DailyRoutineConfig
	Timetable domain.Timetable
	Curve     EnergyCurve
}

// DefaultBuilderConfig returns the stock routine, timetable and energy
// curve.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		Routine:   domain.DefaultDailyRoutine(),
		Timetable: domain.DefaultTimetable(),
		Curve:     DefaultEnergyCurve(),
	}
}

// BuildDay composes the timeline for one date from the sleep window,
// wake routine, meals, timetable classes and the placed tasks whose
// scheduled_start falls on the date. Remaining space becomes free_time
// blocks, and every block is annotated with its energy level.
//
// The result partitions [00:00, 24:00) with no gaps and no overlaps.
// Overlapping fixed blocks or tasks are a caller bug and yield an error.
func BuildDay(date time.Time, cfg BuilderConfig, tasks []*domain.Task) (*Timeline, error) {
	day := domain.DateOf(date)
	dayEnd := day.AddDate(0, 0, 1)

	wake, err := clockOn(day, cfg.Routine.SleepEnd)
	if err != nil {
		return nil, err
	}
	sleepStart, err := clockOn(day, cfg.Routine.SleepStart)
	if err != nil {
		return nil, err
	}
	if !wake.Before(sleepStart) {
		return nil, fmt.Errorf("sleep window leaves no waking hours on %s", day.Format("2006-01-02"))
	}

	var blocks []Block
	// The sleep window wraps midnight, so it appears split at the day
	// boundaries.
	blocks = append(blocks, Block{Start: day, End: wake, Activity: domain.ActivitySleep, Label: "Sleep"})
	blocks = append(blocks, Block{Start: sleepStart, End: dayEnd, Activity: domain.ActivitySleep, Label: "Sleep"})

	blocks = append(blocks, Block{
		Start:    wake,
		End:      wake.Add(time.Duration(cfg.Routine.WakeRoutineMins) * time.Minute),
		Activity: domain.ActivityWakeRoutine,
		Label:    "Morning routine",
	})

	meals := []struct {
		clock    string
		mins     int
		activity domain.ActivityType
		label    string
	}{
		{cfg.Routine.BreakfastTime, cfg.Routine.BreakfastMins, domain.ActivityBreakfast, "Breakfast"},
		{cfg.Routine.LunchTime, cfg.Routine.LunchMins, domain.ActivityLunch, "Lunch"},
		{cfg.Routine.DinnerTime, cfg.Routine.DinnerMins, domain.ActivityDinner, "Dinner"},
	}
	for _, m := range meals {
		start, err := clockOn(day, m.clock)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, Block{
			Start:    start,
			End:      start.Add(time.Duration(m.mins) * time.Minute),
			Activity: m.activity,
			Label:    m.label,
		})
	}

	for _, class := range cfg.Timetable.ClassesOn(day) {
		start, err := clockOn(day, class.Start)
		if err != nil {
			return nil, err
		}
		end, err := clockOn(day, class.End)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, Block{
			Start:       start,
			End:         end,
			Activity:    domain.ActivityUniversity,
			Label:       fmt.Sprintf("%s %s (%s)", class.Subject, class.Type, class.Room),
			SubjectCode: class.Subject,
		})
	}

	for _, task := range tasks {
		if !task.Placed() || !domain.DateOf(*task.ScheduledStart).Equal(day) {
			continue
		}
		b := Block{
			Start:    task.ScheduledStart.UTC(),
			End:      task.ScheduledEnd.UTC(),
			Activity: taskActivity(task),
			Label:    task.Title,
			TaskID:   task.ID,
		}
		if task.SubjectCode != nil {
			b.SubjectCode = *task.SubjectCode
		}
		blocks = append(blocks, b)
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Start.Before(blocks[i-1].End) {
			return nil, fmt.Errorf("overlapping blocks %q and %q on %s",
				blocks[i-1].Label, blocks[i].Label, day.Format("2006-01-02"))
		}
	}

	busy := make([]Interval, len(blocks))
	for i, b := range blocks {
		busy[i] = Interval{Start: b.Start, End: b.End}
	}
	for _, gap := range FindGaps(busy, day, dayEnd) {
		blocks = append(blocks, Block{
			Start:    gap.Start,
			End:      gap.End,
			Activity: domain.ActivityFreeTime,
			Label:    "Free time",
		})
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })

	for i := range blocks {
		blocks[i].EnergyLevel = cfg.Curve.LevelAt(blocks[i].Start.Hour())
	}
	return &Timeline{Date: day, Blocks: blocks}, nil
}

// FreeGaps returns the day's free intervals between the fixed structure
// and the already-placed tasks, restricted to the waking window. This is
// the placer's day budget.
func FreeGaps(date time.Time, cfg BuilderConfig, tasks []*domain.Task) ([]Gap, error) {
	tl, err := BuildDay(date, cfg, tasks)
	if err != nil {
		return nil, err
	}
	var gaps []Gap
	for _, b := range tl.Blocks {
		if b.Activity != domain.ActivityFreeTime {
			continue
		}
		mins := int(b.End.Sub(b.Start).Minutes())
		gaps = append(gaps, Gap{Start: b.Start, End: b.End, DurationMin: mins, Class: ClassifyGap(mins)})
	}
	return gaps, nil
}

func taskActivity(t *domain.Task) domain.ActivityType {
	if t.IsDeepWork {
		return domain.ActivityDeepWork
	}
	switch t.TaskType {
	case domain.TaskRevision:
		return domain.ActivityRevision
	case domain.TaskPractice:
		return domain.ActivityPractice
	case domain.TaskAssignment:
		return domain.ActivityAssignment
	case domain.TaskLabWork:
		return domain.ActivityLabWork
	case domain.TaskBreak:
		return domain.ActivityBreak
	case domain.TaskFreeTime:
		return domain.ActivityFreeTime
	default:
		return domain.ActivityStudy
	}
}

// clockOn anchors a wall-clock "HH:MM" string on the given date.
func clockOn(day time.Time, hhmm string) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("clock %q out of range", hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}
