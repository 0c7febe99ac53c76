package domain

// DailyRoutineConfig describes the fixed anchors of a day: the sleep
// window, wake routine, meals, and the study pacing limits the placer
// honors. Clock values are wall-clock "HH:MM" strings.
type DailyRoutineConfig struct {
	SleepStart      string
	SleepEnd        string
	WakeRoutineMins int

	BreakfastTime string
	BreakfastMins int
	LunchTime     string
	LunchMins     int
	DinnerTime    string
	DinnerMins    int

	MaxStudyBlockMins   int
	MinBreakAfterStudy  int
	DeepWorkMinDuration int
}

// DefaultDailyRoutine returns the stock routine: 06:00 wake, 23:00
// sleep, three meals, 90-minute study blocks with 15 minutes of slack.
func DefaultDailyRoutine() DailyRoutineConfig {
	return DailyRoutineConfig{
		SleepStart:      "23:00",
		SleepEnd:        "06:00",
		WakeRoutineMins: 30,

		BreakfastTime: "07:00",
		BreakfastMins: 30,
		LunchTime:     "13:00",
		LunchMins:     45,
		DinnerTime:    "19:00",
		DinnerMins:    45,

		MaxStudyBlockMins:   90,
		MinBreakAfterStudy:  15,
		DeepWorkMinDuration: 90,
	}
}
