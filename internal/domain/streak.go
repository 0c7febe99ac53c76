package domain

import "time"

// UserStreak is a singleton register. LongestStreak never falls below
// CurrentStreak.
type UserStreak struct {
	CurrentStreak int
	LongestStreak int
	TotalPoints   int
	LastActivity  *time.Time
}

// RecordActivity applies the streak update rule for a qualifying activity
// on the given day. Same-day repeats are no-ops; a one-day gap extends the
// streak; anything longer resets it to 1.
func (s *UserStreak) RecordActivity(today time.Time) {
	day := DateOf(today)
	if s.LastActivity != nil && !s.LastActivity.Before(day) {
		return
	}
	yesterday := day.AddDate(0, 0, -1)
	switch {
	case s.LastActivity == nil || s.LastActivity.Before(yesterday):
		s.CurrentStreak = 1
	case s.LastActivity.Equal(yesterday):
		s.CurrentStreak++
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivity = &day
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
