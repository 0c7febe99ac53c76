package domain

import "time"

const (
	// DeepWorkMinSeconds marks a session as deep work at 90 minutes.
	DeepWorkMinSeconds = 5400
	// StreakMinSeconds is the minimum session length that counts toward
	// the daily streak.
	StreakMinSeconds = 1800
	// MaxSessionPoints caps the points awarded for a single session.
	MaxSessionPoints = 50
	// PointsPerTenMinutes: one point per 600 seconds of recorded study.
	PointsPerTenMinutes = 600
)

type StudySession struct {
	ID              string
	SubjectCode     *string
	ChapterID       *string
	Title           string
	StartedAt       time.Time
	StoppedAt       *time.Time
	DurationSeconds int
	IsDeepWork      bool
	PointsEarned    int
}

// Active reports whether the session is still running.
func (s *StudySession) Active() bool {
	return s.StoppedAt == nil
}

// SessionPoints computes the points for a session of the given length.
func SessionPoints(durationSeconds int) int {
	p := durationSeconds / PointsPerTenMinutes
	if p > MaxSessionPoints {
		return MaxSessionPoints
	}
	return p
}

// SessionEffectiveness is recorded once per completed session and feeds
// the learning-pattern aggregation.
type SessionEffectiveness struct {
	ID              string
	SessionID       string
	SubjectCode     *string
	TimeOfDay       TimeOfDay
	DayOfWeek       time.Weekday
	DurationMin     int
	FocusScore      float64
	EnergyLevel     int
	MaterialCovered string
	CreatedAt       time.Time
}

// DailyStudyStats aggregates one calendar day of recorded sessions.
type DailyStudyStats struct {
	Date            time.Time
	StudySeconds    int
	DeepWorkSeconds int
	SessionCount    int
	PointsEarned    int
}
