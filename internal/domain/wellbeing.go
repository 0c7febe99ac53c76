package domain

import "time"

type WellbeingMetric struct {
	Date             time.Time
	StudyHours       float64
	BreakCount       int
	OverdueTasks     int
	DeepWorkSessions int
	Score            float64
	Recommendations  []string
}

// WellbeingScore estimates the sustainability of one day's study load as
// a value in [0,1]. 4-8 hours of study is the healthy band; each hour
// beyond 8 costs a tenth, breaks buy back up to 0.2, every overdue task
// costs 0.05.
func WellbeingScore(studyHours float64, breakCount, overdueTasks int) float64 {
	score := 0.5

	switch {
	case studyHours >= 4 && studyHours <= 8:
		score += 0.2
	case studyHours > 8:
		score -= 0.1 * (studyHours - 8)
	default:
		score += 0.05 * studyHours
	}

	breakFactor := 0.05 * float64(breakCount)
	if breakFactor > 0.2 {
		breakFactor = 0.2
	}
	score += breakFactor

	score -= 0.05 * float64(overdueTasks)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
