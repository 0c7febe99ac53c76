package domain

import (
	"math"
	"time"
)

const (
	// MinPatternSamples is the sample floor below which the analyzer
	// refuses to recommend.
	MinPatternSamples = 5
	// MinSuggestedDurationMin and MaxSuggestedDurationMin clamp the
	// duration recommendation.
	MinSuggestedDurationMin = 25
	MaxSuggestedDurationMin = 120
)

// LearningPattern holds running averages per subject. A nil SubjectCode
// is the global pattern across all subjects.
type LearningPattern struct {
	SubjectCode        *string
	AvgDurationMin     float64
	BestStudyTime      TimeOfDay
	EffectivenessScore float64
	SamplesCount       int
	UpdatedAt          time.Time
}

// Absorb folds one effectiveness sample into the running averages.
// Best study time is maintained separately from the per-bucket means.
func (p *LearningPattern) Absorb(e *SessionEffectiveness) {
	n := float64(p.SamplesCount)
	p.AvgDurationMin = (p.AvgDurationMin*n + float64(e.DurationMin)) / (n + 1)
	p.EffectivenessScore = (p.EffectivenessScore*n + e.FocusScore) / (n + 1)
	p.SamplesCount++
}

// SuggestedDurationMin returns the clamped duration recommendation, or
// 0 when the sample count is below the floor.
func (p *LearningPattern) SuggestedDurationMin() int {
	if p.SamplesCount < MinPatternSamples {
		return 0
	}
	d := int(math.Round(p.AvgDurationMin))
	if d < MinSuggestedDurationMin {
		return MinSuggestedDurationMin
	}
	if d > MaxSuggestedDurationMin {
		return MaxSuggestedDurationMin
	}
	return d
}

// Confidence grows logarithmically with sample count, capped at 0.95.
func (p *LearningPattern) Confidence() float64 {
	c := p.EffectivenessScore + 0.4*math.Log10(float64(p.SamplesCount)+1)/2
	return math.Min(0.95, c)
}

type Recommendation struct {
	Kind       RecommendationKind
	Message    string
	Confidence float64
}

// ClassifyHour buckets a clock hour into a time-of-day class.
func ClassifyHour(hour int) TimeOfDay {
	switch {
	case hour < 5:
		return LateNight
	case hour < 6:
		return EarlyMorning
	case hour <= 11:
		return Morning
	case hour <= 16:
		return Afternoon
	case hour <= 20:
		return Evening
	default:
		return Night
	}
}
