package schedule

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) occupied span.
type Interval struct {
	Start time.Time
	End   time.Time
}

type GapClass string

const (
	GapMicro    GapClass = "micro"
	GapStandard GapClass = "standard"
	GapDeepWork GapClass = "deep_work"
)

// Gap is a free interval between occupied blocks.
type Gap struct {
	Start       time.Time
	End         time.Time
	DurationMin int
	Class       GapClass
}

// ClassifyGap buckets a gap length: micro up to 30 minutes, deep_work
// from 90 up, standard in between.
func ClassifyGap(durationMin int) GapClass {
	switch {
	case durationMin <= 30:
		return GapMicro
	case durationMin >= 90:
		return GapDeepWork
	default:
		return GapStandard
	}
}

// FindGaps sweeps the busy intervals inside [windowStart, windowEnd) and
// returns the free intervals of at least one minute, in order. Busy
// intervals must be disjoint; overlapping input is a caller bug and the
// sweep silently clamps it.
func FindGaps(busy []Interval, windowStart, windowEnd time.Time) []Gap {
	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var gaps []Gap
	cursor := windowStart
	for _, b := range sorted {
		if !b.End.After(windowStart) || !b.Start.Before(windowEnd) {
			continue
		}
		if b.Start.After(cursor) {
			gaps = appendGap(gaps, cursor, minTime(b.Start, windowEnd))
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(windowEnd) {
		gaps = appendGap(gaps, cursor, windowEnd)
	}
	return gaps
}

func appendGap(gaps []Gap, start, end time.Time) []Gap {
	mins := int(end.Sub(start).Minutes())
	if mins < 1 {
		return gaps
	}
	return append(gaps, Gap{
		Start:       start,
		End:         end,
		DurationMin: mins,
		Class:       ClassifyGap(mins),
	})
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
