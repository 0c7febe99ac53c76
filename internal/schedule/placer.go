package schedule

import (
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// PlacerConfig bounds how placed study is paced.
type PlacerConfig struct {
	// MaxBlockMin caps one continuous study block.
	MaxBlockMin int
	// SlackMin is the break left after any placed block of 90 minutes or
	// more.
	SlackMin int
}

// DefaultPlacerConfig mirrors the stock daily routine limits.
func DefaultPlacerConfig() PlacerConfig {
	return PlacerConfig{MaxBlockMin: 90, SlackMin: 15}
}

// Placement is one committed slot.
type Placement struct {
	Item  PendingItem
	Start time.Time
	End   time.Time
}

// Unplaced is an item the sweep could not host, with the reason.
type Unplaced struct {
	Item   PendingItem
	Reason string
}

// DayBudget is one day's free gaps available to the placer.
type DayBudget struct {
	Date time.Time
	Gaps []Gap
}

// PlanResult is the outcome of one placement sweep.
type PlanResult struct {
	Placed   []Placement
	Unplaced []Unplaced
}

// CommitFunc persists one placement. The placer calls it before
// considering the next item; an error aborts the sweep with the
// placements committed so far in the result.
type CommitFunc func(p Placement) error

// Place runs the priority sweep: items are scored and canonically
// sorted, then each is placed into the gap that maximizes its match
// score across the day budgets, in order. Placement consumes the gap,
// leaving slack after blocks of 90 minutes or more.
//
// Given identical state the sweep is deterministic.
func Place(items []PendingItem, days []DayBudget, cfg PlacerConfig, now time.Time, commit CommitFunc) (*PlanResult, error) {
	scored := ScoreAll(items, now)
	CanonicalSort(scored)

	result := &PlanResult{}
	today := domain.DateOf(now)
	for _, s := range scored {
		item := s.Item
		dayIdx, gapIdx, ok := bestGap(item, days, today)
		if !ok {
			result.Unplaced = append(result.Unplaced, Unplaced{Item: item, Reason: "no gap fits"})
			continue
		}

		gap := days[dayIdx].Gaps[gapIdx]
		p := Placement{
			Item:  item,
			Start: gap.Start,
			End:   gap.Start.Add(time.Duration(item.DurationMin) * time.Minute),
		}
		if commit != nil {
			if err := commit(p); err != nil {
				return result, err
			}
		}
		result.Placed = append(result.Placed, p)
		days[dayIdx].Gaps = consumeGap(days[dayIdx].Gaps, gapIdx, p.End, item.DurationMin, cfg)
	}
	return result, nil
}

// bestGap finds the gap with the highest match score that can host the
// item. Ties go to the earliest gap, which the iteration order gives us.
// Overdue items ignore their (already missed) deadline and take the best
// remaining gap.
func bestGap(item PendingItem, days []DayBudget, today time.Time) (dayIdx, gapIdx int, ok bool) {
	best := -1 << 31
	for di, day := range days {
		if item.Deadline != nil && !item.Deadline.Before(today) && day.Date.After(*item.Deadline) {
			continue
		}
		for gi, gap := range day.Gaps {
			if gap.DurationMin < item.DurationMin {
				continue
			}
			if score := MatchScore(item, gap); score > best {
				best = score
				dayIdx, gapIdx, ok = di, gi, true
			}
		}
	}
	return dayIdx, gapIdx, ok
}

// consumeGap shrinks the chosen gap after a placement, dropping it when
// nothing usable remains. Long blocks additionally consume break slack.
func consumeGap(gaps []Gap, idx int, placedEnd time.Time, placedMin int, cfg PlacerConfig) []Gap {
	gap := gaps[idx]
	remainderStart := placedEnd
	if placedMin >= 90 {
		remainderStart = remainderStart.Add(time.Duration(cfg.SlackMin) * time.Minute)
	}

	out := append(gaps[:idx:idx], gaps[idx+1:]...)
	mins := int(gap.End.Sub(remainderStart).Minutes())
	if mins >= 1 {
		remainder := Gap{
			Start:       remainderStart,
			End:         gap.End,
			DurationMin: mins,
			Class:       ClassifyGap(mins),
		}
		// Keep gaps ordered by start.
		inserted := false
		for i, g := range out {
			if remainder.Start.Before(g.Start) {
				out = append(out[:i], append([]Gap{remainder}, out[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			out = append(out, remainder)
		}
	}
	return out
}
