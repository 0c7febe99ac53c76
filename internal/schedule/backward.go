package schedule

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// RampAllocations splits totalMin across n days with a linear ramp that
// intensifies toward the last day: day i receives fraction (i+1)/sum(j+1).
// Rounding drift lands on the final day so the total is exact.
func RampAllocations(totalMin, n int) []int {
	if n <= 0 {
		return nil
	}
	denom := n * (n + 1) / 2
	alloc := make([]int, n)
	assigned := 0
	for i := 0; i < n-1; i++ {
		alloc[i] = totalMin * (i + 1) / denom
		assigned += alloc[i]
	}
	alloc[n-1] = totalMin - assigned
	return alloc
}

// PlanBackward distributes the item's required time across the days
// [now, deadline), ramping up toward the deadline. Each day's allocation
// is placed as one or more blocks of at most MaxBlockMin minutes with
// break slack between them; a day that cannot host its allocation
// overflows to the nearest earlier day with room.
//
// The day budgets must cover [now, deadline) in ascending date order.
func PlanBackward(item PendingItem, requiredMin int, days []DayBudget, cfg PlacerConfig, now time.Time, commit CommitFunc) (*PlanResult, error) {
	if item.Deadline == nil {
		return nil, fmt.Errorf("backward planning requires a deadline")
	}
	if !item.Deadline.After(now) {
		return nil, &DeadlineConflictError{ItemID: item.ID, Deadline: *item.Deadline}
	}

	var usable []int
	for i, d := range days {
		if d.Date.Before(domain.DateOf(now)) || !d.Date.Before(domain.DateOf(*item.Deadline)) {
			continue
		}
		usable = append(usable, i)
	}
	if len(usable) == 0 {
		return nil, &UnschedulableError{ItemID: item.ID, Reason: "no days before deadline"}
	}

	alloc := RampAllocations(requiredMin, len(usable))

	result := &PlanResult{}
	// Walk from the deadline backwards so overflow falls onto earlier,
	// emptier days.
	pending := 0
	for k := len(usable) - 1; k >= 0; k-- {
		want := alloc[k] + pending
		pending = 0
		placedMin, placements := fillDay(item, &days[usable[k]], want, cfg)
		if commit != nil {
			for _, p := range placements {
				if err := commit(p); err != nil {
					return result, err
				}
			}
		}
		result.Placed = append(result.Placed, placements...)
		if placedMin < want {
			pending = want - placedMin
		}
	}
	if pending > 0 {
		return result, &UnschedulableError{
			ItemID: item.ID,
			Reason: fmt.Sprintf("%d minutes could not be scheduled before the deadline", pending),
		}
	}
	return result, nil
}

// fillDay places up to wantMin minutes of the item into the day's gaps
// as blocks capped at MaxBlockMin, consuming slack between them.
func fillDay(item PendingItem, day *DayBudget, wantMin int, cfg PlacerConfig) (int, []Placement) {
	placed := 0
	var placements []Placement
	for placed < wantMin {
		remaining := wantMin - placed
		blockMin := remaining
		if blockMin > cfg.MaxBlockMin {
			blockMin = cfg.MaxBlockMin
		}

		idx := -1
		for i, gap := range day.Gaps {
			if gap.DurationMin >= blockMin {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Try a shorter block that still fits the largest gap.
			for i, gap := range day.Gaps {
				if gap.DurationMin >= 15 && gap.DurationMin < blockMin {
					idx = i
					blockMin = gap.DurationMin
					break
				}
			}
		}
		if idx < 0 {
			break
		}

		gap := day.Gaps[idx]
		p := Placement{
			Item:  item,
			Start: gap.Start,
			End:   gap.Start.Add(time.Duration(blockMin) * time.Minute),
		}
		placements = append(placements, p)
		placed += blockMin
		day.Gaps = consumeGap(day.Gaps, idx, p.End, blockMin, cfg)
	}
	return placed, placements
}
