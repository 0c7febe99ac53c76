package schedule

import (
	"sort"
	"time"
)

// ScoredItem pairs a pending item with its computed priority tier.
type ScoredItem struct {
	Item     PendingItem
	Priority int
}

// ScoreAll computes the priority of every item as of now.
func ScoreAll(items []PendingItem, now time.Time) []ScoredItem {
	scored := make([]ScoredItem, len(items))
	for i, item := range items {
		scored[i] = ScoredItem{Item: item, Priority: Priority(item, now)}
	}
	return scored
}

// CanonicalSort orders scored items by the deterministic canonical rules:
// 1. Priority: higher first
// 2. Subject credits: higher first
// 3. Deadline: earliest first (nil last)
// 4. Duration: longer first
// 5. Item ID: lexical ascending
//
// The sort is stable, so a second call on identical state yields an
// identical order.
func CanonicalSort(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Item.Credits != b.Item.Credits {
			return a.Item.Credits > b.Item.Credits
		}

		dueA, dueB := a.Item.Deadline, b.Item.Deadline
		if (dueA == nil) != (dueB == nil) {
			return dueA != nil // non-nil before nil
		}
		if dueA != nil && dueB != nil && !dueA.Equal(*dueB) {
			return dueA.Before(*dueB)
		}

		if a.Item.DurationMin != b.Item.DurationMin {
			return a.Item.DurationMin > b.Item.DurationMin
		}
		return a.Item.ID < b.Item.ID
	})
}
