package domain

import "time"

// DefaultRevisionOffsets are the day offsets applied when a chapter's
// reading is completed. Explicitly scheduled revisions use
// DefaultExplicitIntervals instead; the two sets are intentionally
// distinct.
var DefaultRevisionOffsets = []int{7, 14, 21}

// DefaultExplicitIntervals are the day offsets used by the explicit
// scheduling operation when the caller passes none.
var DefaultExplicitIntervals = []int{1, 3, 7, 14, 30}

// PointsPerCredit is the reward multiplier for a completed revision.
const PointsPerCredit = 5

type Revision struct {
	ID             string
	ChapterID      string
	RevisionNumber int
	DueDate        time.Time
	Completed      bool
	CompletedAt    *time.Time
	PointsEarned   int
	CreatedAt      time.Time
}
