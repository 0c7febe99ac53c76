package schedule

import (
	"fmt"
	"time"
)

// UnschedulableError reports that no gap in the planning window can host
// an item.
type UnschedulableError struct {
	ItemID string
	Reason string
}

func (e *UnschedulableError) Error() string {
	return fmt.Sprintf("item %s unschedulable: %s", e.ItemID, e.Reason)
}

// DeadlineConflictError reports that an item's latest possible finish
// already lies in the past.
type DeadlineConflictError struct {
	ItemID   string
	Deadline time.Time
}

func (e *DeadlineConflictError) Error() string {
	return fmt.Sprintf("item %s deadline %s has already passed", e.ItemID, e.Deadline.Format("2006-01-02"))
}

// PartialPlanError reports a planning run interrupted after some
// placements were already committed. The committed count lets callers
// decide whether to keep or unwind the partial schedule.
type PartialPlanError struct {
	Committed int
	Cause     error
}

func (e *PartialPlanError) Error() string {
	return fmt.Sprintf("plan interrupted after %d placements: %v", e.Committed, e.Cause)
}

func (e *PartialPlanError) Unwrap() error {
	return e.Cause
}
