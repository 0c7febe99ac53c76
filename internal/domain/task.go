package domain

import "time"

type Task struct {
	ID          string
	Title       string
	SubjectCode *string
	Priority    int
	DurationMin int
	TaskType    TaskType
	Status      TaskStatus
	IsDeepWork  bool

	// Placement. Both nil until the placer commits a slot; when set,
	// ScheduledEnd - ScheduledStart always equals DurationMin.
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time

	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Placed reports whether the task currently occupies a timeline slot.
func (t *Task) Placed() bool {
	return t.ScheduledStart != nil && t.ScheduledEnd != nil
}
