package domain

import "time"

type LabReport struct {
	ID          string
	SubjectCode string
	Title       string
	DueDate     time.Time
	Deadline    time.Time
	Status      LabReportStatus
	CreatedAt   time.Time
}

// Urgency derives the alert tier from days remaining until the due date.
func (r *LabReport) Urgency(now time.Time) Urgency {
	daysLeft := int(r.Deadline.Sub(now).Hours() / 24)
	switch {
	case daysLeft <= 1:
		return UrgencyUrgent
	case daysLeft <= 3:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
