package domain

import (
	"fmt"
	"time"
)

type Notification struct {
	ID       string
	Type     NotificationType
	Priority NotificationPriority
	Title    string
	Message  string

	// DedupKey prevents a periodic scan from emitting the same alert
	// twice, e.g. "reminder:task:<id>:<date>".
	DedupKey string

	CreatedAt    time.Time
	ScheduledFor time.Time
	SentAt       *time.Time
	ReadAt       *time.Time
	DismissedAt  *time.Time
	ExpiresAt    *time.Time

	ActionURL   string
	ActionLabel string
	ActionData  string
}

// NotificationPreference controls delivery for one notification type.
// Quiet hours use wall-clock "HH:MM" bounds and may wrap midnight; a
// FrequencyLimit of 0 means unlimited.
type NotificationPreference struct {
	Type            NotificationType
	Enabled         bool
	QuietHoursStart string
	QuietHoursEnd   string
	FrequencyLimit  int
	Channels        string
}

// HasQuietHours reports whether a quiet window is configured.
func (p *NotificationPreference) HasQuietHours() bool {
	return p.QuietHoursStart != "" && p.QuietHoursEnd != ""
}

// InQuietHours reports whether t falls inside the configured quiet
// window. The window is half-open [start, end) and may wrap midnight.
func (p *NotificationPreference) InQuietHours(t time.Time) bool {
	if !p.HasQuietHours() {
		return false
	}
	start, err1 := minuteOfDay(p.QuietHoursStart)
	end, err2 := minuteOfDay(p.QuietHoursEnd)
	if err1 != nil || err2 != nil {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	if start <= end {
		return now >= start && now < end
	}
	return now >= start || now < end
}

// NextOutsideQuietHours returns the earliest instant at or after t that
// lies outside the quiet window.
func (p *NotificationPreference) NextOutsideQuietHours(t time.Time) time.Time {
	if !p.InQuietHours(t) {
		return t
	}
	end, err := minuteOfDay(p.QuietHoursEnd)
	if err != nil {
		return t
	}
	candidate := time.Date(t.Year(), t.Month(), t.Day(), end/60, end%60, 0, 0, t.Location())
	if !candidate.After(t) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

func minuteOfDay(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", hhmm)
	}
	return h*60 + m, nil
}

// DefaultNotificationPreferences seeds one preference row per type.
func DefaultNotificationPreferences() []NotificationPreference {
	return []NotificationPreference{
		{Type: NotifyReminder, Enabled: true, QuietHoursStart: "22:00", QuietHoursEnd: "07:00", FrequencyLimit: 10, Channels: "in_app"},
		{Type: NotifyAchievement, Enabled: true, FrequencyLimit: 0, Channels: "in_app"},
		{Type: NotifySuggestion, Enabled: true, QuietHoursStart: "22:00", QuietHoursEnd: "07:00", FrequencyLimit: 5, Channels: "in_app"},
		{Type: NotifyWarning, Enabled: true, FrequencyLimit: 3, Channels: "in_app"},
		{Type: NotifyDeadline, Enabled: true, FrequencyLimit: 0, Channels: "in_app"},
		{Type: NotifyBreak, Enabled: true, FrequencyLimit: 4, Channels: "in_app"},
		{Type: NotifyMotivation, Enabled: true, QuietHoursStart: "22:00", QuietHoursEnd: "07:00", FrequencyLimit: 1, Channels: "in_app"},
	}
}
