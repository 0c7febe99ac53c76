package formatter

import (
	"strings"

	"github.com/alexanderramin/chronos/internal/domain"
)

func notificationTypeStyle(t domain.NotificationType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	switch t {
	case domain.NotifyWarning:
		return StyleRed.Render(label)
	case domain.NotifyDeadline:
		return StyleYellow.Render(label)
	case domain.NotifyAchievement:
		return StylePurple.Render(label)
	default:
		return StyleBlue.Render(label)
	}
}

// FormatNotifications renders the notification list, unread rows bold.
func FormatNotifications(list []*domain.Notification) string {
	if len(list) == 0 {
		return Dim("No notifications.") + "\n"
	}

	headers := []string{"ID", "TYPE", "TITLE", "MESSAGE", "WHEN"}
	rows := make([][]string, 0, len(list))

	for _, n := range list {
		title := StyleFg.Render(n.Title)
		if n.ReadAt == nil {
			title = Bold(n.Title)
		}
		when := Dim("pending")
		if n.SentAt != nil {
			when = Dim(RelativeDate(*n.SentAt))
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			notificationTypeStyle(n.Type),
			title,
			StyleFg.Render(n.Message),
			when,
		})
	}

	return RenderTable(headers, rows)
}
