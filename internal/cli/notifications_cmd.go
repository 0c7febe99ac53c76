package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/domain"
	"github.com/alexanderramin/chronos/internal/repository"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Review and configure notifications",
	}
	cmd.AddCommand(
		newNotificationsListCmd(app),
		newNotificationsReadCmd(app),
		newNotificationsDismissCmd(app),
		newNotificationsPrefsCmd(app),
	)
	return cmd
}

func newNotificationsListCmd(app *App) *cobra.Command {
	var typ string
	var unread bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Notifications.List(context.Background(), repository.NotificationFilter{
				Type:       domain.NotificationType(typ),
				UnreadOnly: unread,
				Limit:      limit,
			})
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatNotifications(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Filter by type")
	cmd.Flags().BoolVar(&unread, "unread", false, "Unread only")
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum rows")

	return cmd
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Notifications.MarkRead(context.Background(), args[0])
		},
	}
}

func newNotificationsDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Notifications.Dismiss(context.Background(), args[0])
		},
	}
}

func newNotificationsPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change per-type delivery preferences",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := app.Notifications.ListPreferences(context.Background())
			if err != nil {
				return err
			}
			headers := []string{"TYPE", "ENABLED", "QUIET", "LIMIT/H"}
			rows := make([][]string, 0, len(prefs))
			for _, p := range prefs {
				enabled := formatter.StyleGreen.Render("yes")
				if !p.Enabled {
					enabled = formatter.StyleRed.Render("no")
				}
				quiet := formatter.Dim("--")
				if p.HasQuietHours() {
					quiet = fmt.Sprintf("%s - %s", p.QuietHoursStart, p.QuietHoursEnd)
				}
				limit := formatter.Dim("unlimited")
				if p.FrequencyLimit > 0 {
					limit = fmt.Sprintf("%d", p.FrequencyLimit)
				}
				rows = append(rows, []string{string(p.Type), enabled, quiet, limit})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	var enabled bool
	var quietStart, quietEnd string
	var limit int
	set := &cobra.Command{
		Use:   "set TYPE",
		Short: "Update one type's preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Notifications.UpdatePreference(context.Background(), &domain.NotificationPreference{
				Type:            domain.NotificationType(args[0]),
				Enabled:         enabled,
				QuietHoursStart: quietStart,
				QuietHoursEnd:   quietEnd,
				FrequencyLimit:  limit,
				Channels:        "in_app",
			})
		},
	}
	set.Flags().BoolVar(&enabled, "enabled", true, "Deliver this type")
	set.Flags().StringVar(&quietStart, "quiet-start", "", "Quiet window start (HH:MM)")
	set.Flags().StringVar(&quietEnd, "quiet-end", "", "Quiet window end (HH:MM)")
	set.Flags().IntVar(&limit, "limit", 0, "Max deliveries per hour (0 unlimited)")

	cmd.AddCommand(list, set)
	return cmd
}
