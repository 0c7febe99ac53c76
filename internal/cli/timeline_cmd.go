package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/service"
)

func newTimelineCmd(app *App) *cobra.Command {
	var date string
	var week, optimize bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the day timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			if optimize {
				result, err := app.Timeline.Optimize(ctx, day)
				if err != nil {
					return err
				}
				fmt.Printf("Optimized: %d changes\n", result.ChangesMade)
				for _, u := range result.Unplaced {
					fmt.Println(formatter.Dim(fmt.Sprintf("  could not place %q: %s", u.Item.Title, u.Reason)))
				}
			}

			if week {
				days, err := app.Timeline.Week(ctx, day)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatWeek(days))
				return nil
			}

			tl, err := app.Timeline.Get(ctx, day)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTimeline(tl))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (default today)")
	cmd.Flags().BoolVar(&week, "week", false, "Show a seven-day summary instead")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Place pending work into free gaps first")

	return cmd
}

func newPlanCmd(app *App) *cobra.Command {
	var subject, title, deadline string
	var hours float64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Distribute exam preparation backward from a deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseDateFlag(deadline)
			if err != nil {
				return err
			}
			// An exam on the deadline day means prep can run until the
			// evening before it.
			when = when.Add(23 * time.Hour)

			result, err := app.Planner.Backward(context.Background(), service.BackwardRequest{
				SubjectCode: subject,
				Title:       title,
				Deadline:    when,
				Hours:       hours,
			})
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlanResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject code (required)")
	cmd.Flags().StringVar(&title, "title", "", "Plan label (defaults to exam prep for the subject)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Exam date (YYYY-MM-DD, required)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Total preparation hours (required)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("deadline")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}
