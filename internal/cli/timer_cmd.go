package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the study-session timer",
	}
	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
	)
	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	var subject, chapter string

	cmd := &cobra.Command{
		Use:   "start [TITLE]",
		Short: "Start the timer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			var subjectPtr, chapterPtr *string
			if subject != "" {
				subjectPtr = &subject
			}
			if chapter != "" {
				chapterPtr = &chapter
			}
			session, err := app.Timer.Start(context.Background(), subjectPtr, chapterPtr, title)
			if err != nil {
				return err
			}
			fmt.Printf("Timer started at %s\n", session.StartedAt.Format("15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject code")
	cmd.Flags().StringVar(&chapter, "chapter", "", "Chapter ID")

	return cmd
}

func newTimerStopCmd(app *App) *cobra.Command {
	var focus float64

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and bank the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var focusPtr *float64
			if cmd.Flags().Changed("focus") {
				focusPtr = &focus
			}
			session, err := app.Timer.Stop(context.Background(), focusPtr)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("Session: %s, %d points",
				formatter.FormatMinutes(session.DurationSeconds/60), session.PointsEarned)
			if session.IsDeepWork {
				line += ", deep work"
			}
			fmt.Println(line)
			return nil
		},
	}

	cmd.Flags().Float64Var(&focus, "focus", 0, "Focus score 0-1 for the session")

	return cmd
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Timer.Status(context.Background())
			if err != nil {
				return err
			}
			if !status.Active {
				fmt.Println(formatter.Dim("No timer running."))
				return nil
			}
			fmt.Printf("%s elapsed", formatter.FormatMinutes(status.ElapsedSeconds/60))
			if status.Session.SubjectCode != nil {
				fmt.Printf(" on %s", *status.Session.SubjectCode)
			}
			fmt.Println()
			return nil
		},
	}
}

func newReviseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revise",
		Short: "Work through the spaced-repetition queue",
	}

	pending := &cobra.Command{
		Use:   "pending",
		Short: "List revisions due now",
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := app.Revisions.Pending(context.Background(), timeNowUTC())
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Println(formatter.Dim("Nothing due. Enjoy it."))
				return nil
			}
			for _, p := range due {
				fmt.Printf("%s  %s chapter %d  #%d due %s\n",
					formatter.TruncID(p.Revision.ID),
					formatter.SubjectBadge(p.SubjectCode),
					p.ChapterNumber,
					p.Revision.RevisionNumber,
					formatter.RelativeDate(p.Revision.DueDate))
			}
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done ID",
		Short: "Complete a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Revisions.Complete(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("+%d points, streak %dd\n", result.PointsEarned, result.Streak.CurrentStreak)
			return nil
		},
	}

	cmd.AddCommand(pending, done)
	return cmd
}
