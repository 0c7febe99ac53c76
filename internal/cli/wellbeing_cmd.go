package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/domain"
)

func newWellbeingCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "wellbeing",
		Short: "Score a day's study sustainability",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			metric, err := app.Wellbeing.Score(context.Background(), day)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWellbeing(metric))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to score (default today)")

	return cmd
}

func newBreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Track breaks between sessions",
	}

	var minutes int
	start := &cobra.Command{
		Use:   "start TYPE",
		Short: "Start a break (short, long, meal, exercise, meditation, walk)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			br, err := app.Wellbeing.StartBreak(context.Background(), domain.BreakType(args[0]), minutes)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBreak(br))
			return nil
		},
	}
	start.Flags().IntVar(&minutes, "min", 0, "Intended length in minutes (clamped per type)")

	end := &cobra.Command{
		Use:   "end ID",
		Short: "End a break",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			br, err := app.Wellbeing.EndBreak(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBreak(br))
			return nil
		},
	}

	cmd.AddCommand(start, end)
	return cmd
}

func newPomodoroCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Drive the pomodoro cycle",
	}

	work := &cobra.Command{
		Use:   "work",
		Short: "Start a work phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Wellbeing.StartPomodoroWork(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPomodoro(status, timeNowUTC()))
			return nil
		},
	}

	rest := &cobra.Command{
		Use:   "rest",
		Short: "Finish the work phase and start the earned break",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Wellbeing.StartPomodoroBreak(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPomodoro(status, timeNowUTC()))
			return nil
		},
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Reset the cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Wellbeing.StopPomodoro(context.Background())
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Wellbeing.PomodoroStatus(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPomodoro(s, timeNowUTC()))
			return nil
		},
	}

	cmd.AddCommand(work, rest, stop, status)
	return cmd
}
