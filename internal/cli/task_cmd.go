package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskPlaceCmd(app),
		newTaskDoneCmd(app),
		newTaskRmCmd(app),
		newTaskRescheduleCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var subject, taskType, due string
	var duration, priority int
	var deepWork bool

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := &domain.Task{
				Title:       args[0],
				DurationMin: duration,
				Priority:    priority,
				TaskType:    domain.TaskType(taskType),
				IsDeepWork:  deepWork,
			}
			if subject != "" {
				task.SubjectCode = &subject
			}
			if due != "" {
				d, err := parseDateFlag(due)
				if err != nil {
					return err
				}
				task.DueDate = &d
			}
			if err := app.Tasks.Create(context.Background(), task); err != nil {
				return err
			}
			fmt.Printf("Created task %s\n", task.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject code")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (study, revision, practice, assignment, lab_work)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "min", 30, "Duration in minutes")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-10 (0 uses the default)")
	cmd.Flags().BoolVar(&deepWork, "deep", false, "Mark as deep work")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(context.Background(), domain.TaskStatus(status))
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTasks(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "pending", "Status filter (pending, in_progress, completed, cancelled)")

	return cmd
}

func newTaskPlaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place ID \"YYYY-MM-DD HH:MM\"",
		Short: "Pin a task to a timeline slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimeFlag(args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.Place(context.Background(), args[0], start); err != nil {
				return err
			}
			fmt.Printf("Placed at %s\n", start.Format("Mon Jan 2 15:04"))
			return nil
		},
	}
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Tasks.Complete(context.Background(), args[0])
		},
	}
}

func newTaskRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Tasks.Delete(context.Background(), args[0])
		},
	}
}

func newTaskRescheduleCmd(app *App) *cobra.Command {
	var date, reason string

	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Clear a day's placements and re-run the priority sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			report, err := app.Tasks.RescheduleAll(context.Background(), day, reason)
			if err != nil {
				return err
			}
			titles := make([]string, 0, len(report.Unplaced))
			for _, u := range report.Unplaced {
				titles = append(titles, u.Item.Title)
			}
			fmt.Print(formatter.FormatReschedule(report.Reason, report.Cleared, report.Replaced, titles))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to reschedule (default today)")
	cmd.Flags().StringVar(&reason, "reason", "manual", "Why the day is being rebuilt")

	return cmd
}

func newLabCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Manage lab reports",
	}

	var due, deadline string
	add := &cobra.Command{
		Use:   "add CODE TITLE",
		Short: "Register a lab report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := &domain.LabReport{SubjectCode: args[0], Title: args[1]}
			d, err := parseDateFlag(due)
			if err != nil {
				return err
			}
			report.DueDate = d
			if deadline != "" {
				hard, err := parseDateFlag(deadline)
				if err != nil {
					return err
				}
				report.Deadline = hard
			}
			if err := app.Labs.CreateReport(context.Background(), report); err != nil {
				return err
			}
			fmt.Printf("Created lab report %s\n", report.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	add.Flags().StringVar(&deadline, "deadline", "", "Hard deadline (defaults to the due date)")

	status := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a lab report between pending, drafting and submitted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Labs.SetStatus(context.Background(), args[0], domain.LabReportStatus(args[1]))
		},
	}

	looming := &cobra.Command{
		Use:   "looming",
		Short: "Show unsubmitted reports close to their deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			reports, err := app.Labs.Looming(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatLabReports(reports, now))
			return nil
		},
	}

	cmd.AddCommand(add, status, looming)
	return cmd
}
