package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/domain"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage subjects",
	}
	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectRmCmd(app),
		newSubjectChaptersCmd(app),
	)
	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var credits int
	var subjectType, color string

	cmd := &cobra.Command{
		Use:   "add CODE NAME",
		Short: "Register a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := &domain.Subject{
				Code:    args[0],
				Name:    args[1],
				Credits: credits,
				Type:    domain.SubjectType(subjectType),
				Color:   color,
			}
			if err := app.Subjects.CreateSubject(context.Background(), subject); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s, %d credits)\n", subject.Code, subject.Name, subject.Credits)
			return nil
		},
	}

	cmd.Flags().IntVar(&credits, "credits", 3, "Credit weight (1-6)")
	cmd.Flags().StringVar(&subjectType, "type", "", "Subject type: concept_heavy or practice_heavy")
	cmd.Flags().StringVar(&color, "color", "", "Display color")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Subjects.ListSubjects(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSubjects(subjects))
			return nil
		},
	}
}

func newSubjectRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm CODE",
		Short: "Delete a subject and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Subjects.DeleteSubject(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newSubjectChaptersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters CODE",
		Short: "Show a subject's chapters and reading progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			chapters, err := app.Subjects.ListChapters(ctx, args[0])
			if err != nil {
				return err
			}
			progress := make(map[string]*domain.ChapterProgress, len(chapters))
			for _, c := range chapters {
				p, err := app.Subjects.GetProgress(ctx, c.ID)
				if err != nil {
					continue
				}
				progress[c.ID] = p
			}
			fmt.Print(formatter.FormatChapters(args[0], chapters, progress))
			return nil
		},
	}
}

func newChapterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapter",
		Short: "Manage chapters and reading progress",
	}

	add := &cobra.Command{
		Use:   "add CODE NUMBER TITLE",
		Short: "Add a chapter to a subject",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[1])
			}
			chapter, err := app.Subjects.AddChapter(context.Background(), args[0], number, args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Added chapter %d of %s (%s)\n", chapter.Number, chapter.SubjectCode, chapter.ID[:8])
			return nil
		},
	}

	start := &cobra.Command{
		Use:   "start CHAPTER_ID",
		Short: "Mark a chapter's reading as started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Subjects.StartReading(context.Background(), args[0])
		},
	}

	done := &cobra.Command{
		Use:   "done CHAPTER_ID",
		Short: "Complete a chapter's reading and seed its revision queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revisions, err := app.Subjects.CompleteReading(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Reading complete. %d revisions queued:\n", len(revisions))
			for _, r := range revisions {
				fmt.Printf("  #%d due %s\n", r.RevisionNumber, r.DueDate.Format("Mon Jan 2"))
			}
			return nil
		},
	}

	cmd.AddCommand(add, start, done)
	return cmd
}
