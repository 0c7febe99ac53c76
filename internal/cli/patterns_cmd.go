package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/domain"
)

func newPatternsCmd(app *App) *cobra.Command {
	var subject string
	var recommend bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show learned study patterns and recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if recommend {
				var subjectPtr *string
				if subject != "" {
					subjectPtr = &subject
				}
				recs, err := app.Patterns.Recommend(ctx, subjectPtr)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatRecommendations(recs))
				return nil
			}

			patterns, err := app.Patterns.Patterns(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPatterns(patterns))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Scope recommendations to a subject")
	cmd.Flags().BoolVar(&recommend, "recommend", false, "Show recommendations instead of raw patterns")

	return cmd
}

func newAchievementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show the achievement board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := app.Achievements.Check(ctx); err != nil {
				return err
			}
			rows, err := app.Achievements.List(ctx)
			if err != nil {
				return err
			}
			streak, err := app.Achievements.Streak(ctx)
			if err != nil {
				return err
			}

			progress := make(map[string]*domain.UserAchievement, len(rows))
			for _, a := range rows {
				progress[a.Code] = a
			}
			fmt.Print(formatter.FormatAchievements(streak, progress))
			return nil
		},
	}
}
