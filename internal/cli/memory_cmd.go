package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
)

func newMemoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Store guidelines and facts for the planner to honor",
	}
	cmd.AddCommand(
		newGuidelineCmd(app),
		newRememberCmd(app),
		newRecallCmd(app),
	)
	return cmd
}

func newGuidelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guideline",
		Short: "Manage standing guidelines",
	}

	var priority int
	add := &cobra.Command{
		Use:   "add RULE",
		Short: "Add a guideline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.Memory.AddGuideline(context.Background(), args[0], priority)
			if err != nil {
				return err
			}
			fmt.Printf("Added guideline %s\n", g.ID[:8])
			return nil
		},
	}
	add.Flags().IntVar(&priority, "priority", 5, "Priority 1-10")

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List guidelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			guidelines, err := app.Memory.ListGuidelines(context.Background(), !all)
			if err != nil {
				return err
			}
			for _, g := range guidelines {
				state := formatter.StyleGreen.Render("●")
				if !g.Active {
					state = formatter.Dim("○")
				}
				fmt.Printf("%s %s  %s %s\n", state, formatter.TruncID(g.ID),
					g.Rule, formatter.Dim(fmt.Sprintf("(p%d)", g.Priority)))
			}
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include inactive guidelines")

	toggle := &cobra.Command{
		Use:   "toggle ID on|off",
		Short: "Activate or deactivate a guideline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Memory.SetGuidelineActive(context.Background(), args[0], args[1] == "on")
		},
	}

	cmd.AddCommand(add, list, toggle)
	return cmd
}

func newRememberCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remember CATEGORY KEY VALUE",
		Short: "Store a fact",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Memory.Remember(context.Background(), args[0], args[1], args[2])
		},
	}
}

func newRecallCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recall CATEGORY [KEY]",
		Short: "Recall stored facts",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 2 {
				fact, err := app.Memory.RecallFact(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Println(fact.Value)
				return nil
			}
			facts, err := app.Memory.Recall(ctx, args[0])
			if err != nil {
				return err
			}
			for _, f := range facts {
				fmt.Printf("%s = %s\n", formatter.Bold(f.Key), f.Value)
			}
			return nil
		},
	}
}
