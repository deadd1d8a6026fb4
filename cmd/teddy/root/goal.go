package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track progress towards goals",
	}
	cmd.AddCommand(newGoalAddCmd(), newGoalUpdateCmd(), newGoalListCmd())
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var description string
	var target int
	var category string
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.AddGoalInput{Title: args[0], Description: description, Target: target, Category: category}
			if due != "" {
				at, err := parseWhen(due, a.svc.Clock().Now())
				if err != nil {
					return err
				}
				in.DueDate = &at
			}
			g, err := a.svc.AddGoal(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added goal %s (0/%d) %s\n", ui.IconTarget, ui.Key.Render(g.Title), g.Target, ui.Muted.Render(shortID(g.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().IntVarP(&target, "target", "t", 1, "Target value")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVar(&due, "due", "", "Due date (2006-01-02)")
	return cmd
}

func newGoalUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id> <progress>",
		Short: "Set a goal's progress",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and progress are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("progress must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, _ := strconv.Atoi(args[1])
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := a.svc.ListGoals(ctx)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(goals))
			for _, g := range goals {
				ids = append(ids, g.ID)
			}
			id, err := matchID("goal", args[0], ids)
			if err != nil {
				return err
			}
			res, err := a.svc.UpdateGoal(ctx, id, progress)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.IconTarget, res.Goal.Title, goalProgress(res.Goal))
			printReward(out, res.Reward)
			return nil
		},
	}
	return cmd
}

func goalProgress(g engine.Goal) string {
	text := fmt.Sprintf("%d/%d (%d%%)", g.Progress, g.Target, g.Percent())
	if g.Achieved() {
		return ui.Good.Render(text)
	}
	return ui.Bar(float64(g.Percent())/100, 12) + " " + ui.Muted.Render(text)
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := a.svc.ListGoals(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Goals"))
			if len(goals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet)"))
			}
			for _, g := range goals {
				fmt.Fprintf(out, "%s %s %s\n", ui.Muted.Render(shortID(g.ID)), g.Title, goalProgress(g))
			}
			return nil
		},
	}
}
