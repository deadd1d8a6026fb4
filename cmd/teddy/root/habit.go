package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track daily and weekly habits",
	}
	cmd.AddCommand(newHabitAddCmd(), newHabitDoneCmd(), newHabitListCmd(), newHabitRmCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var description string
	var frequency string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := a.svc.AddHabit(ctx, engine.AddHabitInput{Title: args[0], Description: description, Frequency: f})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s habit %s %s\n", ui.IconPlus, h.Frequency, ui.Key.Render(h.Title), ui.Muted.Render(shortID(h.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "Frequency (daily|weekly)")
	return cmd
}

func habitIDs(ctx context.Context, svc *engine.Service) ([]string, error) {
	habits, err := svc.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func newHabitDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a habit for today (or this week)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			ids, err := habitIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("habit", args[0], ids)
			if err != nil {
				return err
			}
			res, err := a.svc.CompleteHabit(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !res.DidComplete {
				period := "today"
				if res.Habit.Frequency == engine.FrequencyWeekly {
					period = "this week"
				}
				fmt.Fprintf(out, "%s %s is already done %s.\n", ui.IconInfo, res.Habit.Title, period)
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, ui.Good.Render(res.Habit.Title), ui.Muted.Render(fmt.Sprintf("%s streak %d", ui.IconFire, res.Habit.Streak)))
			printReward(out, res.Reward)
			return nil
		},
	}
	return cmd
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a habit and its reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := habitIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("habit", args[0], ids)
			if err != nil {
				return err
			}
			if err := a.svc.DeleteHabit(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted habit %s\n", shortID(id))
			return nil
		},
	}
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := a.svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Habits"))
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet)"))
				return nil
			}
			for _, h := range habits {
				can := a.svc.CanCompleteHabit(h)
				fmt.Fprintf(out, "%s %s %s %s %s\n",
					ui.CheckIcon(!can),
					ui.Muted.Render(shortID(h.ID)),
					ui.FrequencyIcon(h.Frequency == engine.FrequencyWeekly),
					h.Title,
					ui.Muted.Render(fmt.Sprintf("%s %d", ui.IconFire, h.Streak)))
			}
			return nil
		},
	}
}
