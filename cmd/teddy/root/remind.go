package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Schedule reminders",
	}
	cmd.AddCommand(
		newRemindAddCmd(),
		newRemindTargetCmd("task"),
		newRemindTargetCmd("habit"),
		newRemindDoneCmd(),
		newRemindRmCmd(),
		newRemindListCmd(),
		newRemindWatchCmd(),
	)
	return cmd
}

func newRemindAddCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a standalone reminder",
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

			when, err := parseWhen(at, a.svc.Clock().Now())
			if err != nil {
				return err
			}
			r, err := a.svc.AddReminder(ctx, engine.AddReminderInput{Title: args[0], Time: when})
			if err != nil {
				return err
			}
			printScheduled(cmd, r)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When (15:04, 2006-01-02 15:04 or +30m)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

// newRemindTargetCmd builds `remind task` and `remind habit`, which keep at
// most one reminder per task or habit.
func newRemindTargetCmd(kind string) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   kind + " <id>",
		Short: "Set the reminder for a " + kind,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New(kind + " id is required")
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

			when, err := parseWhen(at, a.svc.Clock().Now())
			if err != nil {
				return err
			}

			var r engine.Reminder
			switch kind {
			case "task":
				ids, err := taskIDs(ctx, a.svc)
				if err != nil {
					return err
				}
				id, err := matchID(kind, args[0], ids)
				if err != nil {
					return err
				}
				r, err = a.svc.SetTaskReminder(ctx, id, when)
				if err != nil {
					return err
				}
			default:
				ids, err := habitIDs(ctx, a.svc)
				if err != nil {
					return err
				}
				id, err := matchID(kind, args[0], ids)
				if err != nil {
					return err
				}
				r, err = a.svc.SetHabitReminder(ctx, id, when)
				if err != nil {
					return err
				}
			}
			printScheduled(cmd, r)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When (15:04, 2006-01-02 15:04 or +30m)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func printScheduled(cmd *cobra.Command, r engine.Reminder) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s %s\n", ui.IconBell, ui.Key.Render(r.Title), formatWhen(r.Time), ui.Muted.Render(shortID(r.ID)))
}

func reminderIDs(ctx context.Context, svc *engine.Service) ([]string, error) {
	reminders, err := svc.ListReminders(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reminders))
	for _, r := range reminders {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func newRemindDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a reminder as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := reminderIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("reminder", args[0], ids)
			if err != nil {
				return err
			}
			r, err := a.svc.CompleteReminder(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconDone, r.Title)
			return nil
		},
	}
}

func newRemindRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := reminderIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("reminder", args[0], ids)
			if err != nil {
				return err
			}
			if err := a.svc.DeleteReminder(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reminder %s\n", shortID(id))
			return nil
		},
	}
}

func newRemindListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			reminders, err := a.svc.ListReminders(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBell, "Reminders"))
			if len(reminders) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, r := range reminders {
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.Muted.Render(shortID(r.ID)),
					formatWhen(r.Time),
					r.Title,
					ui.ReminderStateText(string(r.State())))
			}
			return nil
		},
	}
}

func newRemindWatchCmd() *cobra.Command {
	var interval time.Duration
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll reminders and print them as they come due",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			if interval <= 0 {
				interval = a.cfg.Reminders.PollInterval
			}
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "%s Watching reminders every %s (ctrl+c to stop)\n", ui.IconBell, interval)
			a.logger.Info("reminder watch started", zap.Duration("interval", interval))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.svc.RunReminderLoop(gctx, interval)
			})
			if duration > 0 {
				g.Go(func() error {
					select {
					case <-gctx.Done():
					case <-time.After(duration):
						cancel()
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			a.logger.Info("reminder watch stopped")
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default from config)")
	cmd.Flags().DurationVar(&duration, "for", 0, "Stop after this long (0 runs until interrupted)")
	return cmd
}
