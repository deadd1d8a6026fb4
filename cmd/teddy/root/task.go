package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage one-off tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskDoneCmd(true),
		newTaskDoneCmd(false),
		newTaskRmCmd(),
		newTaskListCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var description string
	var priority string
	var category string
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.AddTaskInput{Title: args[0], Description: description, Priority: p, Category: category}
			if due != "" {
				at, err := parseWhen(due, a.svc.Clock().Now())
				if err != nil {
					return err
				}
				in.DueDate = &at
			}
			t, err := a.svc.AddTask(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added task %s %s %s\n", ui.IconPlus, ui.Key.Render(t.Title), ui.PriorityText(string(t.Priority)), ui.Muted.Render(shortID(t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default General)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (2006-01-02, 2006-01-02 15:04, 15:04 or +2h)")
	return cmd
}

func taskIDs(ctx context.Context, svc *engine.Service) ([]string, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// newTaskDoneCmd builds `task done` (completed=true) and `task undo`.
func newTaskDoneCmd(completed bool) *cobra.Command {
	use, short := "done <id>", "Complete a task"
	if !completed {
		use, short = "undo <id>", "Mark a task as not done (earned XP is kept)"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
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

			ids, err := taskIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("task", args[0], ids)
			if err != nil {
				return err
			}
			res, err := a.svc.CompleteTask(ctx, id, completed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !res.Changed:
				state := "open"
				if completed {
					state = "done"
				}
				fmt.Fprintf(out, "%s %s is already %s.\n", ui.IconInfo, res.Task.Title, state)
			case completed:
				fmt.Fprintf(out, "%s %s\n", ui.IconDone, ui.Good.Render(res.Task.Title))
				printReward(out, res.Reward)
			default:
				fmt.Fprintf(out, "%s Reopened %s\n", ui.IconTodo, res.Task.Title)
			}
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task and its reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := taskIDs(ctx, a.svc)
			if err != nil {
				return err
			}
			id, err := matchID("task", args[0], ids)
			if err != nil {
				return err
			}
			if err := a.svc.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", shortID(id))
			return nil
		},
	}
}

func newTaskListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := a.svc.ListTasks(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Tasks"))
			shown := 0
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				due := ""
				if t.DueDate != nil {
					due = ui.Muted.Render(" due " + formatWhen(*t.DueDate))
				}
				fmt.Fprintf(out, "%s %s %s %s %s%s\n",
					ui.CheckIcon(t.Completed),
					ui.Muted.Render(shortID(t.ID)),
					t.Title,
					ui.PriorityText(string(t.Priority)),
					ui.Muted.Render("["+t.Category+"]"),
					due)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing to do)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}
