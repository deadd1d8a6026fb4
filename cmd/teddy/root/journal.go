package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newJournalAddCmd(), newJournalListCmd())
	return cmd
}

func newJournalAddCmd() *cobra.Command {
	var mood string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a journal entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := engine.ParseJournalMood(mood)
			if err != nil {
				return err
			}
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			e, err := a.svc.AddJournalEntry(ctx, engine.AddJournalInput{
				Content: strings.Join(args, " "),
				Mood:    m,
				Tags:    tags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Saved entry (%s) %s\n", ui.IconJournal, e.Mood, ui.Muted.Render(e.Date.Format("Mon Jan 2 15:04")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mood, "mood", "m", "neutral", "Mood (happy|neutral|sad|excited|calm|angry)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags (repeatable or comma separated)")
	return cmd
}

func newJournalListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := a.svc.ListJournal(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconJournal, "Journal"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for i, e := range entries {
				if limit > 0 && i >= limit {
					break
				}
				tags := ""
				if len(e.Tags) > 0 {
					tags = " " + ui.Muted.Render("#"+strings.Join(e.Tags, " #"))
				}
				fmt.Fprintf(out, "%s %s%s\n  %s\n", ui.Key.Render(e.Date.Format("Mon Jan 2 15:04")), e.Mood, tags, e.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Entries to show (0 for all)")
	return cmd
}
