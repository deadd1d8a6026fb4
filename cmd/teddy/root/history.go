package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP awards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := a.svc.History(ctx, limit)
			if err != nil {
				return err
			}
			loc := a.svc.Clock().Now().Location()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "XP history"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no XP earned yet)"))
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.Muted.Render(formatWhen(e.AwardedAt.In(loc))),
					ui.Good.Render(fmt.Sprintf("+%d", e.Amount)),
					e.SourceKind,
					ui.Muted.Render(fmt.Sprintf("%s → level %d", shortID(e.SourceID), e.LevelAfter)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Entries to show")
	return cmd
}
