package root

import (
	"context"

	"github.com/spf13/cobra"

	"teddy/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			// The board shows events itself; printing them would tear the screen.
			a, cleanup, err := openService(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, a.svc, cmd.OutOrStdout(), a.cfg.Reminders.PollInterval)
		},
	}

	return cmd
}
