package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/ui"
)

func newAccessoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accessories",
		Short: "Show the wardrobe (unlock more by completing tasks)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			c, accessories, err := a.svc.Companion(ctx)
			if err != nil {
				return err
			}
			worn := map[string]bool{}
			for _, id := range c.Accessories {
				worn[id] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGift, "Wardrobe"))
			for _, acc := range accessories {
				switch {
				case !acc.Unlocked:
					fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, ui.Muted.Render(acc.ID), ui.Muted.Render(acc.Name))
				case worn[acc.ID]:
					fmt.Fprintf(out, "%s %s %s %s\n", ui.IconStar, ui.Key.Render(acc.ID), acc.Name, ui.Good.Render("(wearing)"))
				default:
					fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, ui.Key.Render(acc.ID), acc.Name)
				}
			}
			fmt.Fprintln(out, ui.Muted.Render("Every 5 completed tasks unlocks a new accessory."))
			return nil
		},
	}
}
