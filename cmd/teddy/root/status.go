package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your companion, progress and achievements",
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
			today, err := a.svc.XPToday(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := c.ProgressionState

			fmt.Fprintln(out, ui.Companion(c.Name, string(c.Mood), c.Accessories))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Experience", fmt.Sprintf("%s %d/%d", ui.Bar(p.Fraction(), 20), p.Experience, p.NextLevelExperience)))
			fmt.Fprintln(out, ui.LabelValue("XP today", today))
			w := a.svc.Weather()
			fmt.Fprintln(out, ui.LabelValue("Outside", w.Icon+" "+w.Description))
			if c.Location.District != "" || c.Location.Country != "" {
				fmt.Fprintln(out, ui.LabelValue("Home", fmt.Sprintf("%s, %s", c.Location.District, c.Location.Country)))
			}

			unlocked := 0
			for _, acc := range accessories {
				if acc.Unlocked {
					unlocked++
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Wardrobe", fmt.Sprintf("%d/%d unlocked", unlocked, len(accessories))))
			fmt.Fprintln(out, "")

			achievements, err := a.svc.Achievements(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, ach := range achievements {
				if ach.Earned {
					earned++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, earned, len(achievements))))
			for _, ach := range achievements {
				if ach.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", ach.Icon, ui.Good.Render(ach.Name), ui.Muted.Render(ach.Description))
				} else {
					fmt.Fprintf(out, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(ach.Name), ui.Muted.Render(ach.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
