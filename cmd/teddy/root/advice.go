package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/ui"
)

func newAdviceCmd() *cobra.Command {
	var save bool
	var unsave bool

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Show today's advice from your companion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if save && unsave {
				return errors.New("--save and --unsave are exclusive")
			}
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			adv, err := a.svc.CurrentAdvice(ctx)
			if err != nil {
				return err
			}
			if save || unsave {
				adv, err = a.svc.SaveAdvice(ctx, adv.ID, save)
				if err != nil {
					return err
				}
			}
			marker := ""
			if adv.Saved {
				marker = " " + ui.IconStar
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", ui.IconBulb, adv.Text, marker)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Bookmark today's advice")
	cmd.Flags().BoolVar(&unsave, "unsave", false, "Remove today's advice from bookmarks")
	cmd.AddCommand(newAdviceSavedCmd())
	return cmd
}

func newAdviceSavedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List bookmarked advice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := a.svc.SavedAdvices(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBulb, "Saved advice"))
			if len(saved) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none saved)"))
			}
			for _, adv := range saved {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(adv.Date.Format("2006-01-02")), adv.Text)
			}
			return nil
		},
	}
}
