package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

func newCustomizeCmd() *cobra.Command {
	var (
		name     string
		color    string
		mood     string
		image    string
		country  string
		district string
		timezone string
		equip    []string
	)

	cmd := &cobra.Command{
		Use:   "customize",
		Short: "Change your companion's name, look and home",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			current, _, err := a.svc.Companion(ctx)
			if err != nil {
				return err
			}

			var in engine.CustomizeInput
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("color") {
				in.Color = &color
			}
			if flags.Changed("mood") {
				m, err := engine.ParseCompanionMood(mood)
				if err != nil {
					return err
				}
				in.Mood = &m
			}
			if flags.Changed("image") {
				in.ProfileImage = &image
			}
			if flags.Changed("country") || flags.Changed("district") || flags.Changed("timezone") {
				loc := current.Location
				if flags.Changed("country") {
					loc.Country = country
				}
				if flags.Changed("district") {
					loc.District = district
				}
				if flags.Changed("timezone") {
					loc.Timezone = timezone
				}
				in.Location = &loc
			}
			if flags.Changed("equip") {
				in.Equip = &equip
			}

			c, err := a.svc.Customize(ctx, in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Companion(c.Name, string(c.Mood), c.Accessories))
			fmt.Fprintln(out, ui.LabelValue("Color", c.Color))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Companion name")
	f.StringVar(&color, "color", "", "Fur color")
	f.StringVar(&mood, "mood", "", "Mood (happy|excited|neutral|sad)")
	f.StringVar(&image, "image", "", "Profile image path or URL")
	f.StringVar(&country, "country", "", "Home country")
	f.StringVar(&district, "district", "", "Home district")
	f.StringVar(&timezone, "timezone", "", "Home IANA timezone")
	f.StringSliceVar(&equip, "equip", nil, "Accessories to wear (ids, replaces the current set)")
	return cmd
}
