package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"teddy/internal/ui"
)

const Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "teddy",
	Short:         "Teddy, a companion that grows with your habits",
	Long:          "Teddy is a local-first CLI/TUI for tasks, habits, goals and reminders, with a bear companion that levels up as you make progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.teddy/config.yaml)")

	rootCmd.AddCommand(
		newHabitCmd(),
		newTaskCmd(),
		newGoalCmd(),
		newRemindCmd(),
		newJournalCmd(),
		newAdviceCmd(),
		newStatusCmd(),
		newCustomizeCmd(),
		newAccessoriesCmd(),
		newHistoryCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
