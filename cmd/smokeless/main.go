package main

import (
	"fmt"
	"os"
	"smokeless/internal/structures"

	"github.com/spf13/cobra"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:           "smokeless",
	Short:         "Track cigarettes, spending and smoke-free streaks",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runToday,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Mirror logs to stderr")

	settingsSetCmd.Flags().String("currency", "", "Currency symbol")
	settingsSetCmd.Flags().String("price", "", "Price per pack")
	settingsSetCmd.Flags().String("size", "", "Cigarettes per pack")
	settingsSetCmd.Flags().String("baseline", "", "Cigarettes per day before tracking")
	settingsSetCmd.Flags().String("theme", "", "system, light or dark")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	resetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(todayCmd, smokeCmd, statsCmd, healthCmd, settingsCmd, resetCmd, watchCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
