package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wellness-mini-app",
	Short: "Nutrition dashboard mini app for the meal-logging bot",
	Long: "wellness-mini-app serves the per-user nutrition dashboard (HTML + JSON APIs)\n" +
		"backed by the bot's Postgres store. Running it with no subcommand starts the server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
