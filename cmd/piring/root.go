package piring

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "piring",
	Short: "piring tracks your daily calories against the PiringSehat backend",
	Long:  "piring is a terminal client for PiringSehat: log foods per day, watch daily and monthly calorie totals, check macro summaries, and manage your daily calorie target.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend API base URL (default from PIRING_API_URL)")
}
