package piring

import (
	"fmt"

	"github.com/piringsehat/piring-cli/internal/tracker"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show one day's food log, totals, and target progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrNow(todayDate)
		if err != nil {
			return err
		}
		client, id, err := newClient()
		if err != nil {
			return err
		}
		if err := requireUser(id); err != nil {
			return err
		}

		tr, err := tracker.New(cmd.Context(), client, id, target)
		if err != nil {
			return err
		}
		defer tr.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Date: %s\n", target.Format("2006-01-02"))

		entries := tr.Logs.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No foods logged.")
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\t%.0f kcal\n", e.ID, e.Time, e.Name, e.Calories)
		}

		fmt.Fprintf(out, "Daily total: %.0f kcal\n", tr.Logs.DailyTotal())
		fmt.Fprintf(out, "Month total: %.0f kcal\n", tr.Logs.MonthlyTotal())

		s := tr.Nutrition.Summary()
		fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", s.ProteinG, s.CarbsG, s.FatG)

		if t := tr.Nutrition.Target(); t != nil {
			fmt.Fprintf(out, "Target: %.0f kcal", *t)
			if pct, ok := tr.Nutrition.Progress(tr.Logs.DailyTotal()); ok {
				fmt.Fprintf(out, " (%d%%)", pct)
			}
			fmt.Fprintln(out)
		} else {
			fmt.Fprintln(out, "Target: not set")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
