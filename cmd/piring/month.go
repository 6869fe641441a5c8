package piring

import (
	"fmt"
	"strings"

	"github.com/piringsehat/piring-cli/internal/calendar"
	"github.com/piringsehat/piring-cli/internal/foodlog"
	"github.com/spf13/cobra"
)

var monthDate string

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the calendar grid and calorie total for one month",
	RunE: func(cmd *cobra.Command, args []string) error {
		anchor, err := parseDateOrNow(monthDate)
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

		store := foodlog.NewStore(client, id.UserID())
		if err := store.RefreshMonthlyTotal(cmd.Context(), anchor); err != nil {
			return err
		}

		cursor := calendar.New(anchor)
		info := calendar.MonthInfo(cursor.CurrentMonth)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d\n", info.Month, info.Year)
		fmt.Fprintln(out, "Mo Tu We Th Fr Sa Su")

		var line []string
		for _, cell := range cursor.Grid() {
			if cell.IsZero() {
				line = append(line, "  ")
			} else {
				line = append(line, fmt.Sprintf("%2d", cell.Day()))
			}
			if len(line) == 7 {
				fmt.Fprintln(out, strings.Join(line, " "))
				line = nil
			}
		}
		if len(line) > 0 {
			fmt.Fprintln(out, strings.Join(line, " "))
		}

		fmt.Fprintf(out, "Month total: %.0f kcal\n", store.MonthlyTotal())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
	monthCmd.Flags().StringVar(&monthDate, "date", "", "Any date in the month, YYYY-MM-DD (default today)")
}
