package piring

import (
	"fmt"

	"github.com/piringsehat/piring-cli/internal/autocomplete"
	"github.com/piringsehat/piring-cli/internal/foodlog"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage food log entries",
}

var (
	logName     string
	logCalories string
	logDate     string
	logAutofill bool
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrNow(logDate)
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

		form := autocomplete.New(client, id)
		defer form.Close()
		form.SetQuery(logName)
		form.SetCalories(logCalories)

		if logAutofill {
			form.AutoFill(cmd.Context())
			if msg := form.AutoFillError(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
		}

		store := foodlog.NewStore(client, id.UserID())
		entry, err := store.Add(cmd.Context(), date, form.Name(), form.Calories(), form.AutoFood())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f kcal) at %s, id %s\n", entry.Name, entry.Calories, entry.Time, entry.ID)
		return nil
	},
}

var logListDate string

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one day's entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrNow(logListDate)
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
		if err := store.LoadDate(cmd.Context(), date); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID\tTIME\tNAME\tKCAL")
		for _, e := range store.Entries() {
			fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\n", e.ID, e.Time, e.Name, e.Calories)
		}
		fmt.Fprintf(out, "Total: %.0f kcal\n", store.DailyTotal())
		return nil
	},
}

var logDeleteDate string

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrNow(logDeleteDate)
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
		if err := store.LoadDate(cmd.Context(), date); err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logDeleteCmd)

	logAddCmd.Flags().StringVar(&logName, "name", "", "Food name")
	logAddCmd.Flags().StringVar(&logCalories, "calories", "", "Calorie value")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logAddCmd.Flags().BoolVar(&logAutofill, "autofill", false, "Fill calories from the food catalog by name")

	logListCmd.Flags().StringVar(&logListDate, "date", "", "Date YYYY-MM-DD (default today)")
	logDeleteCmd.Flags().StringVar(&logDeleteDate, "date", "", "Date the entry belongs to (default today)")
}
