package piring

import (
	"fmt"

	"github.com/spf13/cobra"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Search the food catalog",
}

var foodsLimit int

var foodsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		foods, err := client.SearchFoods(cmd.Context(), args[0], foodsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "NAME\tKCAL\tP\tC\tF")
		for _, f := range foods {
			fmt.Fprintf(out, "%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.Name, f.Calories, f.ProteinG, f.CarbsG, f.FatG)
		}
		return nil
	},
}

var foodsFirstCmd = &cobra.Command{
	Use:   "first <query>",
	Short: "Show the first catalog match for a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		food, err := client.FirstFoodByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if food == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No match found.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
			food.Name, food.Calories, food.ProteinG, food.CarbsG, food.FatG)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(foodsCmd)
	foodsCmd.AddCommand(foodsSearchCmd)
	foodsCmd.AddCommand(foodsFirstCmd)
	foodsSearchCmd.Flags().IntVar(&foodsLimit, "limit", 10, "Maximum results")
}
