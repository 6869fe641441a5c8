package piring

import (
	"fmt"

	"github.com/piringsehat/piring-cli/internal/nutrition"
	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Manage the daily calorie target",
}

var targetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current daily calorie target",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, id, err := newClient()
		if err != nil {
			return err
		}
		if err := requireUser(id); err != nil {
			return err
		}

		agg := nutrition.NewAggregator(client, id.UserID())
		if err := agg.LoadTarget(cmd.Context()); err != nil {
			return err
		}
		if t := agg.Target(); t != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Daily target: %.0f kcal\n", *t)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Daily target: not set")
		}
		return nil
	},
}

var targetSetCmd = &cobra.Command{
	Use:   "set <kcal>",
	Short: "Set the daily calorie target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, id, err := newClient()
		if err != nil {
			return err
		}
		if err := requireUser(id); err != nil {
			return err
		}

		agg := nutrition.NewAggregator(client, id.UserID())
		agg.SetTargetInput(args[0])
		if err := agg.SaveTarget(cmd.Context()); err != nil {
			return err
		}
		if t := agg.Target(); t != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Daily target set to %.0f kcal\n", *t)
		}
		return nil
	},
}

var targetClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the daily calorie target",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, id, err := newClient()
		if err != nil {
			return err
		}
		if err := requireUser(id); err != nil {
			return err
		}

		agg := nutrition.NewAggregator(client, id.UserID())
		agg.SetTargetInput("")
		if err := agg.SaveTarget(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Daily target cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)
	targetCmd.AddCommand(targetShowCmd)
	targetCmd.AddCommand(targetSetCmd)
	targetCmd.AddCommand(targetClearCmd)
}
