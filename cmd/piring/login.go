package piring

import (
	"fmt"

	"github.com/piringsehat/piring-cli/internal/identity"
	"github.com/spf13/cobra"
)

var (
	loginToken string
	loginUser  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token for later commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginToken == "" || loginUser == "" {
			return fmt.Errorf("both --token and --user are required")
		}
		if err := identity.SaveSession(loginUser, loginToken); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", loginUser)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := identity.ClearSession(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token issued by the identity provider")
	loginCmd.Flags().StringVar(&loginUser, "user", "", "Backend user id")
}
