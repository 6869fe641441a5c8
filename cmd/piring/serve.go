package piring

import (
	"fmt"

	"github.com/piringsehat/piring-cli/internal/app"
	"github.com/piringsehat/piring-cli/internal/config"
	"github.com/piringsehat/piring-cli/internal/db"
	"github.com/piringsehat/piring-cli/internal/devserver"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local SQLite-backed backend for development",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := serveDB
		if path == "" {
			path = config.Load().DBPath
		}
		if path == "" {
			var err error
			path, err = app.DefaultDBPath()
			if err != nil {
				return err
			}
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Serving from %s\n", path)
		return devserver.New(sqldb, serveAddr).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":3000", "Listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "Path to SQLite database")
}
