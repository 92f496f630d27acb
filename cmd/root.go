package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/product-store/internal/app"
	"github.com/nguyentranbao-ct/product-store/internal/server"
	"github.com/nguyentranbao-ct/product-store/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "product-store",
	Short:         "Read-only product catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create catalog indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.Invoke(app.RunMigrations)
		if err := a.Err(); err != nil {
			return err
		}
		a.Run()
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	a := app.Invoke(server.StartServer)
	if err := a.Err(); err != nil {
		return err
	}
	a.Run()
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		logger.MustNamed("cmd").Errorw("command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
