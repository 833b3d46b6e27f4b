package main

import (
	"fmt"
	"os"

	"bonusrates/internal/app"

	"github.com/spf13/cobra"
)

// @title           Bonus Rates API
// @version         1.0
// @description     Read and bulk-update the bonus rate tiers.
// @BasePath        /
func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "bonusrates",
		Short:        "Bonus rate tiers service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "path to the config file")

	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newInitDBCmd(&cfgPath))
	root.AddCommand(newRatesCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(*cfgPath)
		},
	}
}

func newInitDBCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Apply migrations and seed the default tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.InitDB(*cfgPath)
		},
	}
}

func newRatesCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the current bonus rates as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.PrintRates(*cfgPath, cmd.OutOrStdout())
		},
	}
}
