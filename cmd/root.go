package cmd

import (
	"fmt"
	"os"

	"boacompra-loader/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	settings config.Settings
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "boacompra-loader [command]",
	Short: "Synthetic data loader and report client for the BoaCompra sales database",
	Long: `Fills an empty BoaCompra schema (geography, customers, products, orders)
with referentially consistent synthetic data and queries its sales reports.
Configuration comes from .env and the environment; flags override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var foundEnv bool
		var err error
		settings, foundEnv, err = config.LoadSettings()
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			settings.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		logger = config.NewLogger(settings.Log)
		if !foundEnv {
			logger.Debug().Msg("No .env file found")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
