// Package commands holds the eventpy command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eventpy/eventpy/internal/config"
)

// Build info, set at build time via ldflags.
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "eventpy",
	Short:        "Convert RPG Maker event commands to Python-like scripts",
	Version:      fmt.Sprintf("%s (built %s)", Version, BuildDate),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return config.Load(configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (json, yaml or toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	_ = viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		convertCmd,
		codesCmd,
	)
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
