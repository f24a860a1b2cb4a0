package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.yml"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "securewatch",
	Short:         "securewatch is an incident management console backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "config file path")
	rootCmd.AddCommand(serveCmd, exportReportCmd)
}
