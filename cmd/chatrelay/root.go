package main

import (
	stdlog "log"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatrelay",
	Short: "Line-oriented TCP chat relay with channels and private messages",
}

// Execute runs the command tree. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stdlog.Fatal(err.Error())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")
}
