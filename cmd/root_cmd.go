// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maskstream/csvmask/cmd/config"
)

// Version is the csvmask version
var (
	Version = "development"
	Env     string
)

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "csvmask",
		Short:        "csvmask transforms delimited tables by applying per-column transformations",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with csvmask if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")

	// transform cmd
	transformCmd.Flags().StringP("input", "i", "", "Input CSV file path")
	transformCmd.Flags().StringP("output", "o", "", "Output CSV file path")
	transformCmd.Flags().StringP("rules-file", "f", "", "Path to a YAML file containing the transformation rules")
	transformCmd.Flags().Bool("verbose", false, "Whether to log progress and fallback details while transforming")

	// validate cmd
	// validate rules cmd
	validateRulesCmd.Flags().StringP("rules-file", "f", "", "Path to a YAML file containing the transformation rules to validate")
	validateRulesCmd.Flags().StringP("input", "i", "", "Optional input CSV whose header the rules are validated against")
	validateCmd.AddCommand(validateRulesCmd)

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(transformationsCmd)
	rootCmd.AddCommand(validateCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

func withSignalWatcher(fn func(ctx context.Context) error) func(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cancel()
	}()

	return func(cmd *cobra.Command, args []string) error {
		defer cancel()
		return fn(ctx)
	}
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("CSVMASK_LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}
