// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"runcshim/internal/config"
	"runcshim/internal/runc"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	cfg    *config.Config
	logger *log.Logger

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "runcshim",
		Short: "A supervisor shim for OCI runtime containers",
		Long: `runcshim sits between a container orchestration daemon and a
low-level OCI runtime binary (runc or a drop-in replacement), translating
lifecycle requests into runtime invocations and managing the standard
streams of the processes it spawns.

The subcommands below expose the runtime's query surface directly:

  runcshim list             List containers under the configured root
  runcshim ps <id>          List pids inside a container
  runcshim state <id>       Show a container's state document
  runcshim stats <id>       Show a container's resource statistics`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/runcshim/config.toml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runtimeVersionCmd)
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig loads the config file and builds the logger.
func initRootConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		cfg = config.Default()
	}

	level := log.InfoLevel
	if verbose || cfg.Log.Level == "debug" {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       logFormatter(cfg.Log.Format),
	})
}

func logFormatter(format string) log.Formatter {
	if format == "json" {
		return log.JSONFormatter
	}
	return log.TextFormatter
}

// newRuncClient builds the invoker from the loaded configuration.
func newRuncClient() (*runc.Runc, error) {
	return runc.New(cfg.RuncOptions()...)
}
