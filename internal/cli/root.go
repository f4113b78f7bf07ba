// Package cli implements the command-line interface for mergebench.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/mergebench/internal/config"
	"github.com/kilupskalvis/mergebench/internal/store"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
	Logger zerolog.Logger
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext initializes config, store and logger
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to open results store: %v", err)
	}
	if err := st.Initialize(); err != nil {
		st.Close()
		exitError("failed to initialize results store: %v", err)
	}

	return &cmdContext{Config: cfg, Store: st, Logger: newLogger()}
}

var verbose bool

// newLogger builds the console logger shared by all commands
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

var rootCmd = &cobra.Command{
	Use:   "mergebench",
	Short: "Merge tool evaluation harness",
	Long: `Mergebench evaluates automated merge tools against human-produced merges.

Given a merge scenario (base, left, right, and the accepted merge), it
replays the merge with a candidate tool, extracts the conflicting files,
and diffs the tool's output against both the common ancestor and the
programmer's accepted resolution. Aggregate reports rank tools under a
parameterized cost model and against an oracle that always picks the best
tool per scenario.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(reportCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
