package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rustalize",
	Short: "Rustalize - parser for Rust-style type declarations",
	Long: `Rustalize parses a restricted subset of Rust declarations into a typed
syntax tree:

  - pub trait   with method signatures
  - pub struct  with named fields
  - pub enum    with unit, tuple, and struct-like variants

Trees print as indented text, YAML, or JSON. Declarations can be linted,
watched for changes, and recorded in a SQLite catalog.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the status mapped from the
// returned error.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: rustalize.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
