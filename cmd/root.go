// =============================================================================
// Gift Aid Schedule Builder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('build', 'version') are attached
// to, and carries the global flags.
//
// COBRA CLI STRUCTURE:
//   rootCmd (schedule-builder)
//   ├── buildCmd (schedule-builder build)
//   └── versionCmd (schedule-builder version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug-level logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "schedule-builder",
	Short: "Gift Aid Schedule Builder - Build HMRC gift aid schedules from bank exports",
	Long: `Gift Aid Schedule Builder is a CLI tool for UK charities. It reads a bank
transactions CSV and a donor declarations CSV, works out which transactions
are claimable under gift aid, and writes a completed HMRC schedule
spreadsheet into a fresh, date-stamped output directory.

Each run also produces:
  - A per-row audit log explaining what was done with every transaction
  - A manual-review log for transactions matching more than one declaration
  - Verbatim copies of both input files

Example Usage:
  schedule-builder build --spreadsheet=libre  # Build a schedule for LibreOffice
  schedule-builder build --spreadsheet=excel  # Build a schedule for Excel
  schedule-builder build --config ./my.yaml   # Use a custom configuration file`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
