package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rewind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rewind [trace-path]",
	Short: "Trace-based time-travel debugger",
	Long: `Rewind replays a recorded execution trace: step forward and backward
through every statement, with breakpoints, watches, search and diffs.

With no argument it opens ` + "`.debug.trace`" + ` in the working directory,
or the path named by the REWIND_TRACE environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

// main registers subcommands and global flags, then executes the root
// command. A failed command exits with status code 1.
func main() {
	// .env рядом с проектом может задавать REWIND_TRACE
	_ = godotenv.Load() //nolint:errcheck

	rootCmd.Version = version.Version

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the decoded-trace disk cache")

	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
