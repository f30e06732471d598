package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rewind/internal/loader"
	"rewind/internal/trace"
)

var statsCmd = &cobra.Command{
	Use:   "stats [trace-path]",
	Short: "Print summary statistics for a trace",
	Long:  `Stats loads a trace and reports step counts, files, depth and duration without entering the replayer`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	path := resolveTracePath(args)
	events, err := loadTrace(cmd, path)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no trace at %s", path)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	label := func(s string) string { return s }
	if useColor {
		c := color.New(color.FgCyan, color.Bold)
		label = func(s string) string { return c.Sprint(s) }
	}

	st := loader.Summarize(events)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", label("trace:"), path)
	fmt.Fprintf(out, "%s %d\n", label("steps:"), st.TotalSteps)
	fmt.Fprintf(out, "%s %d\n", label("files:"), st.UniqueFiles)
	fmt.Fprintf(out, "%s %d\n", label("max depth:"), st.MaxDepth)
	fmt.Fprintf(out, "%s %.3fs\n", label("duration:"), st.DurationSeconds)
	if scopes := loader.ScopeList(events); len(scopes) > 0 {
		fmt.Fprintf(out, "%s %s\n", label("scopes:"), strings.Join(scopes, " -> "))
	}

	if err := trace.Validate(events); err != nil {
		warn := "warning:"
		if useColor {
			warn = color.New(color.FgYellow, color.Bold).Sprint(warn)
		}
		fmt.Fprintf(out, "%s trace invariants violated: %v\n", warn, err)
	}
	return nil
}
