package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"rewind/internal/loader"
	"rewind/internal/writer"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [trace-path]",
	Short: "Print the run summary for a trace",
	Long: `Summary prints the .summary file the writer left next to the trace,
or regenerates one in the same format from the trace when it is missing
(the regenerated scope list also names <module> when the trace has
module-level steps)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	path := resolveTracePath(args)

	if data, err := os.ReadFile(writer.SummaryPath(path)); err == nil {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	// Нет файла — восстанавливаем из хвоста трейса
	events, err := loadTrace(cmd, path)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no trace at %s", path)
	}

	st := loader.Summarize(events)
	tail := events
	if len(tail) > 15 {
		tail = tail[len(tail)-15:]
	}
	total, err := safecast.Conv[uint64](st.TotalSteps)
	if err != nil {
		return fmt.Errorf("step count overflow: %w", err)
	}
	text := writer.RenderSummary(total, st.MaxDepth, loader.ScopeList(events), tail)
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
