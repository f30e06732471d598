package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"rewind/internal/trace"
)

// summaryValueWidth bounds each captured value in the summary. This is
// deliberately tighter than the 80-column statement description.
const summaryValueWidth = 30

// SummaryPath returns the summary file written next to tracePath.
func SummaryPath(tracePath string) string {
	ext := filepath.Ext(tracePath)
	return strings.TrimSuffix(tracePath, ext) + ".summary"
}

// writeSummary renders the compact human-readable report for a finished
// run: totals, the scopes entered, and the ring-buffer tail.
func writeSummary(st *writerState) {
	if st.path == "" || st.dropped {
		return
	}
	text := RenderSummary(st.next, st.maxSeen, st.scopes, st.ring.tail())
	_ = os.WriteFile(SummaryPath(st.path), []byte(text), 0o644) //nolint:errcheck
}

// RenderSummary formats the summary text for a run: four header lines,
// a blank separator, then one compact line per tail event with a vars
// continuation line when the event captured anything.
func RenderSummary(totalSteps uint64, maxDepth int, scopes []string, tail []trace.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Debug Summary\n")
	fmt.Fprintf(&b, "# Total steps: %d\n", totalSteps)
	fmt.Fprintf(&b, "# Max depth: %d\n", maxDepth)
	fmt.Fprintf(&b, "# Scopes: %s\n", formatScopes(scopes))
	b.WriteString("\n")

	fmt.Fprintf(&b, "# Last %d steps:\n", len(tail))
	for i := range tail {
		ev := &tail[i]
		fmt.Fprintf(&b, "[%d] %s (%s) | %s\n", ev.Step, ev.Location(), ev.Scope, ev.Desc)
		if len(ev.Vars) > 0 {
			fmt.Fprintf(&b, "    vars: %s\n", formatVars(ev.Vars))
		}
	}
	return b.String()
}

func formatScopes(scopes []string) string {
	if len(scopes) == 0 {
		return "(none)"
	}
	return strings.Join(scopes, " -> ")
}

func formatVars(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+truncate(vars[name], summaryValueWidth))
	}
	return strings.Join(parts, ", ")
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// Truncate counts the tail against width itself.
	return runewidth.Truncate(value, width, "...")
}
