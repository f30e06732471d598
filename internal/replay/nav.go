// Package replay is the interactive half of the debugger: a full-screen
// terminal UI over a loaded trace. Navigation, search and breakpoint
// logic live in plain functions over the event slice so the state
// machine stays testable without a terminal.
package replay

import (
	"fmt"
	"strconv"
	"strings"

	"rewind/internal/trace"
)

// Breakpoint is a (file-suffix, line) pair. The file component matches
// by suffix so users can set breakpoints with bare filenames.
type Breakpoint struct {
	File string
	Line int
}

func (b Breakpoint) String() string {
	return fmt.Sprintf("%s:%d", b.File, b.Line)
}

// Matches reports whether the event hits this breakpoint.
func (b Breakpoint) Matches(ev *trace.Event) bool {
	return ev.Line == b.Line && b.File != "" && strings.HasSuffix(ev.File, b.File)
}

// ParseBreakpoint parses a "file:line" spec.
func ParseBreakpoint(spec string) (Breakpoint, error) {
	i := strings.LastIndexByte(spec, ':')
	if i <= 0 || i == len(spec)-1 {
		return Breakpoint{}, fmt.Errorf("breakpoint must be file:line, got %q", spec)
	}
	line, err := strconv.Atoi(spec[i+1:])
	if err != nil || line <= 0 {
		return Breakpoint{}, fmt.Errorf("breakpoint line must be a positive number, got %q", spec[i+1:])
	}
	return Breakpoint{File: spec[:i], Line: line}, nil
}

// clampStep confines a step to [0, n-1].
func clampStep(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n-1 {
		return n - 1
	}
	return pos
}

// ContinueTo scans forward from pos+1 for the first event hitting any
// breakpoint. The second result is false when nothing hits.
func ContinueTo(events []trace.Event, bps []Breakpoint, pos int) (int, bool) {
	for i := pos + 1; i < len(events); i++ {
		for _, bp := range bps {
			if bp.Matches(&events[i]) {
				return i, true
			}
		}
	}
	return pos, false
}

// ReverseTo scans backward from pos-1 down to 0.
func ReverseTo(events []trace.Event, bps []Breakpoint, pos int) (int, bool) {
	for i := pos - 1; i >= 0; i-- {
		for _, bp := range bps {
			if bp.Matches(&events[i]) {
				return i, true
			}
		}
	}
	return pos, false
}

// Search returns the steps matching pattern, sorted by step. The match
// is a case-insensitive substring test against desc, file and scope;
// when none of those match an event, its vars keys and values are
// tried as a fallback.
func Search(events []trace.Event, pattern string) []int {
	if pattern == "" {
		return nil
	}
	needle := strings.ToLower(pattern)
	var out []int
	for i := range events {
		if matchEvent(&events[i], needle) {
			out = append(out, i)
		}
	}
	return out
}

func matchEvent(ev *trace.Event, needle string) bool {
	for _, field := range []string{ev.Desc, ev.File, ev.Scope} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for name, value := range ev.Vars {
		if strings.Contains(strings.ToLower(name), needle) ||
			strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

// cycleResult advances through a sorted result list modulo its length.
// dir is +1 for next, -1 for prev.
func cycleResult(results []int, idx, dir int) int {
	n := len(results)
	if n == 0 {
		return 0
	}
	return ((idx+dir)%n + n) % n
}

// firstResultFrom returns the index of the first result at or after
// pos, so a fresh search lands on the nearest hit ahead.
func firstResultFrom(results []int, pos int) int {
	for i, step := range results {
		if step >= pos {
			return i
		}
	}
	return 0
}
