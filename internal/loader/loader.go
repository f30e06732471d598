// Package loader reads a finished trace back into memory and derives
// the indices the replayer navigates: per-step changed sets, watch
// histories, and the ordered file and scope lists.
//
// Events are owned by a single contiguous slice; every derived index
// refers to events by step index, never by pointer.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"rewind/internal/trace"
)

// maxLineBytes bounds a single trace line. Events with huge captured
// values still fit; a longer line ends the load, and the events read
// before it are returned.
const maxLineBytes = 1 << 20

// Load reads every well-formed event from the trace at path, in file
// order. Malformed lines are skipped silently; a missing file yields an
// empty slice and no error.
func Load(path string) ([]trace.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var events []trace.Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := trace.DecodeLine(line)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		// Частичный префикс полезнее, чем ошибка: отдаём что прочитали
		return events, nil
	}
	return events, nil
}

// Stats is the single-pass summary of a loaded trace.
type Stats struct {
	TotalSteps      int
	UniqueFiles     int
	MaxDepth        int
	DurationSeconds float64
}

// Summarize computes Stats in one pass.
func Summarize(events []trace.Event) Stats {
	st := Stats{TotalSteps: len(events)}
	files := map[string]bool{}
	for i := range events {
		ev := &events[i]
		if ev.File != "" && !files[ev.File] {
			files[ev.File] = true
			st.UniqueFiles++
		}
		if ev.Depth > st.MaxDepth {
			st.MaxDepth = ev.Depth
		}
	}
	if len(events) >= 2 {
		st.DurationSeconds = events[len(events)-1].TS - events[0].TS
	}
	return st
}

// FileList returns the distinct files in first-reference order.
func FileList(events []trace.Event) []string {
	seen := map[string]bool{}
	var out []string
	for i := range events {
		file := events[i].File
		if file == "" || seen[file] {
			continue
		}
		seen[file] = true
		out = append(out, file)
	}
	return out
}

// ScopeList returns the distinct scopes in first-entry order, the
// module sentinel included when present.
func ScopeList(events []trace.Event) []string {
	seen := map[string]bool{}
	var out []string
	for i := range events {
		scope := events[i].Scope
		if scope == "" || seen[scope] {
			continue
		}
		seen[scope] = true
		out = append(out, scope)
	}
	return out
}
