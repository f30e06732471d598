package loader

import (
	"sort"

	"rewind/internal/trace"
)

// WatchPoint is one value-change of a watched name.
type WatchPoint struct {
	Step  int
	Value string
}

// WatchHistory returns the steps at which name's value differs from the
// value last emitted for it. Steps where the name is absent contribute
// nothing: only value changes appear, not disappearances.
func WatchHistory(events []trace.Event, name string) []WatchPoint {
	var out []WatchPoint
	last := ""
	have := false
	for i := range events {
		value, ok := events[i].Vars[name]
		if !ok {
			continue
		}
		if !have || value != last {
			out = append(out, WatchPoint{Step: i, Value: value})
			last = value
			have = true
		}
	}
	return out
}

// ChangeKind classifies one entry of a changed set.
type ChangeKind uint8

const (
	Added ChangeKind = iota
	Removed
	Changed
)

// Change is one differing name between adjacent steps.
type Change struct {
	Name string
	Kind ChangeKind
}

// Sigil returns the diff marker for the change.
func (c Change) Sigil() string {
	switch c.Kind {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

// ChangedNames computes the changed set of step i relative to step i-1:
// names added, removed, or present in both with different values.
// Step 0 (and out-of-range indices) have no changed set. Results are
// sorted by name.
func ChangedNames(events []trace.Event, i int) []Change {
	if i <= 0 || i >= len(events) {
		return nil
	}
	prev := events[i-1].Vars
	curr := events[i].Vars

	var out []Change
	for name, value := range curr {
		old, ok := prev[name]
		switch {
		case !ok:
			out = append(out, Change{Name: name, Kind: Added})
		case old != value:
			out = append(out, Change{Name: name, Kind: Changed})
		}
	}
	for name := range prev {
		if _, ok := curr[name]; !ok {
			out = append(out, Change{Name: name, Kind: Removed})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// ChangedSet returns the changed names of step i as a lookup set.
func ChangedSet(events []trace.Event, i int) map[string]ChangeKind {
	changes := ChangedNames(events, i)
	if changes == nil {
		return nil
	}
	out := make(map[string]ChangeKind, len(changes))
	for _, c := range changes {
		out[c.Name] = c.Kind
	}
	return out
}
