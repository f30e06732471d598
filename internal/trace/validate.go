package trace

import (
	"fmt"

	"fortio.org/safecast"
)

// Validate checks the well-formedness invariants of a decoded trace:
// dense steps starting at 0, non-decreasing timestamps, non-negative
// depth, and module scope only at depth 0.
//
// Loaders do not call this; malformed traces are still replayable.
// It backs the stats subcommand and the test suite.
func Validate(events []Event) error {
	prevTS := 0.0
	for i := range events {
		ev := &events[i]
		want, err := safecast.Conv[uint64](i)
		if err != nil {
			return fmt.Errorf("trace index overflow at %d: %w", i, err)
		}
		if ev.Step != want {
			return fmt.Errorf("step %d at index %d: steps must be dense from 0", ev.Step, i)
		}
		if ev.TS < prevTS {
			return fmt.Errorf("step %d: timestamp %f goes backwards (prev %f)", ev.Step, ev.TS, prevTS)
		}
		prevTS = ev.TS
		if ev.Depth < 0 {
			return fmt.Errorf("step %d: negative depth %d", ev.Step, ev.Depth)
		}
		if ev.Scope == ModuleScope && ev.Depth != 0 {
			return fmt.Errorf("step %d: %s scope at depth %d", ev.Step, ModuleScope, ev.Depth)
		}
	}
	return nil
}
