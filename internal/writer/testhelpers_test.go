package writer

import "rewind/internal/trace"

// Общие помощники для тестов пакета.

func eventWithStep(step uint64) trace.Event {
	return trace.Event{Step: step, Scope: trace.ModuleScope, Vars: map[string]string{}}
}

func steps(events []trace.Event) []uint64 {
	out := make([]uint64, len(events))
	for i := range events {
		out[i] = events[i].Step
	}
	return out
}

func equalU64(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
