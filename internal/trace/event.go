package trace

import "strconv"

// ModuleScope is the sentinel scope name for events emitted outside any
// instrumented procedure.
const ModuleScope = "<module>"

// Event is a single trace record: one statement execution.
//
// Lines are encoded with the fields in declaration order so traces diff
// cleanly between runs.
type Event struct {
	Step  uint64            `json:"step"`
	TS    float64           `json:"ts"`
	File  string            `json:"file"`
	Line  int               `json:"line"`
	Col   int               `json:"col"`
	Desc  string            `json:"desc"`
	Depth int               `json:"depth"`
	Scope string            `json:"scope"`
	Vars  map[string]string `json:"vars"`
}

// Location returns "file:line" for display, or "?" when the location is
// unknown.
func (e *Event) Location() string {
	if e.File == "" {
		return "?"
	}
	return e.File + ":" + strconv.Itoa(e.Line)
}

// AtModule reports whether the event was emitted at the outermost scope.
func (e *Event) AtModule() bool {
	return e.Scope == ModuleScope
}
