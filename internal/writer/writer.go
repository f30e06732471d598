// Package writer is the runtime half of the instrumentation: a
// process-wide, lazily initialised trace emitter.
//
// Generated code depends on exactly five names: InitDebugLog,
// CloseDebugLog, DebugLog, EnterScope and ExitScope. Everything else is
// support for those five.
//
// The writer is single-writer by contract and is not goroutine-safe on
// its own; programs that emit from several goroutines must go through
// Locked. Every event is flushed as soon as it is written, so a crashed
// process still leaves a well-formed trace prefix.
package writer

import (
	"os"
	"os/signal"
	"syscall"

	"rewind/internal/trace"
)

// DefaultPath is the trace file written when nothing overrides it.
const DefaultPath = ".debug.trace"

// EnvPath overrides the trace path when set. An explicit
// InitDebugLogPath call wins over the environment.
const EnvPath = "REWIND_TRACE"

const ringCapacity = 15

type writerState struct {
	path    string
	file    *os.File
	next    uint64
	depth   int
	scope   string
	ring    eventRing
	maxSeen int
	scopes  []string
	seen    map[string]bool
	dropped bool // open failed; emissions are discarded
	active  bool
}

// Глобальное состояние процесса: удобство для сгенерированных вызовов
// важнее чистоты (см. DESIGN.md).
var cur writerState

// InitDebugLog opens the trace file at the environment-selected path, or
// DefaultPath when the variable is unset. Repeated calls re-initialise:
// the file is truncated and all counters reset.
func InitDebugLog() {
	path := os.Getenv(EnvPath)
	if path == "" {
		path = DefaultPath
	}
	InitDebugLogPath(path)
}

// InitDebugLogPath opens or truncates path and resets the writer. The
// explicit path wins over the environment variable.
//
// Open failure is not fatal for the host program: the writer switches to
// a mode where every emission is silently dropped.
func InitDebugLogPath(path string) {
	if cur.file != nil {
		_ = cur.file.Close() //nolint:errcheck
	}
	cur = writerState{
		path:   path,
		scope:  trace.ModuleScope,
		ring:   newEventRing(ringCapacity),
		seen:   map[string]bool{},
		active: true,
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		cur.dropped = true
		return
	}
	cur.file = f
	installExitHook()
}

// DebugLog emits one trace event. The writer initialises itself on the
// first call if the program never called InitDebugLog.
func DebugLog(file string, line, col int, desc string, vars map[string]string) {
	if !cur.active {
		InitDebugLog()
	}
	ev := trace.Event{
		Step:  cur.next,
		TS:    nowSeconds(),
		File:  file,
		Line:  line,
		Col:   col,
		Desc:  desc,
		Depth: cur.depth,
		Scope: cur.scope,
		Vars:  vars,
	}
	if ev.Vars == nil {
		ev.Vars = map[string]string{}
	}
	cur.next++
	cur.ring.push(ev)
	if cur.depth > cur.maxSeen {
		cur.maxSeen = cur.depth
	}

	if cur.dropped || cur.file == nil {
		return
	}
	data, err := trace.EncodeLine(&ev)
	if err != nil {
		return
	}
	// Best-effort: ошибки записи не должны ломать инструментированную
	// программу.
	if _, err := cur.file.Write(data); err != nil {
		return
	}
	_ = cur.file.Sync() //nolint:errcheck
}

// EnterScope records entry into a named procedure.
func EnterScope(name string) {
	if !cur.active {
		InitDebugLog()
	}
	cur.scope = name
	cur.depth++
	if !cur.seen[name] {
		cur.seen[name] = true
		cur.scopes = append(cur.scopes, name)
	}
}

// ExitScope records leaving the current procedure. Depth never goes
// below zero; at zero the scope resets to the module sentinel.
func ExitScope() {
	if !cur.active {
		return
	}
	cur.depth--
	if cur.depth <= 0 {
		cur.depth = 0
		cur.scope = trace.ModuleScope
	}
}

// CloseDebugLog writes the human-readable summary next to the trace and
// closes the file. Safe to call more than once.
func CloseDebugLog() {
	if !cur.active {
		return
	}
	writeSummary(&cur)
	if cur.file != nil {
		_ = cur.file.Close() //nolint:errcheck
		cur.file = nil
	}
	cur.active = false
}

var exitHookInstalled bool

// installExitHook closes the writer when the process is interrupted, so
// the summary survives a Ctrl-C. Normal termination still needs a
// CloseDebugLog call (typically deferred from main).
func installExitHook() {
	if exitHookInstalled {
		return
	}
	exitHookInstalled = true
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		CloseDebugLog()
		signal.Stop(ch)
		if p, err := os.FindProcess(os.Getpid()); err == nil {
			_ = p.Signal(sig) //nolint:errcheck
		}
	}()
}
