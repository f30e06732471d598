package writer

import "sync"

// Locked is the opt-in goroutine-safe wrapper around the writer. The
// bare functions stay lock-free because the contract is single-writer
// per process; programs that emit from several goroutines route every
// call through one shared Locked value instead.
type Locked struct {
	mu sync.Mutex
}

func (l *Locked) DebugLog(file string, line, col int, desc string, vars map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	DebugLog(file, line, col, desc, vars)
}

func (l *Locked) EnterScope(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	EnterScope(name)
}

func (l *Locked) ExitScope() {
	l.mu.Lock()
	defer l.mu.Unlock()
	ExitScope()
}

func (l *Locked) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	CloseDebugLog()
}
