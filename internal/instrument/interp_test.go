package instrument

import (
	"os"
	"strings"
	"testing"

	"rewind/internal/ast"
	"rewind/internal/trace"
	"rewind/internal/writer"
)

// machine is a tiny statement-tree evaluator for the scenario tests.
// It executes an instrumented tree the way the host runtime would:
// synthesized calls are dispatched into the real writer, and variable
// values live in a flat string environment.
//
// Original-statement semantics are supplied by the test through the
// effects/loops/calls tables, keyed by statement text.
type machine struct {
	t       *testing.T
	effects map[string]func(env map[string]string)
	loops   map[string][]map[string]string
	calls   map[string]procCall
	procs   map[string]*ast.Stmt
}

type procCall struct {
	name string
	args map[string]string
}

func newMachine(t *testing.T) *machine {
	return &machine{
		t:       t,
		effects: map[string]func(env map[string]string){},
		loops:   map[string][]map[string]string{},
		calls:   map[string]procCall{},
		procs:   map[string]*ast.Stmt{},
	}
}

func (m *machine) run(stmts []*ast.Stmt, env map[string]string) {
	for _, st := range stmts {
		m.runStmt(st, env)
	}
}

func (m *machine) runStmt(st *ast.Stmt, env map[string]string) {
	if st == nil {
		return
	}
	if fx, ok := m.effects[st.Text]; ok {
		defer fx(env)
	}
	switch st.Kind {
	case ast.StmtCall:
		m.evalCall(st.Call, env)

	case ast.StmtSimple:
		if pc, ok := m.calls[st.Text]; ok {
			m.invoke(pc, env)
		}

	case ast.StmtProc:
		m.procs[st.Name] = st

	case ast.StmtFor:
		for _, bindings := range m.loops[st.Text] {
			for name, value := range bindings {
				env[name] = value
			}
			m.run(st.Body, env)
		}
		for _, bindings := range m.loops[st.Text] {
			for name := range bindings {
				delete(env, name)
			}
		}

	case ast.StmtWhile:
		for range m.loops[st.Text] {
			m.run(st.Body, env)
		}

	case ast.StmtBlock, ast.StmtNoDebug:
		m.run(st.Body, env)

	case ast.StmtIf, ast.StmtCase, ast.StmtWhen:
		// Ветка выбирается тестом: первая с непустым Cond, который
		// присутствует в env как "true"
		for i := range st.Branches {
			if env[st.Branches[i].Cond] == "true" {
				m.run(st.Branches[i].Body, env)
				return
			}
		}
		m.run(st.Else, env)

	case ast.StmtTry:
		m.runTry(st, env)
	}
}

func (m *machine) runTry(st *ast.Stmt, env map[string]string) {
	defer m.run(st.Finally, env)
	defer func() {
		if r := recover(); r != nil {
			if len(st.Handlers) > 0 {
				m.run(st.Handlers[0], env)
				return
			}
			panic(r)
		}
	}()
	m.run(st.Body, env)
}

func (m *machine) invoke(pc procCall, _ map[string]string) {
	proc, ok := m.procs[pc.name]
	if !ok {
		m.t.Fatalf("call to undefined proc %q", pc.name)
	}
	callee := map[string]string{}
	for name, value := range pc.args {
		callee[name] = value
	}
	m.run(proc.ProcBody, callee)
}

func (m *machine) evalCall(call *ast.Expr, env map[string]string) {
	switch call.Target {
	case TargetDebugLog:
		file := call.Args[0].Str
		line := int(call.Args[1].Int)
		col := int(call.Args[2].Int)
		desc := call.Args[3].Str
		snapshot := call.Args[4]
		vars := make(map[string]string, len(snapshot.Keys))
		for i, name := range snapshot.Keys {
			vars[name] = m.evalRepr(snapshot.Args[i], env)
		}
		writer.DebugLog(file, line, col, desc, vars)

	case TargetEnterScope:
		writer.EnterScope(call.Args[0].Str)

	case TargetExitScope:
		writer.ExitScope()

	default:
		m.t.Fatalf("unexpected synthesized call target %q", call.Target)
	}
}

func (m *machine) evalRepr(e *ast.Expr, env map[string]string) string {
	if e.Kind != ast.ExprCall || e.Target != TargetSafeRepr {
		m.t.Fatalf("snapshot value is not a safeRepr call: %+v", e)
	}
	name := e.Args[0].Ident
	return writer.SafeRepr(env[name])
}

// runTrace instruments body, executes it on a fresh machine, and
// returns the decoded trace.
func runTrace(t *testing.T, m *machine, body []*ast.Stmt, region ast.Pos) []trace.Event {
	t.Helper()
	path := t.TempDir() + "/scenario.trace"
	writer.InitDebugLogPath(path)
	defer writer.CloseDebugLog()

	m.run(Instrument(body, region), map[string]string{})
	writer.CloseDebugLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	var events []trace.Event
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		ev, err := trace.DecodeLine([]byte(line))
		if err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if err := trace.Validate(events); err != nil {
		t.Fatalf("scenario produced an invalid trace: %v", err)
	}
	return events
}
