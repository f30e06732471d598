// Package instrument rewrites a statement tree so that every statement
// inside a debug region reports itself to the runtime writer before it
// runs. The input tree is never mutated; the rewriter clones what it
// keeps and splices what it synthesizes.
package instrument

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"rewind/internal/ast"
)

// Fully-qualified runtime targets, bound at rewrite time so that user
// code declaring a same-named local cannot capture them.
const (
	TargetDebugLog   = "rewind/internal/writer.DebugLog"
	TargetEnterScope = "rewind/internal/writer.EnterScope"
	TargetExitScope  = "rewind/internal/writer.ExitScope"
	TargetSafeRepr   = "rewind/internal/writer.SafeRepr"
)

// descWidth bounds the statement description carried by each event.
const descWidth = 80

// Instrument rewrites the body of a debug region located at region.
// The returned list is semantically equivalent to the input plus trace
// emissions; the input is left untouched.
func Instrument(stmts []*ast.Stmt, region ast.Pos) []*ast.Stmt {
	return walkList(stmts, region, NewKnownVars())
}

// walkList instruments one statement list with the given known-vars
// set. caller is the location inherited from the enclosing walk, used
// when a node carries no usable position of its own.
func walkList(stmts []*ast.Stmt, caller ast.Pos, known *KnownVars) []*ast.Stmt {
	out := make([]*ast.Stmt, 0, len(stmts)*2)
	for _, st := range stmts {
		if st == nil {
			continue
		}

		// Opt-out islands are spliced verbatim: no emission, no
		// recursion, nothing inside them ever reaches the trace.
		if st.Kind == ast.StmtNoDebug {
			out = append(out, ast.CloneList(st.Body)...)
			continue
		}

		// Shapes the rewriter does not recognise pass through
		// unchanged and silently.
		if st.Kind == ast.StmtOpaque || st.Kind == ast.StmtCall {
			out = append(out, st.Clone())
			continue
		}

		pos := st.Pos.Or(caller)
		out = append(out, emitFor(pos, st.Text, known))

		// Declared names become known only after the emission above,
		// so the declaration's own event shows the state before it.
		if st.Kind == ast.StmtDecl {
			for _, n := range st.Names {
				if n.Tracked() {
					known.Add(n.Ident)
				}
			}
		}

		out = append(out, walkStmt(st, pos, known))
	}
	return out
}

// walkStmt clones one recognised statement and instruments its body
// positions. Every sub-scope receives a fork of the current set.
func walkStmt(st *ast.Stmt, pos ast.Pos, known *KnownVars) *ast.Stmt {
	clone := st.Clone()
	switch st.Kind {
	case ast.StmtIf, ast.StmtCase, ast.StmtWhen:
		for i := range clone.Branches {
			clone.Branches[i].Body = walkList(clone.Branches[i].Body, pos, known.Fork())
		}
		if clone.Else != nil {
			clone.Else = walkList(clone.Else, pos, known.Fork())
		}

	case ast.StmtFor:
		fork := known.Fork()
		for _, n := range st.Bound {
			if n.Tracked() {
				fork.Add(n.Ident)
			}
		}
		clone.Body = walkList(clone.Body, pos, fork)

	case ast.StmtWhile, ast.StmtBlock:
		clone.Body = walkList(clone.Body, pos, known.Fork())

	case ast.StmtTry:
		clone.Body = walkList(clone.Body, pos, known.Fork())
		for i := range clone.Handlers {
			clone.Handlers[i] = walkList(clone.Handlers[i], pos, known.Fork())
		}
		if clone.Finally != nil {
			clone.Finally = walkList(clone.Finally, pos, known.Fork())
		}

	case ast.StmtProc:
		clone.ProcBody = procBody(st, pos)
	}
	return clone
}

// procBody builds the instrumented body of a routine: scope entry
// first, then the instrumented statements inside a try whose finally
// guarantees scope exit on every path out, including exceptions and
// early returns.
//
// The known-vars set is re-initialised from the formal parameters; the
// enclosing region's locals are not visible inside the routine.
func procBody(p *ast.Stmt, pos ast.Pos) []*ast.Stmt {
	fresh := NewKnownVars()
	for _, param := range p.Params {
		if param != ast.Discard {
			fresh.Add(param)
		}
	}
	inner := walkList(p.ProcBody, pos, fresh)
	return []*ast.Stmt{
		ast.CallStmt(pos, ast.Call(TargetEnterScope, ast.Str(p.Name))),
		ast.Try(pos, inner, nil, []*ast.Stmt{
			ast.CallStmt(pos, ast.Call(TargetExitScope)),
		}),
	}
}

// emitFor synthesizes the trace call that precedes one statement: a
// DebugLog call carrying the location, the description, and a snapshot
// of every known local as a SafeRepr map literal.
func emitFor(pos ast.Pos, text string, known *KnownVars) *ast.Stmt {
	names := known.Sorted()
	vals := make([]*ast.Expr, len(names))
	for i, name := range names {
		vals[i] = ast.Call(TargetSafeRepr, ast.Ident(name))
	}
	call := ast.Call(TargetDebugLog,
		ast.Str(pos.File),
		ast.Int(int64(pos.Line)),
		ast.Int(int64(pos.Col)),
		ast.Str(describe(text)),
		ast.MapLit(names, vals),
	)
	return ast.CallStmt(pos, call)
}

// describe reduces a statement to its one-line description: the first
// source line, truncated to 80 columns with an ellipsis.
func describe(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if runewidth.StringWidth(text) <= descWidth {
		return text
	}
	return runewidth.Truncate(text, descWidth-3, "") + "..."
}
