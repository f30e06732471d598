package ast

// Construction helpers. The real front end builds these nodes from its
// parse tree; tests build them directly.

func Simple(pos Pos, text string) *Stmt {
	return &Stmt{Kind: StmtSimple, Pos: pos, Text: text}
}

func Decl(pos Pos, class DeclClass, text string, names ...DeclName) *Stmt {
	return &Stmt{Kind: StmtDecl, Pos: pos, Text: text, Class: class, Names: names}
}

func If(pos Pos, text string, branches []Branch, els []*Stmt) *Stmt {
	return &Stmt{Kind: StmtIf, Pos: pos, Text: text, Branches: branches, Else: els}
}

func Case(pos Pos, text string, branches []Branch, els []*Stmt) *Stmt {
	return &Stmt{Kind: StmtCase, Pos: pos, Text: text, Branches: branches, Else: els}
}

func When(pos Pos, text string, branches []Branch, els []*Stmt) *Stmt {
	return &Stmt{Kind: StmtWhen, Pos: pos, Text: text, Branches: branches, Else: els}
}

func For(pos Pos, text string, bound []DeclName, body []*Stmt) *Stmt {
	return &Stmt{Kind: StmtFor, Pos: pos, Text: text, Bound: bound, Body: body}
}

func While(pos Pos, text string, body []*Stmt) *Stmt {
	return &Stmt{Kind: StmtWhile, Pos: pos, Text: text, Body: body}
}

func Block(pos Pos, label string, body []*Stmt) *Stmt {
	text := "block"
	if label != "" {
		text = "block " + label
	}
	return &Stmt{Kind: StmtBlock, Pos: pos, Text: text, Label: label, Body: body}
}

func Try(pos Pos, body []*Stmt, handlers [][]*Stmt, finally []*Stmt) *Stmt {
	return &Stmt{Kind: StmtTry, Pos: pos, Text: "try", Body: body, Handlers: handlers, Finally: finally}
}

func Proc(pos Pos, class ProcClass, name string, params []string, body []*Stmt) *Stmt {
	return &Stmt{Kind: StmtProc, Pos: pos, Text: "proc " + name, Proc: class, Name: name, Params: params, ProcBody: body}
}

func NoDebug(pos Pos, body []*Stmt) *Stmt {
	return &Stmt{Kind: StmtNoDebug, Pos: pos, Text: "noDebug", Body: body}
}

func Opaque(pos Pos, text string) *Stmt {
	return &Stmt{Kind: StmtOpaque, Pos: pos, Text: text}
}

func CallStmt(pos Pos, call *Expr) *Stmt {
	return &Stmt{Kind: StmtCall, Pos: pos, Text: call.Target, Call: call}
}
