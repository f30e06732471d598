package ast

// Discard is the placeholder identifier that never becomes a tracked
// local.
const Discard = "_"

// DeclName is one declared identifier inside a declaration section or a
// loop header. The surface syntax may wrap the identifier in an export
// postfix or a pragma; the rewriter only cares about the bare name.
type DeclName struct {
	Ident    string
	Exported bool   // name* wrapper
	Pragma   string // name {.pragma.} wrapper, empty when absent
}

// Plain builds an unwrapped declared name.
func Plain(ident string) DeclName {
	return DeclName{Ident: ident}
}

// Exported builds a declared name carrying the export postfix.
func Exported(ident string) DeclName {
	return DeclName{Ident: ident, Exported: true}
}

// Pragmad builds a declared name wrapped in a pragma.
func Pragmad(ident, pragma string) DeclName {
	return DeclName{Ident: ident, Pragma: pragma}
}

// Tracked reports whether the name should enter the known-vars set.
func (d DeclName) Tracked() bool {
	return d.Ident != "" && d.Ident != Discard
}
