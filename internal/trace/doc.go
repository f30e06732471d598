// Package trace defines the on-disk trace record shared by the runtime
// writer and the replay tooling.
//
// A trace is a UTF-8 file with one JSON object per line, LF-terminated.
// Each line is one Event: a single statement execution observed by the
// instrumented program. Lines are written atomically (encode + flush per
// event), so a crashed process still leaves a well-formed prefix.
//
// # Schema
//
//	{"step":0,"ts":1723.5,"file":"t.src","line":1,"col":0,
//	 "desc":"var x = 10","depth":0,"scope":"<module>","vars":{}}
//
//   - step: dense, monotonically increasing from 0, unique per trace
//   - ts: wall-clock seconds since the Unix epoch, non-decreasing
//   - file/line/col: best-effort source location (1-based line, 0-based col)
//   - desc: first source line of the statement, at most 80 columns
//   - depth: call-stack depth; 0 is the outermost instrumented scope
//   - scope: containing procedure, or "<module>" at the outermost scope
//   - vars: name -> stringified value for every known local
//
// Unknown fields are ignored on decode, so the format can grow without
// breaking older replayers.
package trace
