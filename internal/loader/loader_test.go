package loader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rewind/internal/trace"
)

func writeTrace(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.trace")
	data := ""
	for _, line := range lines {
		data += line + "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return path
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := writeTrace(t,
		`{"step":0,"ts":1.0,"file":"a.src","line":1,"col":0,"desc":"var x = 1","depth":0,"scope":"<module>","vars":{}}`,
		`this is not json`,
		`{"step":1,"ts":1.5,"depth":0}`, // missing scope
		`{"step":1,"ts":2.0,"file":"a.src","line":2,"col":0,"desc":"echo x","depth":0,"scope":"<module>","vars":{"x":"1"}}`,
		``,
	)
	events, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (malformed lines skipped)", len(events))
	}
	if events[1].Vars["x"] != "1" {
		t.Errorf("second event vars = %#v", events[1].Vars)
	}
}

func TestLoadMissingFile(t *testing.T) {
	events, err := Load(filepath.Join(t.TempDir(), "absent.trace"))
	if err != nil {
		t.Fatalf("missing trace must not error, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("missing trace must load as empty, got %d events", len(events))
	}
}

func TestSummarize(t *testing.T) {
	events := []trace.Event{
		{Step: 0, TS: 10.0, File: "a.src", Depth: 0, Scope: trace.ModuleScope},
		{Step: 1, TS: 11.5, File: "b.src", Depth: 2, Scope: "f"},
		{Step: 2, TS: 12.0, File: "a.src", Depth: 1, Scope: "f"},
	}
	st := Summarize(events)
	want := Stats{TotalSteps: 3, UniqueFiles: 2, MaxDepth: 2, DurationSeconds: 2.0}
	if st != want {
		t.Errorf("Summarize = %+v, want %+v", st, want)
	}

	if st := Summarize(nil); st != (Stats{}) {
		t.Errorf("Summarize(nil) = %+v", st)
	}
	if st := Summarize(events[:1]); st.DurationSeconds != 0 {
		t.Errorf("single-event duration = %f, want 0", st.DurationSeconds)
	}
}

func TestFileAndScopeLists(t *testing.T) {
	events := []trace.Event{
		{File: "a.src", Scope: trace.ModuleScope},
		{File: "b.src", Scope: "f"},
		{File: "a.src", Scope: "g"},
		{File: "", Scope: "f"},
	}
	if got := FileList(events); !reflect.DeepEqual(got, []string{"a.src", "b.src"}) {
		t.Errorf("FileList = %v", got)
	}
	if got := ScopeList(events); !reflect.DeepEqual(got, []string{trace.ModuleScope, "f", "g"}) {
		t.Errorf("ScopeList = %v", got)
	}
}

func vars(pairs ...string) map[string]string {
	out := map[string]string{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}

func TestWatchHistory(t *testing.T) {
	events := []trace.Event{
		{Vars: vars()},
		{Vars: vars("x", "1")},
		{Vars: vars("x", "1")},          // без изменений
		{Vars: vars("x", "2")},          // изменение
		{Vars: vars()},                  // исчезновение не даёт записи
		{Vars: vars("x", "2")},          // то же значение после пропуска
		{Vars: vars("x", "3", "y", "9")},
	}
	got := WatchHistory(events, "x")
	want := []WatchPoint{{1, "1"}, {3, "2"}, {6, "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WatchHistory(x) = %v, want %v", got, want)
	}
	if got := WatchHistory(events, "absent"); len(got) != 0 {
		t.Errorf("WatchHistory(absent) = %v", got)
	}
}

func TestChangedNames(t *testing.T) {
	events := []trace.Event{
		{Vars: vars("a", "1", "b", "2")},
		{Vars: vars("a", "1", "c", "3")},
		{Vars: vars("a", "9", "c", "3")},
	}
	if got := ChangedNames(events, 0); got != nil {
		t.Errorf("step 0 has no changed set, got %v", got)
	}
	got := ChangedNames(events, 1)
	want := []Change{{"b", Removed}, {"c", Added}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedNames(1) = %v, want %v", got, want)
	}
	got = ChangedNames(events, 2)
	want = []Change{{"a", Changed}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedNames(2) = %v, want %v", got, want)
	}
	if got := ChangedNames(events, 5); got != nil {
		t.Errorf("out of range index must yield nil, got %v", got)
	}
}

// Свойство из контракта: объединение added/removed/changed равно
// симметрической разности ключей плюс общие ключи с разными значениями.
func TestChangedSetProperty(t *testing.T) {
	steps := []map[string]string{
		vars(),
		vars("a", "1"),
		vars("a", "1", "b", "2"),
		vars("b", "3"),
		vars("b", "3"),
		vars("c", "0", "d", "1", "a", "2"),
	}
	events := make([]trace.Event, len(steps))
	for i, v := range steps {
		events[i] = trace.Event{Step: uint64(i), Vars: v}
	}

	for i := 1; i < len(events); i++ {
		got := ChangedSet(events, i)
		prev, curr := events[i-1].Vars, events[i].Vars
		expect := map[string]bool{}
		for name := range curr {
			if old, ok := prev[name]; !ok || old != curr[name] {
				expect[name] = true
			}
		}
		for name := range prev {
			if _, ok := curr[name]; !ok {
				expect[name] = true
			}
		}
		if len(got) != len(expect) {
			t.Errorf("step %d: changed set %v, expected names %v", i, got, expect)
			continue
		}
		for name := range expect {
			if _, ok := got[name]; !ok {
				t.Errorf("step %d: missing %q in changed set", i, name)
			}
		}
	}
}

func TestChangeSigils(t *testing.T) {
	if (Change{Kind: Added}).Sigil() != "+" || (Change{Kind: Removed}).Sigil() != "-" || (Change{Kind: Changed}).Sigil() != "~" {
		t.Error("diff sigils must be +, -, ~")
	}
}
