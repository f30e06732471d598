package trace

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncodeLineFieldOrder(t *testing.T) {
	ev := Event{
		Step:  3,
		TS:    12.5,
		File:  "t.src",
		Line:  7,
		Col:   2,
		Desc:  "x = x + 1",
		Depth: 1,
		Scope: "f",
		Vars:  map[string]string{"x": "10"},
	}
	data, err := EncodeLine(&ev)
	if err != nil {
		t.Fatalf("EncodeLine: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("encoded line must be newline-terminated")
	}
	want := `{"step":3,"ts":12.5,"file":"t.src","line":7,"col":2,"desc":"x = x + 1","depth":1,"scope":"f","vars":{"x":"10"}}` + "\n"
	if string(data) != want {
		t.Errorf("stable field order broken:\n got  %s\n want %s", data, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	// Round-trip должен сохранять каждое поле схемы
	events := []Event{
		{Step: 0, TS: 0, Scope: ModuleScope, Vars: map[string]string{}},
		{Step: 1, TS: 1.25, File: "a/b.src", Line: 10, Col: 4, Desc: "echo i", Depth: 2, Scope: "inner", Vars: map[string]string{"i": "3", "s": "hi"}},
		{Step: 2, TS: 2, File: "", Line: 0, Col: 0, Desc: "", Depth: 0, Scope: ModuleScope, Vars: map[string]string{}},
	}
	for _, ev := range events {
		data, err := EncodeLine(&ev)
		if err != nil {
			t.Fatalf("EncodeLine(%v): %v", ev, err)
		}
		got, err := DecodeLine(bytes.TrimSuffix(data, []byte("\n")))
		if err != nil {
			t.Fatalf("DecodeLine(%s): %v", data, err)
		}
		if !reflect.DeepEqual(got, ev) {
			t.Errorf("round-trip mismatch:\n got  %+v\n want %+v", got, ev)
		}
	}
}

func TestDecodeLineRejects(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"not json", "step 0"},
		{"truncated", `{"step":0,"ts":1.0,"de`},
		{"missing step", `{"ts":1.0,"depth":0,"scope":"<module>"}`},
		{"missing ts", `{"step":0,"depth":0,"scope":"<module>"}`},
		{"missing depth", `{"step":0,"ts":1.0,"scope":"<module>"}`},
		{"missing scope", `{"step":0,"ts":1.0,"depth":0}`},
		{"step wrong type", `{"step":"0","ts":1.0,"depth":0,"scope":"<module>"}`},
		{"negative step", `{"step":-1,"ts":1.0,"depth":0,"scope":"<module>"}`},
		{"negative depth", `{"step":0,"ts":1.0,"depth":-2,"scope":"<module>"}`},
		{"bad vars", `{"step":0,"ts":1.0,"depth":0,"scope":"<module>","vars":[1,2]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLine([]byte(tc.line)); !errors.Is(err, ErrBadLine) {
				t.Errorf("DecodeLine(%q) = %v, want ErrBadLine", tc.line, err)
			}
		})
	}
}

func TestDecodeLineTolerant(t *testing.T) {
	// Отсутствующие best-effort поля и неизвестные ключи не ломают декодер
	got, err := DecodeLine([]byte(`{"step":5,"ts":9.5,"depth":0,"scope":"<module>","future_field":true}`))
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if got.File != "" || got.Line != 0 || got.Col != 0 || got.Desc != "" {
		t.Errorf("missing optional fields must decode to zero values, got %+v", got)
	}
	if got.Vars == nil || len(got.Vars) != 0 {
		t.Errorf("missing vars must decode to an empty map, got %#v", got.Vars)
	}
}

func TestValidate(t *testing.T) {
	ok := []Event{
		{Step: 0, TS: 1, Depth: 0, Scope: ModuleScope},
		{Step: 1, TS: 1, Depth: 1, Scope: "f"},
		{Step: 2, TS: 2, Depth: 0, Scope: ModuleScope},
	}
	if err := Validate(ok); err != nil {
		t.Errorf("Validate(ok trace) = %v", err)
	}

	gap := []Event{{Step: 0, TS: 1, Scope: ModuleScope}, {Step: 2, TS: 2, Scope: ModuleScope}}
	if err := Validate(gap); err == nil {
		t.Error("Validate must reject step gaps")
	}

	backwards := []Event{{Step: 0, TS: 5, Scope: ModuleScope}, {Step: 1, TS: 4, Scope: ModuleScope}}
	if err := Validate(backwards); err == nil {
		t.Error("Validate must reject backwards timestamps")
	}

	moduleDeep := []Event{{Step: 0, TS: 1, Depth: 3, Scope: ModuleScope}}
	if err := Validate(moduleDeep); err == nil {
		t.Error("Validate must reject module scope at depth > 0")
	}
}
