package writer

import "testing"

type explosive struct{}

func (explosive) String() string { panic("boom") }

type named struct{}

func (named) String() string { return "named{}" }

func TestSafeRepr(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hi", "hi"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"stringer", named{}, "named{}"},
		{"slice", []int{1, 2}, "[1 2]"},
		{"nil", nil, "<no representation>"},
		{"panicking stringer", explosive{}, "<error>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeRepr(tc.in); got != tc.want {
				t.Errorf("SafeRepr(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSafeReprNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("SafeRepr must not propagate panics: %v", r)
		}
	}()
	_ = SafeRepr(explosive{})
}

func TestRingTail(t *testing.T) {
	r := newEventRing(3)
	if got := r.tail(); len(got) != 0 {
		t.Fatalf("empty ring tail = %v", got)
	}

	push := func(step uint64) {
		r.push(eventWithStep(step))
	}
	push(0)
	push(1)
	if got := steps(r.tail()); !equalU64(got, []uint64{0, 1}) {
		t.Errorf("partial ring tail = %v", got)
	}
	push(2)
	push(3)
	push(4)
	// Ёмкость 3: остаются только последние три события
	if got := steps(r.tail()); !equalU64(got, []uint64{2, 3, 4}) {
		t.Errorf("wrapped ring tail = %v", got)
	}
}
