package writer

import "fmt"

// SafeRepr converts a captured value to its trace string. It returns a
// string unconditionally: a panicking String method (or any other panic
// during formatting) yields "<error>", and a value with no usable
// representation yields "<no representation>". Emission must never fail
// because of value capture.
func SafeRepr(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = "<error>"
		}
	}()
	if v == nil {
		return "<no representation>"
	}
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprintf("%v", v)
}
