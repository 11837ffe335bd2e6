package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// callable is any value invocable via a callExpr: user functions,
// bound methods, classes (as constructors), and native functions like
// clock. Named the way the teacher's function.go names its
// `callable` interface.
type callable interface {
	arity() int
	call(interp *Interpreter, arguments []interface{}) (interface{}, error)
}

// isTruthy implements spec.md §4.3: nil and false are falsey, every
// other value — including 0, "", and empty instances — is truthy.
func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements spec.md §4.3's equality rule: nil equals only
// nil, numbers/strings/booleans compare by value, everything else
// compares by reference (Go's == already does this for the pointer
// types callable/instance values are represented with).
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders value the way `print` does (spec.md §6): nil,
// true/false, numbers with a trimmed trailing ".0", raw strings,
// `<class name> instance`, `<class name>`, `<fn name>`, `<native fn>`.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(n float64) string {
	text := strconv.FormatFloat(n, 'f', -1, 64)
	if strings.HasSuffix(text, ".0") {
		text = strings.TrimSuffix(text, ".0")
	}
	return text
}
