package internal

import "fmt"

// loxFunction is a user-defined function or method value: a
// declaration paired with the environment captured at definition
// time. Grounded on the teacher's function.go/grotskyFunction.go
// closure+bind shape, generalized with the isInitializer flag spec.md
// §3/§4.3 requires for `init` methods.
type loxFunction struct {
	declaration   *functionStmt
	closure       *environment
	isInitializer bool
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

// call implements spec.md §4.3's "User function" call mechanics: a
// fresh environment parented at the closure, one binding per
// parameter, the body run as a block. A `return` unwinds via panic,
// recovered here exactly like the teacher's function.call.
func (f *loxFunction) call(interp *Interpreter, arguments []interface{}) (result interface{}, err error) {
	env := newEnvironment(f.closure)
	for i, param := range f.declaration.params {
		env.define(param.Lexeme, arguments[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				if f.isInitializer {
					result = f.closure.getAt(0, "this")
				} else {
					result = ret.value
				}
				return
			}
			panic(r)
		}
	}()

	err = interp.executeBlock(f.declaration.body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	return nil, nil
}

// bind produces a callable identical to f except its closure gains
// one environment binding `this` to instance — spec.md's "Bind
// (method)" operation, glossary and §4.3.
func (f *loxFunction) bind(instance *loxInstance) *loxFunction {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	return &loxFunction{
		declaration:   f.declaration,
		closure:       env,
		isInitializer: f.isInitializer,
	}
}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.Lexeme)
}

// returnSignal is the panic payload a returnStmt raises to unwind to
// the nearest enclosing call frame (spec.md §5), never a bare block.
type returnSignal struct {
	value interface{}
}

// nativeFunction wraps a Go closure as a callable, used for the
// built-in clock (spec.md §4.3) and, if the driver wires it, for
// diagnostic helpers exposed to running programs.
type nativeFunction struct {
	name       string
	arityValue int
	fn         func(interp *Interpreter, arguments []interface{}) (interface{}, error)
}

func (n *nativeFunction) arity() int { return n.arityValue }

func (n *nativeFunction) call(interp *Interpreter, arguments []interface{}) (interface{}, error) {
	return n.fn(interp, arguments)
}

func (n *nativeFunction) String() string {
	return "<native fn>"
}
