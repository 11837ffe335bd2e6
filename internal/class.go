package internal

// loxClass is a class value: a name, an optional superclass, and its
// own method table. Grounded on the teacher's grotskyClass.go,
// dropping staticMethods (not part of spec.md's class model) and
// replacing its TODO'd error paths with proper *runtimeError returns.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

// findMethod walks the inheritance chain (spec.md §3's single-
// inheritance model), own methods shadowing the superclass's.
func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

// call constructs a new instance and, if the class defines init,
// invokes it bound to that instance before returning it (spec.md
// §4.3's "Class call" operation).
func (c *loxClass) call(interp *Interpreter, arguments []interface{}) (interface{}, error) {
	instance := newLoxInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).call(interp, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *loxClass) String() string {
	return c.name
}
