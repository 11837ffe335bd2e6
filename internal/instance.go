package internal

import "github.com/iancoleman/orderedmap"

// loxInstance is a runtime object: a class pointer plus its own
// fields. Grounded on the teacher's grotskyObject.go, generalized to
// return errors instead of leaving TODOs, and to keep fields in an
// orderedmap, which preserves assignment order rather than Go's
// randomized map order. Nothing in the interpreter enumerates or dumps
// an instance's fields; --ast and --trace output never include them.
type loxInstance struct {
	class  *loxClass
	fields *orderedmap.OrderedMap
}

func newLoxInstance(class *loxClass) *loxInstance {
	return &loxInstance{
		class:  class,
		fields: orderedmap.New(),
	}
}

// get implements spec.md §4.3's Get semantics: an instance's own
// fields shadow its class's methods, and a miss on both is a runtime
// error naming the property.
func (o *loxInstance) get(name *Token) (interface{}, error) {
	if value, ok := o.fields.Get(name.Lexeme); ok {
		return value, nil
	}
	if method := o.class.findMethod(name.Lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, &runtimeError{token: name, message: errUndefinedProperty(name.Lexeme).Error()}
}

// set always writes an instance field, creating it if absent; classes
// have no fixed field list (spec.md §3).
func (o *loxInstance) set(name *Token, value interface{}) {
	o.fields.Set(name.Lexeme, value)
}

func (o *loxInstance) String() string {
	return o.class.name + " instance"
}
