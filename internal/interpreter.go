package internal

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Interpreter walks the resolved syntax tree and executes it. It
// mirrors the shape of the teacher's exec.go (a visitor holding
// globals/env plus a state pointer) but threads runtime errors back
// as ordinary Go errors instead of always panicking; panic/recover is
// reserved for the one truly non-local jump the language has: return
// (spec.md §5).
type Interpreter struct {
	state   *interpreterState
	globals *environment
	env     *environment
	log     *logrus.Entry
}

// NewInterpreter builds an interpreter with the standard library
// (spec.md §4.3's "clock") already bound in the global scope.
func NewInterpreter(state *interpreterState) *Interpreter {
	globals := newEnvironment(nil)
	globals.define("clock", &nativeFunction{
		name:       "clock",
		arityValue: 0,
		fn: func(interp *Interpreter, arguments []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})

	return &Interpreter{
		state:   state,
		globals: globals,
		env:     globals,
		log:     state.log.WithField("stage", "evaluator"),
	}
}

// Run executes every top-level statement in order, stopping and
// reporting on the first runtime error (spec.md §5's "runtime errors
// abort the whole program").
func (in *Interpreter) Run(statements []stmt) {
	for _, s := range statements {
		if err := in.execute(s); err != nil {
			if rerr, ok := err.(*runtimeError); ok {
				in.state.reportRuntimeError(rerr)
			}
			return
		}
	}
}

func (in *Interpreter) execute(s stmt) error {
	in.log.Debugf("exec %T", s)
	result := s.accept(in)
	if err, ok := result.(error); ok {
		return err
	}
	return nil
}

func (in *Interpreter) evaluate(e expr) (interface{}, error) {
	result := e.accept(in)
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result, nil
}

// executeBlock runs statements under env, restoring the previous
// environment on the way out even if a statement returns an error or
// a return panics through (spec.md §3's block-scoping rule).
func (in *Interpreter) executeBlock(statements []stmt, env *environment) error {
	previous := in.env
	defer func() { in.env = previous }()
	in.env = env

	for _, s := range statements {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable resolves name using the resolver's recorded hop
// count when present, falling back to a dynamic global lookup for
// names the resolver left unbound (spec.md §4.4).
func (in *Interpreter) lookUpVariable(name *Token, e expr) (interface{}, error) {
	if distance, ok := in.state.locals[e]; ok {
		return in.env.getAt(distance, name.Lexeme), nil
	}
	return in.globals.get(name)
}

// Statement visitor.

func (in *Interpreter) visitExpressionStmt(s *expressionStmt) R {
	_, err := in.evaluate(s.expression)
	return err
}

func (in *Interpreter) visitPrintStmt(s *printStmt) R {
	value, err := in.evaluate(s.expression)
	if err != nil {
		return err
	}
	in.state.print(stringify(value))
	return nil
}

func (in *Interpreter) visitVarStmt(s *varStmt) R {
	var value interface{}
	if s.initializer != nil {
		v, err := in.evaluate(s.initializer)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.define(s.name.Lexeme, value)
	return nil
}

func (in *Interpreter) visitBlockStmt(s *blockStmt) R {
	return in.executeBlock(s.statements, newEnvironment(in.env))
}

func (in *Interpreter) visitIfStmt(s *ifStmt) R {
	cond, err := in.evaluate(s.condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return in.execute(s.thenBranch)
	}
	if s.elseBranch != nil {
		return in.execute(s.elseBranch)
	}
	return nil
}

func (in *Interpreter) visitWhileStmt(s *whileStmt) R {
	for {
		cond, err := in.evaluate(s.condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := in.execute(s.body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) visitFunctionStmt(s *functionStmt) R {
	fn := &loxFunction{declaration: s, closure: in.env, isInitializer: false}
	in.env.define(s.name.Lexeme, fn)
	return nil
}

// visitReturnStmt raises a returnSignal panic caught by the nearest
// enclosing loxFunction.call — spec.md §5's only sanctioned use of
// non-local control flow.
func (in *Interpreter) visitReturnStmt(s *returnStmt) R {
	var value interface{}
	if s.value != nil {
		v, err := in.evaluate(s.value)
		if err != nil {
			return err
		}
		value = v
	}
	panic(returnSignal{value: value})
}

func (in *Interpreter) visitClassStmt(s *classStmt) R {
	var superclass *loxClass
	if s.superclass != nil {
		value, err := in.evaluate(s.superclass)
		if err != nil {
			return err
		}
		sc, ok := value.(*loxClass)
		if !ok {
			return &runtimeError{token: s.superclass.name, message: errSuperclassMustBeClass.Error()}
		}
		superclass = sc
	}

	in.env.define(s.name.Lexeme, nil)

	if s.superclass != nil {
		in.env = newEnvironment(in.env)
		in.env.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(s.methods))
	for _, method := range s.methods {
		methods[method.name.Lexeme] = &loxFunction{
			declaration:   method,
			closure:       in.env,
			isInitializer: method.name.Lexeme == "init",
		}
	}

	class := &loxClass{name: s.name.Lexeme, superclass: superclass, methods: methods}

	if s.superclass != nil {
		in.env = in.env.enclosing
	}

	return in.env.assign(s.name, class)
}

// Expression visitor.

func (in *Interpreter) visitLiteralExpr(e *literalExpr) R {
	return e.value
}

func (in *Interpreter) visitGroupingExpr(e *groupingExpr) R {
	value, err := in.evaluate(e.inner)
	if err != nil {
		return err
	}
	return value
}

func (in *Interpreter) visitUnaryExpr(e *unaryExpr) R {
	right, err := in.evaluate(e.operand)
	if err != nil {
		return err
	}

	switch e.operator.Type {
	case BANG:
		return !isTruthy(right)
	case MINUS:
		num, ok := right.(float64)
		if !ok {
			return &runtimeError{token: e.operator, message: errOperandMustBeNumber.Error()}
		}
		return -num
	}
	return nil
}

func (in *Interpreter) visitBinaryExpr(e *binaryExpr) R {
	left, err := in.evaluate(e.left)
	if err != nil {
		return err
	}
	right, err := in.evaluate(e.right)
	if err != nil {
		return err
	}

	switch e.operator.Type {
	case GREATER, GREATER_EQUAL, LESS, LESS_EQUAL, MINUS, SLASH, STAR:
		leftNum, rightNum, ok := bothNumbers(left, right)
		if !ok {
			return &runtimeError{token: e.operator, message: errOperandsMustBeNumbers.Error()}
		}
		switch e.operator.Type {
		case GREATER:
			return leftNum > rightNum
		case GREATER_EQUAL:
			return leftNum >= rightNum
		case LESS:
			return leftNum < rightNum
		case LESS_EQUAL:
			return leftNum <= rightNum
		case MINUS:
			return leftNum - rightNum
		case SLASH:
			return leftNum / rightNum
		case STAR:
			return leftNum * rightNum
		}
	case PLUS:
		if leftNum, rightNum, ok := bothNumbers(left, right); ok {
			return leftNum + rightNum
		}
		if leftStr, rightStr, ok := bothStrings(left, right); ok {
			return leftStr + rightStr
		}
		return &runtimeError{token: e.operator, message: errOperandsMustBeNumbersOrStrings.Error()}
	case BANG_EQUAL:
		return !isEqual(left, right)
	case EQUAL_EQUAL:
		return isEqual(left, right)
	}
	return nil
}

func bothNumbers(a, b interface{}) (float64, float64, bool) {
	an, ok := a.(float64)
	if !ok {
		return 0, 0, false
	}
	bn, ok := b.(float64)
	if !ok {
		return 0, 0, false
	}
	return an, bn, true
}

func bothStrings(a, b interface{}) (string, string, bool) {
	as, ok := a.(string)
	if !ok {
		return "", "", false
	}
	bs, ok := b.(string)
	if !ok {
		return "", "", false
	}
	return as, bs, true
}

func (in *Interpreter) visitLogicalExpr(e *logicalExpr) R {
	left, err := in.evaluate(e.left)
	if err != nil {
		return err
	}

	if e.operator.Type == OR {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}

	return e.right.accept(in)
}

func (in *Interpreter) visitCallExpr(e *callExpr) R {
	callee, err := in.evaluate(e.callee)
	if err != nil {
		return err
	}

	arguments := make([]interface{}, len(e.args))
	for i, arg := range e.args {
		v, err := in.evaluate(arg)
		if err != nil {
			return err
		}
		arguments[i] = v
	}

	fn, ok := callee.(callable)
	if !ok {
		return &runtimeError{token: e.paren, message: errOnlyCallCallables.Error()}
	}

	if len(arguments) != fn.arity() {
		return &runtimeError{token: e.paren, message: errArity(fn.arity(), len(arguments)).Error()}
	}

	result, err := fn.call(in, arguments)
	if err != nil {
		return err
	}
	return result
}

func (in *Interpreter) visitGetExpr(e *getExpr) R {
	object, err := in.evaluate(e.object)
	if err != nil {
		return err
	}

	instance, ok := object.(*loxInstance)
	if !ok {
		return &runtimeError{token: e.name, message: errOnlyInstancesHaveProperties.Error()}
	}

	value, err := instance.get(e.name)
	if err != nil {
		return err
	}
	return value
}

func (in *Interpreter) visitSetExpr(e *setExpr) R {
	object, err := in.evaluate(e.object)
	if err != nil {
		return err
	}

	instance, ok := object.(*loxInstance)
	if !ok {
		return &runtimeError{token: e.name, message: errOnlyInstancesHaveFields.Error()}
	}

	value, err := in.evaluate(e.value)
	if err != nil {
		return err
	}

	instance.set(e.name, value)
	return value
}

func (in *Interpreter) visitThisExpr(e *thisExpr) R {
	value, err := in.lookUpVariable(e.keyword, e)
	if err != nil {
		return err
	}
	return value
}

// visitSuperExpr implements spec.md §4.3's super-lookup trick: super
// is stored one hop farther out than this, so the method is found on
// the superclass but bound to the current instance, which lives at
// distance-1.
func (in *Interpreter) visitSuperExpr(e *superExpr) R {
	distance, ok := in.state.locals[e]
	if !ok {
		return &runtimeError{token: e.keyword, message: errSuperOutsideClass.Error()}
	}

	superclass := in.env.getAt(distance, "super").(*loxClass)
	instance := in.env.getAt(distance-1, "this").(*loxInstance)

	method := superclass.findMethod(e.method.Lexeme)
	if method == nil {
		return &runtimeError{token: e.method, message: errUndefinedProperty(e.method.Lexeme).Error()}
	}

	return method.bind(instance)
}

func (in *Interpreter) visitVariableExpr(e *variableExpr) R {
	value, err := in.lookUpVariable(e.name, e)
	if err != nil {
		return err
	}
	return value
}

func (in *Interpreter) visitAssignExpr(e *assignExpr) R {
	value, err := in.evaluate(e.value)
	if err != nil {
		return err
	}

	if distance, ok := in.state.locals[e]; ok {
		in.env.assignAt(distance, e.name, value)
	} else if err := in.globals.assign(e.name, value); err != nil {
		return err
	}

	return value
}
