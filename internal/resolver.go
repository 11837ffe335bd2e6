package internal

import "github.com/sirupsen/logrus"

// resolver is the static pass that runs between parsing and
// evaluation, computing how many enclosing scopes separate each
// variable reference from its declaration. Ported directly from
// original_source's Resolver.java, generalized to Go's lack of enums
// via small int-typed consts and to report through interpreterState
// instead of a static Lox.error call.
type resolver struct {
	state *interpreterState
	log   *logrus.Entry

	scopes []map[string]bool

	currentFunction functionType
	currentClass    classType
}

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

func newResolver(state *interpreterState) *resolver {
	return &resolver{state: state, log: state.log.WithField("stage", "resolver")}
}

func (r *resolver) resolveStmts(statements []stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	s.accept(r)
}

func (r *resolver) resolveExpr(e expr) {
	e.accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
	r.log.WithField("depth", len(r.scopes)).Debug("enter scope")
}

func (r *resolver) endScope() {
	r.log.WithField("depth", len(r.scopes)).Debug("exit scope")
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope bound to false, marking it
// "declared but not yet ready to read" (spec.md's own-initializer
// invariant), and flags a redeclaration in the same scope.
func (r *resolver) declare(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.state.resolveErrorAt(name, errAlreadyDeclared)
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

// resolveLocal records the hop count for expr in state.locals if name
// resolves to an enclosing scope; an unresolved name is left for the
// evaluator to treat as global (spec.md §4.4).
func (r *resolver) resolveLocal(e expr, name *Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.state.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveFunction(fn *functionStmt, ftype functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = ftype

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// Statement visitor.

func (r *resolver) visitBlockStmt(s *blockStmt) R {
	r.beginScope()
	r.resolveStmts(s.statements)
	r.endScope()
	return nil
}

func (r *resolver) visitClassStmt(s *classStmt) R {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(s.name)
	r.define(s.name)

	if s.superclass != nil && s.name.Lexeme == s.superclass.name.Lexeme {
		r.state.resolveErrorAt(s.superclass.name, errClassInheritsFromSelf)
	}

	if s.superclass != nil {
		r.currentClass = classTypeSubclass
		r.resolveExpr(s.superclass)
	}

	if s.superclass != nil {
		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range s.methods {
		declaration := functionTypeMethod
		if method.name.Lexeme == "init" {
			declaration = functionTypeInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()

	if s.superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *resolver) visitExpressionStmt(s *expressionStmt) R {
	r.resolveExpr(s.expression)
	return nil
}

func (r *resolver) visitFunctionStmt(s *functionStmt) R {
	r.declare(s.name)
	r.define(s.name)
	r.resolveFunction(s, functionTypeFunction)
	return nil
}

func (r *resolver) visitIfStmt(s *ifStmt) R {
	r.resolveExpr(s.condition)
	r.resolveStmt(s.thenBranch)
	if s.elseBranch != nil {
		r.resolveStmt(s.elseBranch)
	}
	return nil
}

func (r *resolver) visitPrintStmt(s *printStmt) R {
	r.resolveExpr(s.expression)
	return nil
}

func (r *resolver) visitReturnStmt(s *returnStmt) R {
	if r.currentFunction == functionTypeNone {
		r.state.resolveErrorAt(s.keyword, errReturnFromTopLevel)
	}
	if s.value != nil {
		if r.currentFunction == functionTypeInitializer {
			r.state.resolveErrorAt(s.keyword, errReturnFromInitializer)
		}
		r.resolveExpr(s.value)
	}
	return nil
}

func (r *resolver) visitVarStmt(s *varStmt) R {
	r.declare(s.name)
	if s.initializer != nil {
		r.resolveExpr(s.initializer)
	}
	r.define(s.name)
	return nil
}

func (r *resolver) visitWhileStmt(s *whileStmt) R {
	r.resolveExpr(s.condition)
	r.resolveStmt(s.body)
	return nil
}

// Expression visitor.

func (r *resolver) visitAssignExpr(e *assignExpr) R {
	r.resolveExpr(e.value)
	r.resolveLocal(e, e.name)
	return nil
}

func (r *resolver) visitBinaryExpr(e *binaryExpr) R {
	r.resolveExpr(e.left)
	r.resolveExpr(e.right)
	return nil
}

func (r *resolver) visitCallExpr(e *callExpr) R {
	r.resolveExpr(e.callee)
	for _, arg := range e.args {
		r.resolveExpr(arg)
	}
	return nil
}

func (r *resolver) visitGetExpr(e *getExpr) R {
	r.resolveExpr(e.object)
	return nil
}

func (r *resolver) visitGroupingExpr(e *groupingExpr) R {
	r.resolveExpr(e.inner)
	return nil
}

func (r *resolver) visitLiteralExpr(e *literalExpr) R {
	return nil
}

func (r *resolver) visitLogicalExpr(e *logicalExpr) R {
	r.resolveExpr(e.left)
	r.resolveExpr(e.right)
	return nil
}

func (r *resolver) visitSetExpr(e *setExpr) R {
	r.resolveExpr(e.value)
	r.resolveExpr(e.object)
	return nil
}

func (r *resolver) visitSuperExpr(e *superExpr) R {
	if r.currentClass == classTypeNone {
		r.state.resolveErrorAt(e.keyword, errSuperOutsideClass)
	} else if r.currentClass != classTypeSubclass {
		r.state.resolveErrorAt(e.keyword, errSuperNoSuperclass)
	}
	r.resolveLocal(e, e.keyword)
	return nil
}

func (r *resolver) visitThisExpr(e *thisExpr) R {
	if r.currentClass == classTypeNone {
		r.state.resolveErrorAt(e.keyword, errThisOutsideClass)
		return nil
	}
	r.resolveLocal(e, e.keyword)
	return nil
}

func (r *resolver) visitUnaryExpr(e *unaryExpr) R {
	r.resolveExpr(e.operand)
	return nil
}

func (r *resolver) visitVariableExpr(e *variableExpr) R {
	if len(r.scopes) > 0 {
		if ready, ok := r.peekScope()[e.name.Lexeme]; ok && !ready {
			r.state.resolveErrorAt(e.name, errReadOwnInitializer)
		}
	}
	r.resolveLocal(e, e.name)
	return nil
}
