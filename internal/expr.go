package internal

// R is the generic result type produced by walking an expression or
// statement tree. It stands in for the return value of every visitor
// method the way the teacher's reader.go uses it for its
// pretty-printer.
type R interface{}

// expr is any expression node: something that yields a value.
type expr interface {
	accept(exprVisitor) R
}

// exprVisitor is implemented once per tree-walking pass (resolver,
// interpreter, printer) and dispatched to via double-dispatch, since
// Go lacks pattern matching on sum types.
type exprVisitor interface {
	visitLiteralExpr(expr *literalExpr) R
	visitVariableExpr(expr *variableExpr) R
	visitAssignExpr(expr *assignExpr) R
	visitUnaryExpr(expr *unaryExpr) R
	visitBinaryExpr(expr *binaryExpr) R
	visitLogicalExpr(expr *logicalExpr) R
	visitGroupingExpr(expr *groupingExpr) R
	visitCallExpr(expr *callExpr) R
	visitGetExpr(expr *getExpr) R
	visitSetExpr(expr *setExpr) R
	visitThisExpr(expr *thisExpr) R
	visitSuperExpr(expr *superExpr) R
}

// literalExpr holds a compile-time constant: number, string, boolean,
// or nil.
type literalExpr struct {
	value interface{}
}

func (e *literalExpr) accept(v exprVisitor) R { return v.visitLiteralExpr(e) }

// variableExpr reads a variable named by a lexeme. The resolver keys
// its locals table on this node's pointer identity.
type variableExpr struct {
	name *Token
}

func (e *variableExpr) accept(v exprVisitor) R { return v.visitVariableExpr(e) }

// assignExpr writes value into the variable named by name.
type assignExpr struct {
	name  *Token
	value expr
}

func (e *assignExpr) accept(v exprVisitor) R { return v.visitAssignExpr(e) }

// unaryExpr applies a prefix operator (! or -) to operand.
type unaryExpr struct {
	operator *Token
	operand  expr
}

func (e *unaryExpr) accept(v exprVisitor) R { return v.visitUnaryExpr(e) }

// binaryExpr applies an infix operator to two operands.
type binaryExpr struct {
	left     expr
	operator *Token
	right    expr
}

func (e *binaryExpr) accept(v exprVisitor) R { return v.visitBinaryExpr(e) }

// logicalExpr is `and`/`or`; unlike binaryExpr it short-circuits.
type logicalExpr struct {
	left     expr
	operator *Token
	right    expr
}

func (e *logicalExpr) accept(v exprVisitor) R { return v.visitLogicalExpr(e) }

// groupingExpr is a parenthesized subexpression, kept as its own node
// so a pretty-printer can round-trip parentheses.
type groupingExpr struct {
	inner expr
}

func (e *groupingExpr) accept(v exprVisitor) R { return v.visitGroupingExpr(e) }

// callExpr invokes callee with arguments, in source order.
type callExpr struct {
	callee expr
	paren  *Token
	args   []expr
}

func (e *callExpr) accept(v exprVisitor) R { return v.visitCallExpr(e) }

// getExpr reads a property or method off an instance.
type getExpr struct {
	object expr
	name   *Token
}

func (e *getExpr) accept(v exprVisitor) R { return v.visitGetExpr(e) }

// setExpr writes a property on an instance.
type setExpr struct {
	object expr
	name   *Token
	value  expr
}

func (e *setExpr) accept(v exprVisitor) R { return v.visitSetExpr(e) }

// thisExpr resolves the receiver bound in the innermost method.
type thisExpr struct {
	keyword *Token
}

func (e *thisExpr) accept(v exprVisitor) R { return v.visitThisExpr(e) }

// superExpr resolves method on the enclosing class's superclass,
// bound to the current instance.
type superExpr struct {
	keyword *Token
	method  *Token
}

func (e *superExpr) accept(v exprVisitor) R { return v.visitSuperExpr(e) }
