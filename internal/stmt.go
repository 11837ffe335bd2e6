package internal

// stmt is any statement node: something that has an effect but does
// not itself yield a value.
type stmt interface {
	accept(stmtVisitor) R
}

type stmtVisitor interface {
	visitExpressionStmt(stmt *expressionStmt) R
	visitPrintStmt(stmt *printStmt) R
	visitVarStmt(stmt *varStmt) R
	visitBlockStmt(stmt *blockStmt) R
	visitIfStmt(stmt *ifStmt) R
	visitWhileStmt(stmt *whileStmt) R
	visitFunctionStmt(stmt *functionStmt) R
	visitReturnStmt(stmt *returnStmt) R
	visitClassStmt(stmt *classStmt) R
}

// expressionStmt evaluates expr for effect and discards the value.
type expressionStmt struct {
	expression expr
}

func (s *expressionStmt) accept(v stmtVisitor) R { return v.visitExpressionStmt(s) }

// printStmt evaluates expr, stringifies it, and writes a line.
type printStmt struct {
	expression expr
}

func (s *printStmt) accept(v stmtVisitor) R { return v.visitPrintStmt(s) }

// varStmt declares name in the current environment, optionally
// running initializer first.
type varStmt struct {
	name        *Token
	initializer expr
}

func (s *varStmt) accept(v stmtVisitor) R { return v.visitVarStmt(s) }

// blockStmt runs stmts under a fresh child environment.
type blockStmt struct {
	statements []stmt
}

func (s *blockStmt) accept(v stmtVisitor) R { return v.visitBlockStmt(s) }

// ifStmt is the classic conditional; elseBranch is nil when absent.
type ifStmt struct {
	condition  expr
	thenBranch stmt
	elseBranch stmt
}

func (s *ifStmt) accept(v stmtVisitor) R { return v.visitIfStmt(s) }

// whileStmt is the classic pretest loop. `for` is desugared into this
// by the parser (see parser.go's forStatement).
type whileStmt struct {
	condition expr
	body      stmt
}

func (s *whileStmt) accept(v stmtVisitor) R { return v.visitWhileStmt(s) }

// functionStmt declares a named function; it is also embedded inside
// classStmt.methods for method declarations.
type functionStmt struct {
	name   *Token
	params []*Token
	body   []stmt
}

func (s *functionStmt) accept(v stmtVisitor) R { return v.visitFunctionStmt(s) }

// returnStmt unwinds the nearest enclosing call frame with value (nil
// when value is nil).
type returnStmt struct {
	keyword *Token
	value   expr
}

func (s *returnStmt) accept(v stmtVisitor) R { return v.visitReturnStmt(s) }

// classStmt declares a class, its optional superclass, and its
// methods in source order.
type classStmt struct {
	name       *Token
	superclass *variableExpr
	methods    []*functionStmt
}

func (s *classStmt) accept(v stmtVisitor) R { return v.visitClassStmt(s) }
