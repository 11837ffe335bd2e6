package internal

import "fmt"

// PrintStatements renders statements as one s-expression per line,
// the form the driver's --ast flag dumps. Grounded on the teacher's
// reader.go stringVisitor, extended so no node kind is left as a stub.
func PrintStatements(statements []stmt) string {
	out := ""
	printer := astPrinter{}
	for _, st := range statements {
		out += fmt.Sprintf("%v\n", st.accept(printer))
	}
	return out
}

// PrintTreeFor is PrintStatements over the statements a RunSource call
// returned. After a lex or parse error RunSource returns none, so the
// result is empty; after a resolve error the parsed statements are
// still included.
func PrintTreeFor(result *RunResult) string {
	return PrintStatements(result.Statements)
}

type astPrinter struct{}

func (p astPrinter) visitExpressionStmt(s *expressionStmt) R {
	return fmt.Sprintf("%v", s.expression.accept(p))
}

func (p astPrinter) visitPrintStmt(s *printStmt) R {
	return fmt.Sprintf("(print %v)", s.expression.accept(p))
}

func (p astPrinter) visitVarStmt(s *varStmt) R {
	if s.initializer == nil {
		return fmt.Sprintf("(var %s)", s.name.Lexeme)
	}
	return fmt.Sprintf("(var %s %v)", s.name.Lexeme, s.initializer.accept(p))
}

func (p astPrinter) visitBlockStmt(s *blockStmt) R {
	out := "(block"
	for _, st := range s.statements {
		out += fmt.Sprintf(" %v", st.accept(p))
	}
	return out + ")"
}

func (p astPrinter) visitIfStmt(s *ifStmt) R {
	out := fmt.Sprintf("(if %v %v", s.condition.accept(p), s.thenBranch.accept(p))
	if s.elseBranch != nil {
		out += fmt.Sprintf(" %v", s.elseBranch.accept(p))
	}
	return out + ")"
}

func (p astPrinter) visitWhileStmt(s *whileStmt) R {
	return fmt.Sprintf("(while %v %v)", s.condition.accept(p), s.body.accept(p))
}

func (p astPrinter) visitFunctionStmt(s *functionStmt) R {
	out := "(fun " + s.name.Lexeme + " ("
	for i, param := range s.params {
		if i > 0 {
			out += " "
		}
		out += param.Lexeme
	}
	out += ")"
	for _, st := range s.body {
		out += fmt.Sprintf(" %v", st.accept(p))
	}
	return out + ")"
}

func (p astPrinter) visitReturnStmt(s *returnStmt) R {
	if s.value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %v)", s.value.accept(p))
}

func (p astPrinter) visitClassStmt(s *classStmt) R {
	out := "(class " + s.name.Lexeme
	if s.superclass != nil {
		out += " < " + s.superclass.name.Lexeme
	}
	for _, method := range s.methods {
		out += fmt.Sprintf(" %v", method.accept(p))
	}
	return out + ")"
}

func (p astPrinter) visitLiteralExpr(e *literalExpr) R {
	if e.value == nil {
		return "nil"
	}
	if s, ok := e.value.(string); ok {
		return "\"" + s + "\""
	}
	return fmt.Sprintf("%v", e.value)
}

func (p astPrinter) visitVariableExpr(e *variableExpr) R {
	return e.name.Lexeme
}

func (p astPrinter) visitAssignExpr(e *assignExpr) R {
	return fmt.Sprintf("(set %s %v)", e.name.Lexeme, e.value.accept(p))
}

func (p astPrinter) visitUnaryExpr(e *unaryExpr) R {
	return fmt.Sprintf("(%s %v)", e.operator.Lexeme, e.operand.accept(p))
}

func (p astPrinter) visitBinaryExpr(e *binaryExpr) R {
	return fmt.Sprintf("(%s %v %v)", e.operator.Lexeme, e.left.accept(p), e.right.accept(p))
}

func (p astPrinter) visitLogicalExpr(e *logicalExpr) R {
	return fmt.Sprintf("(%s %v %v)", e.operator.Lexeme, e.left.accept(p), e.right.accept(p))
}

func (p astPrinter) visitGroupingExpr(e *groupingExpr) R {
	return fmt.Sprintf("(group %v)", e.inner.accept(p))
}

func (p astPrinter) visitCallExpr(e *callExpr) R {
	out := fmt.Sprintf("(call %v", e.callee.accept(p))
	for _, arg := range e.args {
		out += fmt.Sprintf(" %v", arg.accept(p))
	}
	return out + ")"
}

func (p astPrinter) visitGetExpr(e *getExpr) R {
	return fmt.Sprintf("(get %v %s)", e.object.accept(p), e.name.Lexeme)
}

func (p astPrinter) visitSetExpr(e *setExpr) R {
	return fmt.Sprintf("(set-prop %v %s %v)", e.object.accept(p), e.name.Lexeme, e.value.accept(p))
}

func (p astPrinter) visitThisExpr(e *thisExpr) R {
	return "this"
}

func (p astPrinter) visitSuperExpr(e *superExpr) R {
	return fmt.Sprintf("(super %s)", e.method.Lexeme)
}
