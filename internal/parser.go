package internal

// parser is a recursive-descent parser over spec.md §4.1's grammar,
// grounded on the teacher's match/check/consume/synchronize structure
// but built against the brace-and-semicolon surface syntax rather
// than grotsky's newline-terminated one.
type parser struct {
	tokens  []Token
	current int
	state   *interpreterState
}

func newParser(tokens []Token, state *interpreterState) *parser {
	return &parser{tokens: tokens, state: state}
}

// parseError unwinds parsing of the current statement back to
// parseDeclaration's recover, which resynchronizes at the next statement
// boundary (spec.md §4.1's "Error recovery").
type parseError struct{}

func (p *parser) parse() []stmt {
	var statements []stmt
	for !p.isAtEnd() {
		if s := p.parseDeclaration(); s != nil {
			statements = append(statements, s)
		}
	}
	return statements
}

func (p *parser) parseDeclaration() (result stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				result = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() stmt {
	if p.match(CLASS) {
		return p.classDeclaration()
	}
	if p.match(FUN) {
		return p.function("function")
	}
	if p.match(VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) classDeclaration() stmt {
	name := p.consume(IDENTIFIER, errExpectClassName)

	var superclass *variableExpr
	if p.match(LESS) {
		p.consume(IDENTIFIER, errExpectClassName)
		superclass = &variableExpr{name: p.previous()}
	}

	p.consume(LEFT_BRACE, errExpectLeftBrace)

	var methods []*functionStmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(RIGHT_BRACE, errExpectRightBrace)

	return &classStmt{name: name, superclass: superclass, methods: methods}
}

func (p *parser) function(kind string) *functionStmt {
	nameErr := errExpectFunctionName
	if kind == "method" {
		nameErr = errExpectMethodName
	}
	name := p.consume(IDENTIFIER, nameErr)

	p.consume(LEFT_PAREN, errExpectLeftParen)
	var params []*Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= 255 {
				p.state.parseErrorAt(p.peek(), errTooManyParameters)
			}
			params = append(params, p.consume(IDENTIFIER, errExpectParamName))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, errExpectUnclosedParen)

	p.consume(LEFT_BRACE, errExpectLeftBrace)
	body := p.block()

	return &functionStmt{name: name, params: params, body: body}
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(IDENTIFIER, errExpectVarName)

	var initializer expr
	if p.match(EQUAL) {
		initializer = p.expression()
	}

	p.consume(SEMICOLON, errExpectSemicolon)
	return &varStmt{name: name, initializer: initializer}
}

func (p *parser) statement() stmt {
	if p.match(FOR) {
		return p.forStatement()
	}
	if p.match(IF) {
		return p.ifStatement()
	}
	if p.match(PRINT) {
		return p.printStatement()
	}
	if p.match(RETURN) {
		return p.returnStatement()
	}
	if p.match(WHILE) {
		return p.whileStatement()
	}
	if p.match(LEFT_BRACE) {
		return &blockStmt{statements: p.block()}
	}
	return p.expressionStatement()
}

// forStatement desugars `for (init; cond; incr) body` into a
// blockStmt wrapping a whileStmt, exactly per spec.md §4.1: no
// dedicated for-loop AST node exists.
func (p *parser) forStatement() stmt {
	p.consume(LEFT_PAREN, errExpectLeftParen)

	var initializer stmt
	if p.match(SEMICOLON) {
		initializer = nil
	} else if p.match(VAR) {
		initializer = p.varDeclaration()
	} else {
		initializer = p.expressionStatement()
	}

	var condition expr
	if !p.check(SEMICOLON) {
		condition = p.expression()
	}
	p.consume(SEMICOLON, errExpectSemicolon)

	var increment expr
	if !p.check(RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(RIGHT_PAREN, errExpectUnclosedParen)

	body := p.statement()

	if increment != nil {
		body = &blockStmt{statements: []stmt{body, &expressionStmt{expression: increment}}}
	}

	if condition == nil {
		condition = &literalExpr{value: true}
	}
	body = &whileStmt{condition: condition, body: body}

	if initializer != nil {
		body = &blockStmt{statements: []stmt{initializer, body}}
	}

	return body
}

func (p *parser) ifStatement() stmt {
	p.consume(LEFT_PAREN, errExpectLeftParen)
	condition := p.expression()
	p.consume(RIGHT_PAREN, errExpectUnclosedParen)

	thenBranch := p.statement()
	var elseBranch stmt
	if p.match(ELSE) {
		elseBranch = p.statement()
	}

	return &ifStmt{condition: condition, thenBranch: thenBranch, elseBranch: elseBranch}
}

func (p *parser) printStatement() stmt {
	value := p.expression()
	p.consume(SEMICOLON, errExpectSemicolon)
	return &printStmt{expression: value}
}

func (p *parser) returnStatement() stmt {
	keyword := p.previous()
	var value expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, errExpectSemicolon)
	return &returnStmt{keyword: keyword, value: value}
}

func (p *parser) whileStatement() stmt {
	p.consume(LEFT_PAREN, errExpectLeftParen)
	condition := p.expression()
	p.consume(RIGHT_PAREN, errExpectUnclosedParen)
	body := p.statement()
	return &whileStmt{condition: condition, body: body}
}

func (p *parser) block() []stmt {
	var statements []stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			statements = append(statements, s)
		}
	}
	p.consume(RIGHT_BRACE, errExpectRightBrace)
	return statements
}

func (p *parser) expressionStatement() stmt {
	value := p.expression()
	p.consume(SEMICOLON, errExpectSemicolon)
	return &expressionStmt{expression: value}
}

func (p *parser) expression() expr {
	return p.assignment()
}

// assignment validates its left-hand side is an assignable target
// (spec.md §4.1's "Assignment target validation"): a non-fatal
// diagnostic on failure, no panic, so the rest of the statement still
// parses.
func (p *parser) assignment() expr {
	e := p.or()

	if p.match(EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := e.(*variableExpr); ok {
			return &assignExpr{name: v.name, value: value}
		}
		if g, ok := e.(*getExpr); ok {
			return &setExpr{object: g.object, name: g.name, value: value}
		}
		p.state.parseErrorAt(equals, errInvalidAssignTarget)
	}

	return e
}

func (p *parser) or() expr {
	e := p.and()
	for p.match(OR) {
		operator := p.previous()
		right := p.and()
		e = &logicalExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) and() expr {
	e := p.equality()
	for p.match(AND) {
		operator := p.previous()
		right := p.equality()
		e = &logicalExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) equality() expr {
	e := p.comparison()
	for p.match(BANG_EQUAL, EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		e = &binaryExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) comparison() expr {
	e := p.term()
	for p.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		e = &binaryExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) term() expr {
	e := p.factor()
	for p.match(MINUS, PLUS) {
		operator := p.previous()
		right := p.factor()
		e = &binaryExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) factor() expr {
	e := p.unary()
	for p.match(SLASH, STAR) {
		operator := p.previous()
		right := p.unary()
		e = &binaryExpr{left: e, operator: operator, right: right}
	}
	return e
}

func (p *parser) unary() expr {
	if p.match(BANG, MINUS) {
		operator := p.previous()
		operand := p.unary()
		return &unaryExpr{operator: operator, operand: operand}
	}
	return p.call()
}

func (p *parser) call() expr {
	e := p.primary()

	for {
		if p.match(LEFT_PAREN) {
			e = p.finishCall(e)
		} else if p.match(DOT) {
			name := p.consume(IDENTIFIER, errExpectPropertyName)
			e = &getExpr{object: e, name: name}
		} else {
			break
		}
	}

	return e
}

func (p *parser) finishCall(callee expr) expr {
	var args []expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.state.parseErrorAt(p.peek(), errTooManyArguments)
			}
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}

	paren := p.consume(RIGHT_PAREN, errExpectUnclosedParen)
	return &callExpr{callee: callee, paren: paren, args: args}
}

func (p *parser) primary() expr {
	switch {
	case p.match(FALSE):
		return &literalExpr{value: false}
	case p.match(TRUE):
		return &literalExpr{value: true}
	case p.match(NIL):
		return &literalExpr{value: nil}
	case p.match(NUMBER, STRING):
		return &literalExpr{value: p.previous().Literal}
	case p.match(SUPER):
		keyword := p.previous()
		p.consume(DOT, errExpectSuperDot)
		method := p.consume(IDENTIFIER, errExpectSuperMethod)
		return &superExpr{keyword: keyword, method: method}
	case p.match(THIS):
		return &thisExpr{keyword: p.previous()}
	case p.match(IDENTIFIER):
		return &variableExpr{name: p.previous()}
	case p.match(LEFT_PAREN):
		e := p.expression()
		p.consume(RIGHT_PAREN, errExpectUnclosedParen)
		return &groupingExpr{inner: e}
	}

	panic(p.error(p.peek(), errExpectExpression))
}

// Token-stream primitives, grounded on the teacher's match/check/
// consume/advance/synchronize shape.

func (p *parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(t TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *parser) advance() *Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *parser) peek() *Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *Token {
	return &p.tokens[p.current-1]
}

func (p *parser) consume(t TokenType, err error) *Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), err))
}

func (p *parser) error(tok *Token, err error) parseError {
	p.state.parseErrorAt(tok, err)
	return parseError{}
}

// synchronize discards tokens until it reaches a statement boundary,
// so one syntax error is reported per bad statement instead of
// cascading (spec.md §4.1).
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}

		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}

		p.advance()
	}
}
