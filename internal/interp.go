package internal

import "github.com/sirupsen/logrus"

// RunResult reports how a run of RunSource ended, so the driver can
// choose an exit code the way spec.md §6 requires (65 for a static
// error, 70 for a runtime error, 0 otherwise).
type RunResult struct {
	HadError        bool
	HadRuntimeError bool
	Statements      []stmt
}

// RunOptions configures one interpreter run. Grounded on the
// teacher's RunSourceWithPrinter, split into an options struct since
// spec.md's CLI has more independent knobs (trace logging, color,
// ast dump) than the teacher's single-printer parameter.
type RunOptions struct {
	Printer      IPrinter
	Logger       *logrus.Logger
	ColorEnabled bool

	// REPL enables the interactive convenience described in
	// SPEC_FULL.md §12: a source unit that parses to exactly one bare
	// expression statement is treated as if it were `print <expr>;`.
	REPL bool
}

// RunSource lexes, parses, resolves, and evaluates source in a fresh
// environment, exactly the teacher's RunSourceWithPrinter pipeline
// with a resolver pass inserted before evaluation (spec.md §4).
func RunSource(source string, opts RunOptions) *RunResult {
	printer := opts.Printer
	if printer == nil {
		printer = stdPrinter{}
	}

	state := newInterpreterState(source, printer, opts.Logger, opts.ColorEnabled)

	lex := newLexer(source, state)
	tokens := lex.scan()
	state.tokens = tokens

	if state.hadStaticError() {
		return &RunResult{HadError: true}
	}

	p := newParser(tokens, state)
	statements := p.parse()

	if opts.REPL && len(statements) == 1 {
		if es, ok := statements[0].(*expressionStmt); ok {
			statements[0] = &printStmt{expression: es.expression}
		}
	}

	state.stmts = statements

	if state.hadStaticError() {
		return &RunResult{HadError: true}
	}

	res := newResolver(state)
	res.resolveStmts(statements)

	if state.hadStaticError() {
		return &RunResult{HadError: true, Statements: statements}
	}

	interp := NewInterpreter(state)
	interp.Run(statements)

	return &RunResult{
		HadError:        state.hadStaticError(),
		HadRuntimeError: state.hadRuntimeError,
		Statements:      statements,
	}
}
