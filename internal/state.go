package internal

import (
	"fmt"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"
)

// IPrinter is the sink `print` statements and the REPL's echoed
// values write to. Splitting it out of interpreterState (rather than
// calling fmt.Println directly) is the teacher's pattern in
// internal/interp.go's RunSourceWithPrinter, and lets tests capture
// output without touching os.Stdout.
type IPrinter interface {
	Println(a ...interface{}) (int, error)
}

type stdPrinter struct{}

func (stdPrinter) Println(a ...interface{}) (int, error) {
	return fmt.Println(a...)
}

// interpreterState is the state shared by one run of the pipeline:
// lexer, parser, resolver, and interpreter all hold a pointer to the
// same instance. It plays the role of the teacher's
// internal/state.go interpreterState, generalized to also carry the
// resolver's locals side table (spec.md §4.4) and a logger.
type interpreterState struct {
	source string

	tokens []Token
	stmts  []stmt

	// locals is the sole channel from resolver to evaluator: for
	// every Variable/Assign/This/Super expression the resolver
	// managed to bind lexically, it records the hop count here, keyed
	// by that expression node's identity (spec.md §4.4).
	locals map[expr]int

	hadError        bool
	hadRuntimeError bool

	printer IPrinter
	stderr  *os.File

	log *logrus.Entry

	// colorEnabled mirrors gommon's global color toggle so the driver
	// can flip it per invocation without a data race between runs.
	colorEnabled bool
}

func newInterpreterState(source string, printer IPrinter, logger *logrus.Logger, colorEnabled bool) *interpreterState {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &interpreterState{
		source:       source,
		locals:       make(map[expr]int),
		printer:      printer,
		stderr:       os.Stderr,
		log:          logger.WithField("component", "interpreter"),
		colorEnabled: colorEnabled,
	}
}

func (s *interpreterState) hadStaticError() bool {
	return s.hadError
}

func (s *interpreterState) lexError(err error, line int) {
	s.hadError = true
	s.report(formatStaticDiagnostic(&Token{Type: EOF, Line: line}, err.Error()))
}

func (s *interpreterState) parseErrorAt(tok *Token, err error) {
	s.hadError = true
	s.report((&staticError{token: tok, message: err.Error()}).Error())
	s.log.WithField("line", tok.Line).Debugf("parse error: %s", err.Error())
}

func (s *interpreterState) resolveErrorAt(tok *Token, err error) {
	s.hadError = true
	s.report((&staticError{token: tok, message: err.Error()}).Error())
	s.log.WithField("line", tok.Line).Debugf("resolve error: %s", err.Error())
}

func (s *interpreterState) reportRuntimeError(err *runtimeError) {
	s.hadRuntimeError = true
	s.report(formatRuntimeDiagnostic(err))
	s.log.WithField("line", err.token.Line).Debugf("runtime error: %s", err.message)
}

func (s *interpreterState) report(message string) {
	if s.colorEnabled {
		message = color.Red(message)
	}
	fmt.Fprintln(s.stderr, message)
}

func (s *interpreterState) print(a ...interface{}) {
	s.printer.Println(a...)
}
