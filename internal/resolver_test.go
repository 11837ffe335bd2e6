package internal

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func resolveSource(t *testing.T, source string) *interpreterState {
	t.Helper()
	state := newInterpreterState(source, stdPrinter{}, nil, false)

	tokens := newLexer(source, state).scan()
	if state.hadStaticError() {
		t.Fatalf("unexpected lex error: %q", source)
	}

	statements := newParser(tokens, state).parse()
	if state.hadStaticError() {
		t.Fatalf("unexpected parse error: %q", source)
	}
	state.stmts = statements

	newResolver(state).resolveStmts(statements)
	return state
}

// depthOf finds the recorded hop count for the sole variableExpr named
// name among statements — good enough for these small fixtures where
// each name appears exactly once as a read.
func depthOf(state *interpreterState, name string) (int, bool) {
	for e, depth := range state.locals {
		if v, ok := e.(*variableExpr); ok && v.name.Lexeme == name {
			return depth, true
		}
	}
	return 0, false
}

func TestResolverClosureDepth(t *testing.T) {
	state := resolveSource(t, `
	fun outer() {
		var a = 1;
		fun inner() {
			print a;
		}
	}
	`)
	if state.hadStaticError() {
		t.Fatal("unexpected resolve error")
	}
	depth, ok := depthOf(state, "a")
	if !ok {
		t.Fatal("expected a hop count recorded for `a`")
	}
	if depth != 1 {
		t.Errorf("expected depth 1, got %d", depth)
	}
}

func TestResolverGlobalIsUnresolved(t *testing.T) {
	state := resolveSource(t, `
	var g = 1;
	fun f() {
		print g;
	}
	`)
	if state.hadStaticError() {
		t.Fatal("unexpected resolve error")
	}
	if _, ok := depthOf(state, "g"); ok {
		t.Error("expected no recorded depth for a global reference")
	}
}

func TestResolverOwnInitializerError(t *testing.T) {
	state := resolveSource(t, `
	var x = 3;
	{
		var x = x + 1;
	}
	`)
	if !state.hadStaticError() {
		t.Error("expected an own-initializer resolve error")
	}
}

func TestResolverRedeclarationInBlockScope(t *testing.T) {
	state := resolveSource(t, `
	{
		var a = "hi";
		var a = "bye";
	}
	`)
	if !state.hadStaticError() {
		t.Error("expected a redeclaration resolve error inside a block")
	}
}

func TestResolverGlobalRedeclarationAllowed(t *testing.T) {
	state := resolveSource(t, `
	var a = "hi";
	var a = "bye";
	`)
	if state.hadStaticError() {
		t.Error("global redeclaration should be permitted")
	}
}

func TestResolverReturnOutsideFunction(t *testing.T) {
	state := resolveSource(t, `return 1;`)
	if !state.hadStaticError() {
		t.Error("expected an error returning from top-level code")
	}
}

func TestResolverThisOutsideClass(t *testing.T) {
	state := resolveSource(t, `print this;`)
	if !state.hadStaticError() {
		t.Error("expected an error using this outside of a class")
	}
}

func TestResolverSuperWithoutSuperclass(t *testing.T) {
	state := resolveSource(t, `
	class A {
		m() {
			print super.m;
		}
	}
	`)
	if !state.hadStaticError() {
		t.Error("expected an error using super in a class with no superclass")
	}
}

func TestResolverClassInheritingFromItself(t *testing.T) {
	state := resolveSource(t, `class A < A {}`)
	if !state.hadStaticError() {
		t.Error("expected an error for a class inheriting from itself")
	}
}

// thisDepths collects the hop count recorded for every `this`
// expression and returns them sorted ascending, since Go ranges the
// map in no fixed order.
func thisDepths(state *interpreterState) []int {
	var depths []int
	for e, depth := range state.locals {
		if _, ok := e.(*thisExpr); ok {
			depths = append(depths, depth)
		}
	}
	sort.Ints(depths)
	return depths
}

func TestResolverNestedScopeDepths(t *testing.T) {
	state := resolveSource(t, `
	class Box {
		init(value) {
			this.value = value;
		}
		unwrap() {
			var wrapper = this;
			{
				print wrapper;
				print this;
			}
		}
	}
	`)
	if state.hadStaticError() {
		t.Fatal("unexpected resolve error")
	}

	wrapperDepth, ok := depthOf(state, "wrapper")
	if !ok {
		t.Fatal("expected a hop count recorded for `wrapper`")
	}
	if wrapperDepth != 1 {
		t.Errorf("expected wrapper depth 1, got %d", wrapperDepth)
	}

	// Three `this` occurrences: `this.value` in init (depth 1, one
	// hop past init's own param scope), `var wrapper = this` in
	// unwrap (depth 1, one hop past unwrap's own scope, which holds
	// wrapper), and
	// `print this` in the nested block (depth 2, one hop further
	// than wrapper).
	if diff := cmp.Diff([]int{1, 1, 2}, thisDepths(state)); diff != "" {
		t.Errorf("this depths mismatch (-want +got):\n%s", diff)
	}
}
