package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanTokens(t *testing.T, source string) []Token {
	t.Helper()
	state := newInterpreterState(source, stdPrinter{}, nil, false)
	tokens := newLexer(source, state).scan()
	if state.hadStaticError() {
		t.Fatalf("unexpected lex error scanning %q", source)
	}
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	tokens := scanTokens(t, "(){},.-+;/* ! != = == > >= < <=")
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS, PLUS,
		SEMICOLON, SLASH, STAR, BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL,
		GREATER, GREATER_EQUAL, LESS, LESS_EQUAL, EOF,
	}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Errorf("token type mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerKeywordsVsIdentifiers(t *testing.T) {
	tokens := scanTokens(t, "and class fooBar else")
	want := []TokenType{AND, CLASS, IDENTIFIER, ELSE, EOF}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Errorf("token type mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Lexeme != "fooBar" {
		t.Errorf("expected identifier lexeme fooBar, got %q", tokens[2].Lexeme)
	}
}

func TestLexerNumberAndString(t *testing.T) {
	tokens := scanTokens(t, `123 4.5 "hi there"`)
	want := []TokenType{NUMBER, NUMBER, STRING, EOF}
	if diff := cmp.Diff(want, tokenTypes(tokens)); diff != "" {
		t.Errorf("token type mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(123.0, tokens[0].Literal); diff != "" {
		t.Errorf("number literal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("hi there", tokens[2].Literal); diff != "" {
		t.Errorf("string literal mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerFinalEOFLine(t *testing.T) {
	tokens := scanTokens(t, "var a = 1;\nvar b = 2;\n")
	last := tokens[len(tokens)-1]
	if last.Type != EOF {
		t.Fatalf("expected trailing EOF token, got %v", last.Type)
	}
	if last.Line != 3 {
		t.Errorf("expected EOF on line 3, got %d", last.Line)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	state := newInterpreterState(`"unterminated`, stdPrinter{}, nil, false)
	newLexer(`"unterminated`, state).scan()
	if !state.hadStaticError() {
		t.Fatal("expected a static error for an unterminated string")
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	state := newInterpreterState("var a = @;", stdPrinter{}, nil, false)
	newLexer("var a = @;", state).scan()
	if !state.hadStaticError() {
		t.Fatal("expected a static error for an illegal character")
	}
}
