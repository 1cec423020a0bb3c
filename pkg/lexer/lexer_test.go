package lexer

import (
	"errors"
	"minilang/pkg/token"
	"testing"
)

func TestTokenize(t *testing.T) {
	input := "int x;\nx = 1 + 2 * 3;"

	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.KEYWORD, "int"},
		{token.IDENTIFIER, "x"},
		{token.SEMICOLON, ";"},
		{token.IDENTIFIER, "x"},
		{token.ASSIGN_OP, "="},
		{token.NUMBER, "1"},
		{token.OPERATOR, "+"},
		{token.NUMBER, "2"},
		{token.OPERATOR, "*"},
		{token.NUMBER, "3"},
		{token.SEMICOLON, ";"},
	}

	tokens, err := Lex(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("wrong token count. expected=%d, got=%d (%v)", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q, lexeme=%q",
				i, tt.expectedKind, tok.Kind, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestControlFlowTokens(t *testing.T) {
	input := `while (i > 0) { print(i); } else {}`
	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.KEYWORD, "while"},
		{token.LEFT_PAREN, "("},
		{token.IDENTIFIER, "i"},
		{token.COMPARATOR, ">"},
		{token.NUMBER, "0"},
		{token.RIGHT_PAREN, ")"},
		{token.LEFT_BRACE, "{"},
		{token.KEYWORD, "print"},
		{token.LEFT_PAREN, "("},
		{token.IDENTIFIER, "i"},
		{token.RIGHT_PAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RIGHT_BRACE, "}"},
		{token.KEYWORD, "else"},
		{token.LEFT_BRACE, "{"},
		{token.RIGHT_BRACE, "}"},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Kind != tt.expectedKind || tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - token wrong. expected=(%s, %s), got=%s",
				i, tt.expectedKind, tt.expectedLexeme, tok)
		}
	}

	tok, err := l.NextToken()
	if err != nil || tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got=%s err=%v", tok, err)
	}
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	tests := []struct {
		input        string
		expectedKind token.Kind
	}{
		{"int", token.KEYWORD},
		{"integer", token.IDENTIFIER},
		{"iffy", token.IDENTIFIER},
		{"_while", token.IDENTIFIER},
		{"printx", token.IDENTIFIER},
		{"Print", token.IDENTIFIER},
		{"else", token.KEYWORD},
	}

	for i, tt := range tests {
		tokens, err := Lex(tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if len(tokens) != 1 {
			t.Fatalf("tests[%d] - expected 1 token, got=%d", i, len(tokens))
		}
		if tokens[0].Kind != tt.expectedKind {
			t.Errorf("tests[%d] - kind wrong for %q. expected=%q, got=%q",
				i, tt.input, tt.expectedKind, tokens[0].Kind)
		}
	}
}

func TestUnrecognizedCharactersAreSkipped(t *testing.T) {
	l := New("x = 1 @ 2; # $")
	tokens, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"x", "=", "1", "2", ";"}
	if len(tokens) != len(expected) {
		t.Fatalf("wrong token count. expected=%d, got=%d (%v)", len(expected), len(tokens), tokens)
	}
	for i, lexeme := range expected {
		if tokens[i].Lexeme != lexeme {
			t.Errorf("tokens[%d] - lexeme wrong. expected=%q, got=%q", i, lexeme, tokens[i].Lexeme)
		}
	}

	skipped := l.Skipped()
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped characters, got=%d (%v)", len(skipped), skipped)
	}
	for i, ch := range []string{"@", "#", "$"} {
		if skipped[i].Kind != token.UNRECOGNIZED || skipped[i].Lexeme != ch {
			t.Errorf("skipped[%d] wrong. expected=(UNRECOGNIZED, %s), got=%s", i, ch, skipped[i])
		}
	}
}

func TestRejectUnrecognized(t *testing.T) {
	_, err := New("int x;\nx = 1 % 2;", WithPolicy(RejectUnrecognized)).Tokenize()

	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexicalError, got=%T (%v)", err, err)
	}
	if lexErr.Token.Lexeme != "%" {
		t.Errorf("wrong character. expected=%q, got=%q", "%", lexErr.Token.Lexeme)
	}
	if lexErr.Token.Line != 2 || lexErr.Token.Column != 7 {
		t.Errorf("wrong position. expected=2:7, got=%d:%d", lexErr.Token.Line, lexErr.Token.Column)
	}
}

func TestPositions(t *testing.T) {
	tokens, err := Lex("int a;\n  a = 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok := tokens[3]
	if tok.Lexeme != "a" || tok.Line != 2 || tok.Column != 3 {
		t.Fatalf("wrong position for %s. expected=2:3, got=%d:%d", tok, tok.Line, tok.Column)
	}
}

func TestDeterministic(t *testing.T) {
	input := "int x; int y;\nx = (1 + y) * 3 / 4 - 2;\nif (x < y) { print(x); }"

	first, err := Lex(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := Lex(input)
		if err != nil {
			t.Fatalf("run %d - unexpected error: %v", i, err)
		}
		if token.Digest(again) != token.Digest(first) {
			t.Fatalf("run %d - token digest differs", i)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d - tokens[%d] differ. first=%s, got=%s", i, j, first[j], again[j])
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, err := Lex(" \n\t ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected no tokens, got=%v", tokens)
	}
}

func TestEveryRuleHasAKind(t *testing.T) {
	for _, name := range ruleNames {
		switch name {
		case "EOF", "Ident", "Whitespace":
			continue
		}
		if _, ok := kinds[name]; !ok {
			t.Errorf("rule %q has no token kind", name)
		}
	}
	if len(ruleNames) != len(kinds)+3 {
		t.Errorf("rule table and kind table out of step. rules=%d, kinds=%d", len(ruleNames), len(kinds))
	}
}
