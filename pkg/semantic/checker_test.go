package semantic

import (
	"errors"
	"minilang/pkg/ast"
	"minilang/pkg/lexer"
	"minilang/pkg/parser"
	"minilang/pkg/token"
	"testing"
)

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		input           string
		expectedSymbols []string
	}{
		{"int x;\nx = 1 + 2 * 3;", []string{"x"}},
		{"int x; x = 1; if (x < 10) { print(x); }", []string{"x"}},
		{"int a; int b; a = 1; b = a * (a + 2); print(b);", []string{"a", "b"}},
		{"int i; i = 0; while (i < 3) { int j; j = i; i = i + 1; }", []string{"i", "j"}},
		{"if (1) { int y; } y = 2;", []string{"y"}},
		{"", []string{}},
	}

	for i, tt := range tests {
		symbols, err := Check(parse(t, tt.input))
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		got := symbols.Symbols()
		if len(got) != len(tt.expectedSymbols) {
			t.Fatalf("tests[%d] - wrong symbol count. expected=%d, got=%d", i, len(tt.expectedSymbols), len(got))
		}
		for j, name := range tt.expectedSymbols {
			if got[j].Name != name || got[j].Index != j {
				t.Errorf("tests[%d] - symbols[%d] wrong. expected=%s#%d, got=%s#%d",
					i, j, name, j, got[j].Name, got[j].Index)
			}
		}
	}
}

func TestScopeErrors(t *testing.T) {
	tests := []struct {
		input        string
		expectedKind ErrorKind
		expectedName string
		expectedMsg  string
	}{
		{"y = 5;", Undeclared, "y", "semantic error: variable 'y' used before declaration"},
		{"int z; int z;", Redeclared, "z", "semantic error: variable 'z' already declared"},
		{"int x; x = y + 1;", Undeclared, "y", "semantic error: variable 'y' used before declaration"},
		{"print(q);", Undeclared, "q", "semantic error: variable 'q' used before declaration"},
		{"while (n > 0) { }", Undeclared, "n", "semantic error: variable 'n' used before declaration"},
		{"int a; if (a) { int a; }", Redeclared, "a", "semantic error: variable 'a' already declared"},
		{"int a; if (a) { } else { b = 1; }", Undeclared, "b", "semantic error: variable 'b' used before declaration"},
		{"x = x; int x;", Undeclared, "x", "semantic error: variable 'x' used before declaration"},
	}

	for i, tt := range tests {
		_, err := Check(parse(t, tt.input))

		var semErr *Error
		if !errors.As(err, &semErr) {
			t.Fatalf("tests[%d] - expected *Error for %q, got=%T (%v)", i, tt.input, err, err)
		}
		if semErr.Kind != tt.expectedKind {
			t.Errorf("tests[%d] - kind wrong. expected=%d, got=%d", i, tt.expectedKind, semErr.Kind)
		}
		if semErr.Name != tt.expectedName {
			t.Errorf("tests[%d] - name wrong. expected=%q, got=%q", i, tt.expectedName, semErr.Name)
		}
		if semErr.Error() != tt.expectedMsg {
			t.Errorf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.expectedMsg, semErr.Error())
		}
	}
}

func TestRedeclarationPointsAtSecondDeclaration(t *testing.T) {
	_, err := Check(parse(t, "int z;\nint z;"))

	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *Error, got=%v", err)
	}
	if semErr.Token.Line != 2 {
		t.Errorf("expected error on line 2, got=%d", semErr.Token.Line)
	}
}

func TestScanAgreesWithChecker(t *testing.T) {
	inputs := []string{
		"int x;\nx = 1 + 2 * 3;",
		"y = 5;",
		"int z; int z;",
		"int x; x = 1; if (x < 10) { print(x); }",
		"int i; i = 0; while (i < 3) { int j; j = i; i = i + 1; }",
		"int a; if (a) { int a; }",
		"if (1) { int y; } y = 2;",
		"int a; a = b * 2;",
		"int p; int q; p = q; print(p + q); int r; r = (p - q) / r;",
	}

	for i, input := range inputs {
		tokens := lex(t, input)
		program, err := parser.Parse(tokens)
		if err != nil {
			t.Fatalf("inputs[%d] - parser error: %v", i, err)
		}

		treeSymbols, treeErr := Check(program)
		scanSymbols, scanErr := ScanTokens(tokens)

		if (treeErr == nil) != (scanErr == nil) {
			t.Fatalf("inputs[%d] - modes disagree. tree=%v, scan=%v", i, treeErr, scanErr)
		}
		if treeErr != nil {
			if treeErr.Error() != scanErr.Error() {
				t.Errorf("inputs[%d] - messages differ. tree=%q, scan=%q", i, treeErr, scanErr)
			}
			continue
		}
		if treeSymbols.Len() != scanSymbols.Len() {
			t.Errorf("inputs[%d] - symbol counts differ. tree=%d, scan=%d", i, treeSymbols.Len(), scanSymbols.Len())
		}
	}
}

func TestScanIgnoresStructure(t *testing.T) {
	// The scan runs on any token stream, including ones the parser rejects.
	tokens := lex(t, "int x x ; int")
	if _, err := ScanTokens(tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := ScanTokens(lex(t, "int 5 y"))
	var semErr *Error
	if !errors.As(err, &semErr) || semErr.Name != "y" || semErr.Kind != Undeclared {
		t.Fatalf("expected use-before-declaration of y, got=%v", err)
	}
}

func TestCheckersAreIndependent(t *testing.T) {
	first := NewChecker()
	if err := first.Check(parse(t, "int x;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := NewChecker()
	if err := second.Check(parse(t, "int x;")); err != nil {
		t.Fatalf("second checker saw state from the first: %v", err)
	}

	if err := first.Check(parse(t, "int x;")); err == nil {
		t.Fatalf("expected redeclaration on reused checker")
	}
}

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := lexer.Lex(input)
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return tokens
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := parser.Parse(lex(t, input))
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return program
}
