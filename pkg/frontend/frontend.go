// Package frontend runs the MiniLang pipeline: lexing, grammar validation,
// scope checking and IR emission. The first error ends the run and no later
// stage sees the program.
package frontend

import (
	"errors"
	"fmt"
	"minilang/pkg/ast"
	"minilang/pkg/compiler"
	"minilang/pkg/ir"
	"minilang/pkg/lexer"
	"minilang/pkg/parser"
	"minilang/pkg/semantic"
	"minilang/pkg/token"
)

type Stage string

const (
	StageLex      Stage = "lex"
	StageSyntax   Stage = "syntax"
	StageSemantic Stage = "semantic"
)

// CompileError wraps the error that stopped the pipeline.
type CompileError struct {
	Stage Stage
	Err   error
}

func (e *CompileError) Error() string {
	return e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// ScopeMode selects how declare-before-use is enforced.
type ScopeMode string

const (
	// ScopeTree walks the syntax tree.
	ScopeTree ScopeMode = "tree"
	// ScopeTokens scans the raw token sequence.
	ScopeTokens ScopeMode = "tokens"
)

func ParseScopeMode(s string) (ScopeMode, error) {
	switch ScopeMode(s) {
	case ScopeTree, ScopeTokens:
		return ScopeMode(s), nil
	}
	return "", fmt.Errorf("unknown scope mode %q (want %q or %q)", s, ScopeTree, ScopeTokens)
}

type Options struct {
	LexPolicy lexer.Policy
	Scope     ScopeMode
}

func DefaultOptions() Options {
	return Options{LexPolicy: lexer.SkipUnrecognized, Scope: ScopeTree}
}

// Result holds the output of every stage of a successful run.
type Result struct {
	Tokens  []token.Token
	Skipped []token.Token // unrecognized characters dropped by the lexer
	Program *ast.Program
	Symbols []semantic.Symbol
	IR      *ir.Program
}

// Compile runs all four stages over src.
func Compile(src string, opts Options) (*Result, error) {
	l := lexer.New(src, lexer.WithPolicy(opts.LexPolicy))
	tokens, err := l.Tokenize()
	if err != nil {
		return nil, &CompileError{Stage: StageLex, Err: err}
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, &CompileError{Stage: StageSyntax, Err: err}
	}

	var symbols *semantic.SymbolTable
	switch opts.Scope {
	case ScopeTokens:
		symbols, err = semantic.ScanTokens(tokens)
	default:
		symbols, err = semantic.Check(program)
	}
	if err != nil {
		return nil, &CompileError{Stage: StageSemantic, Err: err}
	}

	return &Result{
		Tokens:  tokens,
		Skipped: l.Skipped(),
		Program: program,
		Symbols: symbols.Symbols(),
		IR:      compiler.Compile(program),
	}, nil
}

// StageOf reports which stage produced err, if it came from Compile.
func StageOf(err error) (Stage, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Stage, true
	}
	return "", false
}
