package main

import (
	"fmt"
	"io"
	"minilang/pkg/ast"
	"minilang/pkg/frontend"
	"minilang/pkg/ir"
	"minilang/pkg/token"
	"strings"
)

type ProgramInsights struct {
	Symbols     []SymbolInfo
	Statements  map[string]int // keyed by statement keyword, "assign" for assignments
	MaxDepth    int            // deepest block nesting
	Temporaries int
	Fallbacks   int
	Unsupported []ir.Unsupported
	TokenDigest string
	IRDigest    string
}

type SymbolInfo struct {
	Name string
	Line int
}

func analyzeProgram(result *frontend.Result) ProgramInsights {
	insights := ProgramInsights{
		Statements:  map[string]int{},
		Temporaries: result.IR.Temporaries,
		Fallbacks:   result.IR.Fallbacks,
		Unsupported: result.IR.Unsupported,
		TokenDigest: token.Digest(result.Tokens),
		IRDigest:    result.IR.Digest(),
	}

	for _, sym := range result.Symbols {
		insights.Symbols = append(insights.Symbols, SymbolInfo{Name: sym.Name, Line: sym.Token.Line})
	}

	ast.Walk(result.Program, func(node ast.Node) {
		switch node.(type) {
		case *ast.DeclarationStatement:
			insights.Statements[token.INT]++
		case *ast.AssignmentStatement:
			insights.Statements["assign"]++
		case *ast.IfStatement:
			insights.Statements[token.IF]++
		case *ast.WhileStatement:
			insights.Statements[token.WHILE]++
		case *ast.PrintStatement:
			insights.Statements[token.PRINT]++
		}
	})
	insights.MaxDepth = blockDepth(result.Program.Statements)

	return insights
}

func blockDepth(stmts []ast.Statement) int {
	depth := 0
	for _, stmt := range stmts {
		var inner int
		switch s := stmt.(type) {
		case *ast.IfStatement:
			inner = 1 + blockDepth(s.Consequence.Statements)
			if s.Alternative != nil {
				inner = max(inner, 1+blockDepth(s.Alternative.Statements))
			}
		case *ast.WhileStatement:
			inner = 1 + blockDepth(s.Body.Statements)
		}
		depth = max(depth, inner)
	}
	return depth
}

func printSymbolInsights(out io.Writer, insights ProgramInsights) {
	fmt.Fprintf(out, "Symbols (%d)\n", len(insights.Symbols))
	if len(insights.Symbols) == 0 {
		fmt.Fprintln(out, "  · No variables declared.")
		return
	}

	for _, sym := range insights.Symbols {
		fmt.Fprintf(out, "  · int %s (line %d)\n", sym.Name, sym.Line)
	}
}

func printStatementInsights(out io.Writer, insights ProgramInsights) {
	fmt.Fprintln(out, "Statements")
	for _, kind := range []string{token.INT, "assign", token.IF, token.WHILE, token.PRINT} {
		fmt.Fprintf(out, "  · %-7s %d\n", kind, insights.Statements[kind])
	}
	fmt.Fprintf(out, "  · nesting %d\n", insights.MaxDepth)
}

func printIRInsights(out io.Writer, insights ProgramInsights) {
	fmt.Fprintln(out, "Intermediate Code")
	fmt.Fprintf(out, "  · temporaries %d\n", insights.Temporaries)
	fmt.Fprintf(out, "  · fallbacks   %d\n", insights.Fallbacks)
	if len(insights.Unsupported) > 0 {
		lines := make([]string, 0, len(insights.Unsupported))
		for _, u := range insights.Unsupported {
			lines = append(lines, fmt.Sprintf("%s@%d", u.Statement, u.Line))
		}
		fmt.Fprintf(out, "  · not lowered %s\n", strings.Join(lines, ", "))
	}
	fmt.Fprintf(out, "  · tokens  %s\n", insights.TokenDigest)
	fmt.Fprintf(out, "  · ir      %s\n", insights.IRDigest)
}
