package compiler

import (
	"fmt"
	"minilang/pkg/ast"
	"minilang/pkg/ir"
	"minilang/pkg/token"
)

// FallbackOperand stands in for any factor the compiler cannot lower.
const FallbackOperand = "0"

// Compiler lowers declarations and assignments to three-address code. It
// assumes the program already passed parsing and scope checking and never
// fails: anything it cannot lower is recorded instead.
type Compiler struct {
	instructions ir.Instructions
	unsupported  []ir.Unsupported
	temps        int
	fallbacks    int
}

func New() *Compiler {
	return &Compiler{
		instructions: ir.Instructions{},
	}
}

func (c *Compiler) Compile(node ast.Node) {
	switch node := node.(type) {
	case *ast.Program:
		for _, s := range node.Statements {
			c.Compile(s)
		}

	case *ast.DeclarationStatement:
		// Declarations produce no code.

	case *ast.AssignmentStatement:
		result := c.compileExpression(node.Value)
		c.emit(ir.Copy(node.Name.Value, result))

	// Control flow and printing are not lowered. Conditions emit nothing,
	// but the statements inside their blocks are compiled as usual.
	case *ast.IfStatement:
		c.skip(node.Token)
		c.Compile(node.Consequence)
		if node.Alternative != nil {
			c.Compile(node.Alternative)
		}

	case *ast.WhileStatement:
		c.skip(node.Token)
		c.Compile(node.Body)

	case *ast.BlockStatement:
		for _, s := range node.Statements {
			c.Compile(s)
		}

	case *ast.PrintStatement:
		c.skip(node.Token)
	}
}

func (c *Compiler) skip(tok token.Token) {
	c.unsupported = append(c.unsupported, ir.Unsupported{Statement: tok.Lexeme, Line: tok.Line})
}

// compileExpression emits the code for expr and returns the name holding
// its value.
func (c *Compiler) compileExpression(expr ast.Expression) string {
	switch expr := expr.(type) {
	case *ast.Identifier:
		return expr.Value

	case *ast.NumberLiteral:
		return expr.Value

	case *ast.InfixExpression:
		left := c.compileExpression(expr.Left)
		right := c.compileExpression(expr.Right)

		op, err := ir.Lookup(expr.Operator)
		if err != nil {
			c.fallbacks++
			return FallbackOperand
		}

		temp := c.newTemp()
		c.emit(ir.Binary(temp, op, left, right))
		return temp
	}

	c.fallbacks++
	return FallbackOperand
}

func (c *Compiler) newTemp() string {
	name := fmt.Sprintf("t%d", c.temps)
	c.temps++
	return name
}

func (c *Compiler) emit(ins ir.Instruction) {
	c.instructions = append(c.instructions, ins)
}

// IR returns everything emitted so far.
func (c *Compiler) IR() *ir.Program {
	return &ir.Program{
		Instructions: c.instructions,
		Unsupported:  c.unsupported,
		Temporaries:  c.temps,
		Fallbacks:    c.fallbacks,
	}
}

// Compile lowers program with a pooled compiler.
func Compile(program *ast.Program) *ir.Program {
	c := GetCompiler()
	defer PutCompiler(c)

	c.Compile(program)
	out := c.IR()
	// The pool reuses the backing arrays.
	out.Instructions = append(ir.Instructions(nil), out.Instructions...)
	out.Unsupported = append([]ir.Unsupported(nil), out.Unsupported...)
	return out
}
