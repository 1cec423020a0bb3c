package semantic

import (
	"fmt"
	"minilang/pkg/ast"
	"minilang/pkg/token"
)

type ErrorKind int

const (
	Redeclared ErrorKind = iota
	Undeclared
)

// Error is the first scope violation found.
type Error struct {
	Kind  ErrorKind
	Name  string
	Token token.Token
}

func (e *Error) Error() string {
	switch e.Kind {
	case Redeclared:
		return fmt.Sprintf("semantic error: variable '%s' already declared", e.Name)
	default:
		return fmt.Sprintf("semantic error: variable '%s' used before declaration", e.Name)
	}
}

// Checker enforces declare-before-use and no-redeclaration. Blocks do not
// open scopes: the whole program shares one namespace.
type Checker struct {
	symbols *SymbolTable
}

func NewChecker() *Checker {
	return &Checker{symbols: NewSymbolTable()}
}

// Symbols exposes the names declared so far.
func (c *Checker) Symbols() *SymbolTable {
	return c.symbols
}

// Check walks node in source order and stops at the first violation.
func (c *Checker) Check(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Program:
		for _, s := range node.Statements {
			if err := c.Check(s); err != nil {
				return err
			}
		}

	case *ast.BlockStatement:
		for _, s := range node.Statements {
			if err := c.Check(s); err != nil {
				return err
			}
		}

	case *ast.DeclarationStatement:
		return c.declare(node.Name)

	case *ast.AssignmentStatement:
		if err := c.use(node.Name); err != nil {
			return err
		}
		return c.Check(node.Value)

	case *ast.IfStatement:
		if err := c.Check(node.Condition); err != nil {
			return err
		}
		if err := c.Check(node.Consequence); err != nil {
			return err
		}
		if node.Alternative != nil {
			return c.Check(node.Alternative)
		}

	case *ast.WhileStatement:
		if err := c.Check(node.Condition); err != nil {
			return err
		}
		return c.Check(node.Body)

	case *ast.PrintStatement:
		return c.Check(node.Value)

	case *ast.InfixExpression:
		if err := c.Check(node.Left); err != nil {
			return err
		}
		return c.Check(node.Right)

	case *ast.Identifier:
		return c.use(node)
	}

	return nil
}

func (c *Checker) declare(name *ast.Identifier) error {
	if _, ok := c.symbols.Resolve(name.Value); ok {
		return &Error{Kind: Redeclared, Name: name.Value, Token: name.Token}
	}
	c.symbols.Define(name.Value, name.Token)
	return nil
}

func (c *Checker) use(name *ast.Identifier) error {
	if _, ok := c.symbols.Resolve(name.Value); !ok {
		return &Error{Kind: Undeclared, Name: name.Value, Token: name.Token}
	}
	return nil
}

// Check runs a fresh Checker over program.
func Check(program *ast.Program) (*SymbolTable, error) {
	c := NewChecker()
	if err := c.Check(program); err != nil {
		return nil, err
	}
	return c.Symbols(), nil
}
