package ir

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

type Op byte

const (
	// OpCopy assigns a single value: dest = value
	OpCopy Op = iota
	// OpAdd adds two values
	OpAdd
	// OpSub subtracts the right value from the left
	OpSub
	// OpMul multiplies two values
	OpMul
	// OpDiv divides the left value by the right
	OpDiv
	// OpLess compares left < right
	OpLess
	// OpGreater compares left > right
	OpGreater
)

type Definition struct {
	Name   string
	Symbol string // source spelling; empty for OpCopy
}

var definitions = map[Op]*Definition{
	OpCopy:    {"OpCopy", ""},
	OpAdd:     {"OpAdd", "+"},
	OpSub:     {"OpSub", "-"},
	OpMul:     {"OpMul", "*"},
	OpDiv:     {"OpDiv", "/"},
	OpLess:    {"OpLess", "<"},
	OpGreater: {"OpGreater", ">"},
}

var bySymbol = func() map[string]Op {
	m := make(map[string]Op, len(definitions))
	for op, def := range definitions {
		if def.Symbol != "" {
			m[def.Symbol] = op
		}
	}
	return m
}()

// Lookup returns the binary op spelled symbol in source.
func Lookup(symbol string) (Op, error) {
	op, ok := bySymbol[symbol]
	if !ok {
		return 0, fmt.Errorf("operator %q undefined", symbol)
	}
	return op, nil
}

func (op Op) String() string {
	def, ok := definitions[op]
	if !ok {
		return fmt.Sprintf("Op(%d)", op)
	}
	return def.Name
}

// Symbol returns the operator's source spelling.
func (op Op) Symbol() string {
	if def, ok := definitions[op]; ok {
		return def.Symbol
	}
	return "?"
}

// Instruction is one three-address line. Right is unused for OpCopy.
type Instruction struct {
	Dest  string
	Op    Op
	Left  string
	Right string
}

// Copy builds dest = value.
func Copy(dest, value string) Instruction {
	return Instruction{Dest: dest, Op: OpCopy, Left: value}
}

// Binary builds dest = left op right.
func Binary(dest string, op Op, left, right string) Instruction {
	return Instruction{Dest: dest, Op: op, Left: left, Right: right}
}

func (ins Instruction) String() string {
	if ins.Op == OpCopy {
		return ins.Dest + " = " + ins.Left
	}
	return fmt.Sprintf("%s = %s %s %s", ins.Dest, ins.Left, ins.Op.Symbol(), ins.Right)
}

type Instructions []Instruction

func (ins Instructions) String() string {
	var out strings.Builder
	for _, i := range ins {
		out.WriteString(i.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Unsupported records a statement the emitter does not lower.
type Unsupported struct {
	Statement string // the statement keyword: if, while, print
	Line      int
}

func (u Unsupported) String() string {
	return fmt.Sprintf("%s statement on line %d not lowered", u.Statement, u.Line)
}

// Program is the output of one emitter run.
type Program struct {
	Instructions Instructions
	Unsupported  []Unsupported
	Temporaries  int // number of t<N> names allocated
	Fallbacks    int // factors replaced by the literal 0
}

func (p *Program) String() string {
	return p.Instructions.String()
}

// Digest returns the hex blake2b-256 of the printed instructions.
func (p *Program) Digest() string {
	sum := blake2b.Sum256([]byte(p.Instructions.String()))
	return hex.EncodeToString(sum[:])
}
