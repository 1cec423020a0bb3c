package semantic

import (
	"minilang/pkg/token"
	"sort"
)

// Symbol is one declared variable.
type Symbol struct {
	Name  string
	Index int         // declaration order, from 0
	Token token.Token // the declared name's token
}

// SymbolTable is the single flat namespace of a MiniLang program. It only
// grows.
type SymbolTable struct {
	store          map[string]Symbol
	numDefinitions int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		store: make(map[string]Symbol),
	}
}

func (s *SymbolTable) Define(name string, tok token.Token) Symbol {
	symbol := Symbol{Name: name, Index: s.numDefinitions, Token: tok}
	s.store[name] = symbol
	s.numDefinitions++
	return symbol
}

func (s *SymbolTable) Resolve(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// Symbols returns every symbol in declaration order.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.store))
	for _, sym := range s.store {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (s *SymbolTable) Len() int {
	return s.numDefinitions
}
