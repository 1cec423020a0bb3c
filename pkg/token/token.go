package token

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

type Kind string

const (
	// Special
	UNRECOGNIZED = "UNRECOGNIZED"
	EOF          = "EOF"

	KEYWORD    = "KEYWORD"
	IDENTIFIER = "IDENTIFIER"
	NUMBER     = "NUMBER"

	ASSIGN_OP  = "ASSIGN_OP"  // =
	SEMICOLON  = "SEMICOLON"  // ;
	OPERATOR   = "OPERATOR"   // + - * /
	COMPARATOR = "COMPARATOR" // < >

	LEFT_PAREN  = "LEFT_PAREN"
	RIGHT_PAREN = "RIGHT_PAREN"
	LEFT_BRACE  = "LEFT_BRACE"
	RIGHT_BRACE = "RIGHT_BRACE"
)

// Reserved words.
const (
	INT   = "int"
	IF    = "if"
	ELSE  = "else"
	WHILE = "while"
	PRINT = "print"
)

type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// String renders the token in its diagnostic print form, e.g. (KEYWORD, int).
func (t Token) String() string {
	return fmt.Sprintf("(%s, %s)", t.Kind, t.Lexeme)
}

// Is reports whether t has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

var keywords = map[string]bool{
	INT:   true,
	IF:    true,
	ELSE:  true,
	WHILE: true,
	PRINT: true,
}

// LookupIdent classifies identifier-shaped text, reclassifying reserved
// words as KEYWORD.
func LookupIdent(ident string) Kind {
	if keywords[ident] {
		return KEYWORD
	}
	return IDENTIFIER
}

// Digest returns the hex blake2b-256 of the printed token sequence.
func Digest(tokens []Token) string {
	h, _ := blake2b.New256(nil)
	for _, tok := range tokens {
		fmt.Fprintln(h, tok.String())
	}
	return hex.EncodeToString(h.Sum(nil))
}
