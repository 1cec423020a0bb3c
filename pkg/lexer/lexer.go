package lexer

import (
	"fmt"
	"minilang/pkg/token"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order at every position and the first one that matches
// wins, so identifier-shaped text is always an Ident here and keywords are
// split out afterwards by token.LookupIdent.
var definition = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "Assign", Pattern: `=`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "Operator", Pattern: `[-+*/]`},
		{Name: "Comparator", Pattern: `[<>]`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Unrecognized", Pattern: `(?s:.)`},
	},
})

var kinds = map[string]token.Kind{
	"Number":       token.NUMBER,
	"Assign":       token.ASSIGN_OP,
	"Semicolon":    token.SEMICOLON,
	"Operator":     token.OPERATOR,
	"Comparator":   token.COMPARATOR,
	"LParen":       token.LEFT_PAREN,
	"RParen":       token.RIGHT_PAREN,
	"LBrace":       token.LEFT_BRACE,
	"RBrace":       token.RIGHT_BRACE,
	"Unrecognized": token.UNRECOGNIZED,
}

// ruleNames maps participle's token types back to rule names.
var ruleNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, typ := range definition.Symbols() {
		names[typ] = name
	}
	return names
}()

// Policy decides what happens to characters no rule recognizes.
type Policy int

const (
	// SkipUnrecognized drops unknown characters from the token stream and
	// records them for Skipped.
	SkipUnrecognized Policy = iota
	// RejectUnrecognized fails on the first unknown character.
	RejectUnrecognized
)

func (p Policy) String() string {
	switch p {
	case SkipUnrecognized:
		return "skip"
	case RejectUnrecognized:
		return "reject"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// LexicalError reports an unrecognized character under RejectUnrecognized.
type LexicalError struct {
	Token token.Token
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error: unrecognized character %q at %d:%d",
		e.Token.Lexeme, e.Token.Line, e.Token.Column)
}

type Lexer struct {
	input   string
	policy  Policy
	scanner lexer.Lexer
	err     error

	skipped []token.Token
}

type Option func(*Lexer)

func WithPolicy(p Policy) Option {
	return func(l *Lexer) { l.policy = p }
}

func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	l.scanner, l.err = definition.LexString("", input)
	return l
}

// NextToken returns the next source token, or a token of kind EOF once the
// input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}

	for {
		raw, err := l.scanner.Next()
		if err != nil {
			l.err = err
			return token.Token{}, err
		}
		if raw.EOF() {
			return token.Token{Kind: token.EOF, Line: raw.Pos.Line, Column: raw.Pos.Column}, nil
		}

		name := ruleNames[raw.Type]
		if name == "Whitespace" {
			continue
		}

		tok := token.Token{Lexeme: raw.Value, Line: raw.Pos.Line, Column: raw.Pos.Column}
		if name == "Ident" {
			tok.Kind = token.LookupIdent(raw.Value)
		} else {
			tok.Kind = kinds[name]
		}

		if tok.Kind == token.UNRECOGNIZED {
			if l.policy == RejectUnrecognized {
				l.err = &LexicalError{Token: tok}
				return token.Token{}, l.err
			}
			l.skipped = append(l.skipped, tok)
			continue
		}

		return tok, nil
	}
}

// Tokenize consumes the whole input. The returned slice never contains EOF.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Skipped lists the unrecognized characters dropped so far.
func (l *Lexer) Skipped() []token.Token {
	return l.skipped
}

// Lex tokenizes input with the default policy.
func Lex(input string) ([]token.Token, error) {
	return New(input).Tokenize()
}
