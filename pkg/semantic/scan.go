package semantic

import "minilang/pkg/token"

// ScanTokens applies the same rules to the raw token sequence in one pass,
// with no knowledge of statements or blocks: 'int' followed by an
// identifier declares it, and every other identifier is a use. For programs
// the parser accepts it agrees with Checker.
func ScanTokens(tokens []token.Token) (*SymbolTable, error) {
	symbols := NewSymbolTable()

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Is(token.KEYWORD, token.INT) {
			if i+1 < len(tokens) && tokens[i+1].Kind == token.IDENTIFIER {
				name := tokens[i+1]
				if _, ok := symbols.Resolve(name.Lexeme); ok {
					return nil, &Error{Kind: Redeclared, Name: name.Lexeme, Token: name}
				}
				symbols.Define(name.Lexeme, name)
				i++
			}
			continue
		}

		if tok.Kind == token.IDENTIFIER {
			if _, ok := symbols.Resolve(tok.Lexeme); !ok {
				return nil, &Error{Kind: Undeclared, Name: tok.Lexeme, Token: tok}
			}
		}
	}

	return symbols, nil
}
