package parser

import (
	"fmt"
	"minilang/pkg/ast"
	"minilang/pkg/token"
)

// SyntaxError is the first grammar mismatch found. Parsing stops there.
type SyntaxError struct {
	Message string
	Token   token.Token // the offending token; Kind is EOF past the end
}

// AtEOF reports whether the input ran out before the grammar was satisfied.
func (e *SyntaxError) AtEOF() bool {
	return e.Token.Kind == token.EOF
}

func (e *SyntaxError) Error() string {
	at := "EOF"
	if !e.AtEOF() {
		at = e.Token.String()
	}
	return fmt.Sprintf("syntax error: %s at token: %s", e.Message, at)
}

type Parser struct {
	tokens   []token.Token
	position int // index of curToken in tokens

	curToken token.Token
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, position: -1}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	if p.position < len(p.tokens) {
		p.position++
	}
	if p.position < len(p.tokens) {
		p.curToken = p.tokens[p.position]
		return
	}
	p.curToken = token.Token{Kind: token.EOF}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		p.curToken.Line = last.Line
		p.curToken.Column = last.Column + len(last.Lexeme)
	}
}

// ParseProgram parses statements until the tokens run out.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// Validate reports only whether tokens form a MiniLang program.
func Validate(tokens []token.Token) error {
	_, err := Parse(tokens)
	return err
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.curKeywordIs(token.INT):
		return p.parseDeclarationStatement()
	case p.curTokenIs(token.IDENTIFIER):
		return p.parseAssignmentStatement()
	case p.curKeywordIs(token.IF):
		return p.parseIfStatement()
	case p.curKeywordIs(token.WHILE):
		return p.parseWhileStatement()
	case p.curKeywordIs(token.PRINT):
		return p.parsePrintStatement()
	default:
		return nil, p.fail("Expected a statement.")
	}
}

func (p *Parser) parseDeclarationStatement() (*ast.DeclarationStatement, error) {
	stmt := &ast.DeclarationStatement{Token: p.curToken}
	p.nextToken()

	name, err := p.expect(token.IDENTIFIER, "Expected variable name after 'int'.")
	if err != nil {
		return nil, err
	}
	stmt.Name = &ast.Identifier{Token: name, Value: name.Lexeme}

	if _, err := p.expect(token.SEMICOLON, "Expected ';' after declaration."); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseAssignmentStatement() (*ast.AssignmentStatement, error) {
	name, err := p.expect(token.IDENTIFIER, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	stmt := &ast.AssignmentStatement{Token: name}
	stmt.Name = &ast.Identifier{Token: name, Value: name.Lexeme}

	if _, err := p.expect(token.ASSIGN_OP, "Expected '=' in assignment."); err != nil {
		return nil, err
	}

	if stmt.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON, "Expected ';' after assignment."); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()

	cond, err := p.parseCondition("Expected '(' after 'if'.")
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	if stmt.Consequence, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}

	if p.curKeywordIs(token.ELSE) {
		p.nextToken()
		if stmt.Alternative, err = p.parseBlockStatement(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()

	cond, err := p.parseCondition("Expected '(' after 'while'.")
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	if stmt.Body, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseCondition reads '(' expr ')' for if and while.
func (p *Parser) parseCondition(openMsg string) (ast.Expression, error) {
	if _, err := p.expect(token.LEFT_PAREN, openMsg); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RIGHT_PAREN, "Expected ')' after condition."); err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) parsePrintStatement() (*ast.PrintStatement, error) {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()

	if _, err := p.expect(token.LEFT_PAREN, "Expected '(' after 'print'."); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if _, err := p.expect(token.RIGHT_PAREN, "Expected ')' after expression."); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "Expected ';' after print statement."); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	open, err := p.expect(token.LEFT_BRACE, "Expected '{' to start block.")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{Token: open}
	block.Statements = []ast.Statement{}

	for !p.curTokenIs(token.RIGHT_BRACE) && !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	// At EOF this reports the unterminated block.
	if _, err := p.expect(token.RIGHT_BRACE, "Expected '}' to close block."); err != nil {
		return nil, err
	}

	return block, nil
}

// Expressions. Two arithmetic levels, both left-associative, plus at most
// one comparison on top.

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(token.COMPARATOR) {
		return p.parseInfixExpression(left, p.parseArithmetic)
	}

	return left, nil
}

func (p *Parser) parseArithmetic() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curOperatorIs("+", "-") {
		if left, err = p.parseInfixExpression(left, p.parseTerm); err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curOperatorIs("*", "/") {
		if left, err = p.parseInfixExpression(left, p.parseFactor); err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseInfixExpression(left ast.Expression, operand func() (ast.Expression, error)) (ast.Expression, error) {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	p.nextToken()

	right, err := operand()
	if err != nil {
		return nil, err
	}
	expression.Right = right

	return expression, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	switch {
	case p.curTokenIs(token.IDENTIFIER):
		ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		p.nextToken()
		return ident, nil
	case p.curTokenIs(token.NUMBER):
		lit := &ast.NumberLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
		p.nextToken()
		return lit, nil
	case p.curTokenIs(token.LEFT_PAREN):
		p.nextToken()
		exp, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RIGHT_PAREN, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return exp, nil
	default:
		return nil, p.fail("Expected number, variable, or expression.")
	}
}

func (p *Parser) curTokenIs(k token.Kind) bool {
	return p.curToken.Kind == k
}

func (p *Parser) curKeywordIs(word string) bool {
	return p.curToken.Is(token.KEYWORD, word)
}

func (p *Parser) curOperatorIs(ops ...string) bool {
	if !p.curTokenIs(token.OPERATOR) {
		return false
	}
	for _, op := range ops {
		if p.curToken.Lexeme == op {
			return true
		}
	}
	return false
}

// expect consumes the current token if it has kind k.
func (p *Parser) expect(k token.Kind, msg string) (token.Token, error) {
	if !p.curTokenIs(k) {
		return token.Token{}, p.fail(msg)
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

func (p *Parser) fail(msg string) error {
	return &SyntaxError{Message: msg, Token: p.curToken}
}
