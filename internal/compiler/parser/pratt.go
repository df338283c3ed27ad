package parser

import (
	"strconv"

	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/hadeslang/hades/internal/compiler/lexer"
	"github.com/hadeslang/hades/internal/compiler/token"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	PrecLowest
	PrecAssign   // =
	PrecOr       // ||
	PrecAnd      // &&
	PrecBitOr    // |
	PrecBitAnd   // &
	PrecEquality // ==, !=
	PrecCompare  // <, <=, >, >=
	PrecSum      // +, -
	PrecProduct  // *, /, %
	PrecPrefix   // !x, -x
)

var precedences = map[token.TokenType]int{
	token.TokenAssign:       PrecAssign,
	token.TokenOr:           PrecOr,
	token.TokenAnd:          PrecAnd,
	token.TokenPipe:         PrecBitOr,
	token.TokenAmpersand:    PrecBitAnd,
	token.TokenEqual:        PrecEquality,
	token.TokenNotEqual:     PrecEquality,
	token.TokenLess:         PrecCompare,
	token.TokenLessEqual:    PrecCompare,
	token.TokenGreater:      PrecCompare,
	token.TokenGreaterEqual: PrecCompare,
	token.TokenPlus:         PrecSum,
	token.TokenMinus:        PrecSum,
	token.TokenAsterisk:     PrecProduct,
	token.TokenSlash:        PrecProduct,
	token.TokenPercent:      PrecProduct,
}

func tokenPrecedence(tok token.Token) int {
	if p, ok := precedences[tok.Type]; ok {
		return p
	}
	return PrecLowest
}

// OperatorPrecedence returns the binding power of a binary operator
// spelling, or PrecLowest for anything else.
func OperatorPrecedence(op string) int {
	for t, prec := range precedences {
		if token.Symbol(t) == op {
			return prec
		}
	}
	return PrecLowest
}

// --- Expression Parsing ---

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) initializePratt() {
	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.infixParseFns = make(map[token.TokenType]infixParseFn)

	// Prefixes (NUDs)
	p.registerPrefix(token.TokenIdent, p.parseIdentifierExpression)
	p.registerPrefix(token.TokenNumber, p.parseNumberLiteral)
	p.registerPrefix(token.TokenString, p.parseStringLiteral)
	p.registerPrefix(token.TokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(token.TokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(token.TokenLParen, p.parseGroupedExpression)
	p.registerPrefix(token.TokenBang, p.parseUnaryExpression)
	p.registerPrefix(token.TokenMinus, p.parseUnaryExpression)

	// Infixes (LEDs)
	for t := range precedences {
		p.registerInfix(t, p.parseInfixExpression)
	}
}

// parseValue parses the right-hand side of a declaration, assignment or
// return, and loop or branch conditions. A bare `=` ends the expression
// here; it is only reachable inside parentheses, call arguments and
// struct field values.
func (p *Parser) parseValue() (ast.Expression, error) {
	return p.parseExpression(PrecAssign)
}

// parseExpression is the main entry point for Pratt parsing.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix := p.prefixParseFns[p.curTok.Type]
	if prefix == nil {
		return nil, newParseError(p.curTok, "expression")
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence < tokenPrecedence(p.curTok) {
		infix := p.infixParseFns[p.curTok.Type]
		if infix == nil {
			return left, nil
		}
		if left, err = infix(left); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// --- Pratt NUD/Prefix Functions ---

// parseIdentifierExpression looks one token ahead: '(' starts a call and
// '{' a struct literal.
func (p *Parser) parseIdentifierExpression() (ast.Expression, error) {
	switch {
	case p.peekTok.Type == token.TokenLParen:
		return p.parseFunctionCallExpr()
	case p.peekTok.Type == token.TokenLBrace:
		return p.parseStructInit()
	}
	return p.parseName()
}

func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	tok := p.curTok
	// range checked by the lexer
	value, _ := strconv.ParseInt(tok.Literal, 10, 64)
	return &ast.NumberLiteral{Token: tok, Value: value, Loc: tok.Span()}, p.nextToken()
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	tok := p.curTok
	return &ast.StringLiteral{Token: tok, Value: lexer.Unescape(tok.Literal), Loc: tok.Span()}, p.nextToken()
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, error) {
	tok := p.curTok
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TokenTrue, Loc: tok.Span()}, p.nextToken()
}

// parseGroupedExpression returns the inner expression; parentheses leave
// no node behind.
func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	if err := p.nextToken(); err != nil { // Consume '('
		return nil, err
	}
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	opTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume operator
		return nil, err
	}
	operand, err := p.parseExpression(PrecPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{
		Token:    opTok,
		Operator: opTok.Literal,
		Operand:  operand,
		Loc:      p.spanFrom(opTok.Pos),
	}, nil
}

// parseFunctionCallExpr parses `name(arg, ...)`. Arguments are full
// expressions, so `=` and struct literals are allowed in them.
func (p *Parser) parseFunctionCallExpr() (*ast.FunctionCallExpr, error) {
	nameTok := p.curTok
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLParen); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	if p.curTok.Type != token.TokenRParen {
		for {
			arg, err := p.parseExpression(PrecLowest)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curTok.Type != token.TokenComma {
				break
			}
			if err := p.nextToken(); err != nil { // Consume ','
				return nil, err
			}
		}
	}
	if p.curTok.Type != token.TokenRParen {
		return nil, newParseError(p.curTok, "','", "')'")
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	return &ast.FunctionCallExpr{Token: nameTok, Function: name, Arguments: args, Loc: p.spanFrom(nameTok.Pos)}, nil
}

// parseStructInit parses `Name { field: value [,] ... }`. Commas between
// fields are optional.
func (p *Parser) parseStructInit() (ast.Expression, error) {
	nameTok := p.curTok
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBrace); err != nil {
		return nil, err
	}

	fields := []*ast.FieldInit{}
	for p.curTok.Type != token.TokenRBrace {
		if p.curTok.Type != token.TokenIdent {
			return nil, newParseError(p.curTok, "identifier", "'}'")
		}
		field, err := p.parseFieldInit()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if p.curTok.Type == token.TokenComma {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.nextToken(); err != nil { // Consume '}'
		return nil, err
	}

	return &ast.StructInit{Token: nameTok, Name: name, Fields: fields, Loc: p.spanFrom(nameTok.Pos)}, nil
}

func (p *Parser) parseFieldInit() (*ast.FieldInit, error) {
	start := p.curTok.Pos
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	return &ast.FieldInit{Name: name, Value: value, Loc: p.spanFrom(start)}, nil
}

// --- Pratt LED/Infix Functions ---

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, error) {
	opTok := p.curTok
	precedence := tokenPrecedence(opTok)
	if err := p.nextToken(); err != nil { // Consume operator
		return nil, err
	}
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{
		Token:    opTok,
		Left:     left,
		Operator: opTok.Literal,
		Right:    right,
		Loc:      token.Span{Start: left.Span().Start, End: p.prevEnd},
	}, nil
}
