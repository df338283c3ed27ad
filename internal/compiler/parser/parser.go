package parser

import (
	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/hadeslang/hades/internal/compiler/lexer"
	"github.com/hadeslang/hades/internal/compiler/token"
)

// Parser turns the lexer's token stream into a syntax tree. A Parser is
// single use and holds no state shared with other parsers.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
	prevEnd token.Position // end of the last consumed token
	primed  bool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.initializePratt()
	return p
}

// Parse parses a complete source file.
func Parse(src string) (*ast.SourceFile, error) {
	return NewParser(lexer.NewLexer(src)).ParseSourceFile()
}

// ParseExpr parses a standalone expression.
func ParseExpr(src string) (ast.Expression, error) {
	return NewParser(lexer.NewLexer(src)).ParseExpression()
}

// --- Token Handling ---
func (p *Parser) nextToken() error {
	p.prevEnd = p.curTok.End
	p.curTok = p.peekTok
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.peekTok = tok
	return nil
}

func (p *Parser) prime() error {
	if p.primed {
		return nil
	}
	p.primed = true
	if err := p.nextToken(); err != nil {
		return err
	}
	return p.nextToken()
}

// expect consumes the current token if it has the given type.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	tok := p.curTok
	if tok.Type != t {
		return tok, newParseError(tok, describeType(t))
	}
	return tok, p.nextToken()
}

func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// --- Source File ---

func (p *Parser) ParseSourceFile() (*ast.SourceFile, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	file := &ast.SourceFile{Definitions: []ast.Definition{}}

	for p.curTok.Type != token.TokenEOF {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		file.Definitions = append(file.Definitions, def)
	}

	file.Comments = p.l.Comments()
	file.Loc = token.Span{Start: token.Position{Line: 1, Column: 1}, End: p.curTok.Pos}
	return file, nil
}

// ParseExpression parses one expression that must span the whole input.
// Like initializers, a top-level `=` is not accepted.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	expr, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type != token.TokenEOF {
		return nil, newParseError(p.curTok, "end of input")
	}
	return expr, nil
}

func (p *Parser) parseDefinition() (ast.Definition, error) {
	switch p.curTok.Type {
	case token.TokenFn:
		return p.parseFunctionDefinition()
	case token.TokenLet:
		return p.parseVarDecl()
	case token.TokenIdent:
		if p.peekTok.Type != token.TokenLParen {
			return nil, newParseError(p.peekTok, "'('")
		}
		return p.parseFunctionCall()
	}
	return nil, newParseError(p.curTok, "'fn'", "'let'", "function call")
}

// --- Declarations ---

// parseFunctionDefinition parses `fn name(params): type { body }`
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	fnTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'fn'
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{
		Token:      fnTok,
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Body:       body,
		Loc:        p.spanFrom(fnTok.Pos),
	}, nil
}

// parseParameterList parses `( [name: type {, name: type}] )`
func (p *Parser) parseParameterList() ([]*ast.Parameter, error) {
	params := []*ast.Parameter{}
	if _, err := p.expect(token.TokenLParen); err != nil {
		return nil, err
	}
	if p.curTok.Type != token.TokenRParen {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
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
	return params, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	start := p.curTok.Pos
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{Name: name, Type: typ, Loc: p.spanFrom(start)}, nil
}

// parseType accepts a builtin type keyword or any identifier as a custom
// type reference. No symbol lookup is involved.
func (p *Parser) parseType() (*ast.TypeNode, error) {
	typeTok := p.curTok
	node := &ast.TypeNode{Token: typeTok, Name: typeTok.Literal, Loc: typeTok.Span()}

	switch {
	case typeTok.IsTypeKeyword():
		node.Builtin = true
	case typeTok.Type == token.TokenIdent:
	default:
		return nil, newParseError(typeTok, "'bool'", "'int'", "'void'", "type name")
	}
	return node, p.nextToken()
}

// parseVarDecl parses `let name = value;`
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	letTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'let'
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Token: letTok, Name: name, Value: value, Loc: p.spanFrom(letTok.Pos)}, nil
}

// parseName consumes an identifier token.
func (p *Parser) parseName() (*ast.Identifier, error) {
	tok, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal, Loc: tok.Span()}, nil
}

// --- Statements ---

// parseBlock parses `{ statements... }`
func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.TokenLBrace)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Token: lbrace, Statements: []ast.Statement{}}

	for p.curTok.Type != token.TokenRBrace {
		if p.curTok.Type == token.TokenEOF {
			return nil, newParseError(p.curTok, "'}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	if err := p.nextToken(); err != nil { // Consume '}'
		return nil, err
	}
	block.Loc = p.spanFrom(lbrace.Pos)
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.TokenReturn:
		return p.parseReturnStatement()
	case token.TokenLet:
		return p.parseVarDecl()
	case token.TokenIf:
		return p.parseIfStatement()
	case token.TokenWhile:
		return p.parseWhileStatement()
	case token.TokenFor:
		return p.parseForStatement()
	case token.TokenIdent:
		// identifier '=' is always an assignment at statement start
		switch p.peekTok.Type {
		case token.TokenAssign:
			return p.parseAssignmentStatement(true)
		case token.TokenLParen:
			return p.parseFunctionCall()
		}
		return nil, newParseError(p.peekTok, "'='", "'('")
	}
	return nil, newParseError(p.curTok, "statement")
}

// parseReturnStatement parses `return value;`
func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	returnTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'return'
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: returnTok, ReturnValue: value, Loc: p.spanFrom(returnTok.Pos)}, nil
}

// parseIfStatement parses `if (cond) block [else (block | if ...)]`
func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	ifTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'if'
		return nil, err
	}
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	consequence, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Token: ifTok, Condition: cond, Consequence: consequence}

	if p.curTok.Type == token.TokenElse {
		if err := p.nextToken(); err != nil { // Consume 'else'
			return nil, err
		}
		switch p.curTok.Type {
		case token.TokenIf:
			stmt.Alternative, err = p.parseIfStatement()
		case token.TokenLBrace:
			stmt.Alternative, err = p.parseBlock()
		default:
			return nil, newParseError(p.curTok, "'{'", "'if'")
		}
		if err != nil {
			return nil, err
		}
	}

	stmt.Loc = p.spanFrom(ifTok.Pos)
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	whileTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'while'
		return nil, err
	}
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: whileTok, Condition: cond, Body: body, Loc: p.spanFrom(whileTok.Pos)}, nil
}

// parseForStatement parses `for ([var_decl] cond; [assignment]) block`.
// The var_decl brings its own ';'. The update clause has none since ')'
// follows directly.
func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	forTok := p.curTok
	if err := p.nextToken(); err != nil { // Consume 'for'
		return nil, err
	}
	if _, err := p.expect(token.TokenLParen); err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Token: forTok}

	var err error
	if p.curTok.Type == token.TokenLet {
		if stmt.Init, err = p.parseVarDecl(); err != nil {
			return nil, err
		}
	}
	if stmt.Condition, err = p.parseValue(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon); err != nil {
		return nil, err
	}
	if p.curTok.Type == token.TokenIdent {
		if stmt.Update, err = p.parseAssignmentStatement(false); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.TokenRParen); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	stmt.Loc = p.spanFrom(forTok.Pos)
	return stmt, nil
}

// parseAssignmentStatement parses `name = value` followed by ';' when
// terminated is set.
func (p *Parser) parseAssignmentStatement(terminated bool) (*ast.AssignmentStatement, error) {
	start := p.curTok.Pos
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	assignTok, err := p.expect(token.TokenAssign)
	if err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if terminated {
		if _, err := p.expect(token.TokenSemicolon); err != nil {
			return nil, err
		}
	}
	return &ast.AssignmentStatement{Token: assignTok, Name: name, Value: value, Loc: p.spanFrom(start)}, nil
}

// parseFunctionCall parses the statement form `name(args);`
func (p *Parser) parseFunctionCall() (*ast.FunctionCall, error) {
	nameTok := p.curTok
	call, err := p.parseFunctionCallExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Token: nameTok, Call: call, Loc: p.spanFrom(nameTok.Pos)}, nil
}

// parseParenCondition parses `( condition )` for if and while.
func (p *Parser) parseParenCondition() (ast.Expression, error) {
	if _, err := p.expect(token.TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

