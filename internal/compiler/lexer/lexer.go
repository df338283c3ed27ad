package lexer

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hadeslang/hades/internal/compiler/token"
)

// Lexer produces tokens on demand. It is not restartable: once an error
// or end of input has been reported the same result is returned forever.
type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // line of ch (1-indexed)
	column int // column of ch in runes (1-indexed)

	err      error // sticky lex error
	comments []token.Comment
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1, readPosition: 1}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// Tokenize returns a lazy token sequence over source. The sequence ends
// after the EOF token or after the first error.
func Tokenize(source string) iter.Seq2[token.Token, error] {
	return NewLexer(source).Tokens()
}

func (l *Lexer) Tokens() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := l.NextToken()
			if err != nil {
				yield(tok, err)
				return
			}
			if !yield(tok, nil) || tok.Type == token.TokenEOF {
				return
			}
		}
	}
}

// readChar advances the lexer's position and updates the current character.
// Line and column follow the character now under the cursor.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	prev := l.ch
	l.position = l.readPosition
	l.readPosition++
	if l.position < len(l.input) {
		l.ch = l.input[l.position]
	} else {
		l.ch = 0
	}

	switch {
	case prev == '\n':
		l.line++
		l.column = 1
	case l.atEOF() || utf8.RuneStart(l.ch):
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.column}
}

// Comments returns the comments skipped so far, in source order.
func (l *Lexer) Comments() []token.Comment {
	return l.comments
}

func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
	}
	return tok, err
}

func (l *Lexer) scan() (token.Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return token.Token{}, err
	}

	start := l.pos()
	if l.atEOF() {
		return token.Token{Type: token.TokenEOF, Pos: start, End: start}, nil
	}

	switch l.ch {
	case '=':
		return l.either('=', token.TokenAssign, token.TokenEqual, start), nil
	case '!':
		return l.either('=', token.TokenBang, token.TokenNotEqual, start), nil
	case '<':
		return l.either('=', token.TokenLess, token.TokenLessEqual, start), nil
	case '>':
		return l.either('=', token.TokenGreater, token.TokenGreaterEqual, start), nil
	case '&':
		return l.either('&', token.TokenAmpersand, token.TokenAnd, start), nil
	case '|':
		return l.either('|', token.TokenPipe, token.TokenOr, start), nil
	case '(':
		return l.single(token.TokenLParen, start), nil
	case ')':
		return l.single(token.TokenRParen, start), nil
	case '{':
		return l.single(token.TokenLBrace, start), nil
	case '}':
		return l.single(token.TokenRBrace, start), nil
	case '+':
		return l.single(token.TokenPlus, start), nil
	case '-':
		return l.single(token.TokenMinus, start), nil
	case '*':
		return l.single(token.TokenAsterisk, start), nil
	case '/':
		// comments were consumed by skipWhitespace
		return l.single(token.TokenSlash, start), nil
	case '%':
		return l.single(token.TokenPercent, start), nil
	case ':':
		return l.single(token.TokenColon, start), nil
	case ';':
		return l.single(token.TokenSemicolon, start), nil
	case ',':
		return l.single(token.TokenComma, start), nil
	case '"':
		return l.readString(start)
	}

	switch {
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdent(ident), ident, start), nil
	case isDigit(l.ch):
		return l.readNumber(start)
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return token.Token{}, &LexError{
		Kind: UnexpectedCharacter,
		Pos:  start,
		Msg:  fmt.Sprintf("unexpected character %q", r),
		Help: "remove or replace the invalid character",
	}
}

// newToken is a helper to create a token.Token ending at the cursor
func (l *Lexer) newToken(tokenType token.TokenType, literal string, start token.Position) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: start, End: l.pos()}
}

func (l *Lexer) single(tokenType token.TokenType, start token.Position) token.Token {
	lit := string(l.ch)
	l.readChar()
	return l.newToken(tokenType, lit, start)
}

// either emits two when the current char is followed by second, one otherwise.
func (l *Lexer) either(second byte, one, two token.TokenType, start token.Position) token.Token {
	if l.peekChar() != second {
		return l.single(one, start)
	}
	l.readChar()
	l.readChar()
	return l.newToken(two, l.input[start.Offset:l.position], start)
}

func (l *Lexer) skipWhitespace() error {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.readComment()
		case l.ch == '/' && l.peekChar() == '*':
			if err := l.readBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) readComment() {
	start := l.pos()
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	l.addComment(start)
}

func (l *Lexer) addComment(start token.Position) {
	l.comments = append(l.comments, token.Comment{
		Text: strings.TrimRight(l.input[start.Offset:l.position], " \t\r\f\v"),
		Loc:  token.Span{Start: start, End: l.pos()},
	})
}

func (l *Lexer) readBlockComment() error {
	start := l.pos()
	l.readChar() // Consume '/'
	l.readChar() // Consume '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			l.addComment(start)
			return nil
		}
		l.readChar()
	}
	return &LexError{
		Kind: UnterminatedComment,
		Pos:  start,
		Msg:  "unterminated block comment",
		Help: "add '*/' to close the comment",
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	l.readChar() // Consume opening "
	contentStart := l.position

	for {
		if l.atEOF() {
			return token.Token{}, &LexError{
				Kind: UnterminatedString,
				Pos:  start,
				Msg:  "unterminated string literal",
				Help: "add a closing quote '\"' to complete the string",
			}
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar() // the escaped char never terminates the string
			if l.atEOF() {
				continue
			}
		}
		l.readChar()
	}

	lit := l.input[contentStart:l.position]
	l.readChar() // Consume closing "
	return l.newToken(token.TokenString, lit, start), nil
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.position
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[begin:l.position]
	if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
		return token.Token{}, &LexError{
			Kind: InvalidNumber,
			Pos:  start,
			Msg:  fmt.Sprintf("invalid number '%s': out of range", literal),
			Help: "integer literals must fit in 64 bits",
		}
	}
	return l.newToken(token.TokenNumber, literal, start), nil
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
