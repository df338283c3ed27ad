package parser

import (
	"fmt"
	"strings"

	"github.com/hadeslang/hades/internal/compiler/token"
)

// ParseError reports the first structural mismatch. Parsing stops there;
// no partial tree is returned.
type ParseError struct {
	Expected []string
	Found    token.Token
	Pos      token.Position
	Help     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: Syntax Error: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, joinExpected(e.Expected), e.Found.Describe())
}

func (e *ParseError) Position() token.Position { return e.Pos }
func (e *ParseError) HelpText() string         { return e.Help }

func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// describeType names a token type the way it is written in messages.
func describeType(t token.TokenType) string {
	if sym := token.Symbol(t); sym != "" {
		return "'" + sym + "'"
	}
	switch t {
	case token.TokenIdent:
		return "identifier"
	case token.TokenNumber:
		return "number"
	case token.TokenString:
		return "string"
	case token.TokenEOF:
		return "end of input"
	}
	return "'" + strings.ToLower(string(t)) + "'"
}

func newParseError(found token.Token, expected ...string) *ParseError {
	e := &ParseError{Expected: expected, Found: found, Pos: found.Pos}
	switch {
	case found.Type == token.TokenEOF:
		e.Help = "try completing the expression or statement"
	case len(expected) == 1 && expected[0] == "';'":
		e.Help = "try adding a ';' at the end of the statement"
	case len(expected) > 0:
		e.Help = "try adding " + joinExpected(expected)
	}
	return e
}
