package lexer

import (
	"fmt"

	"github.com/hadeslang/hades/internal/compiler/token"
)

type LexErrorKind int

const (
	UnterminatedString LexErrorKind = iota + 1
	UnterminatedComment
	UnexpectedCharacter
	InvalidNumber
)

// LexError is fatal to the scan. Pos is where the offending lexeme starts.
type LexError struct {
	Kind LexErrorKind
	Pos  token.Position
	Msg  string
	Help string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: Lex Error: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func (e *LexError) Position() token.Position { return e.Pos }
func (e *LexError) HelpText() string         { return e.Help }
