package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenAssign    TokenType = "ASSIGN"    // =
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // /
	TokenPercent   TokenType = "PERCENT"   // %
	TokenBang      TokenType = "BANG"      // !
	TokenLess      TokenType = "LESS"      // <
	TokenGreater   TokenType = "GREATER"   // >
	TokenAmpersand TokenType = "AMPERSAND" // &
	TokenPipe      TokenType = "PIPE"      // |
	TokenColon     TokenType = "COLON"     // :
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenComma     TokenType = "COMMA"     // ,

	// Two character tokens
	TokenEqual        TokenType = "EQUAL"         // ==
	TokenNotEqual     TokenType = "NOT_EQUAL"     // !=
	TokenLessEqual    TokenType = "LESS_EQUAL"    // <=
	TokenGreaterEqual TokenType = "GREATER_EQUAL" // >=
	TokenAnd          TokenType = "AND"           // &&
	TokenOr           TokenType = "OR"            // ||

	// Keywords
	TokenFn     TokenType = "FN"     // fn
	TokenLet    TokenType = "LET"    // let
	TokenReturn TokenType = "RETURN" // return
	TokenIf     TokenType = "IF"     // if
	TokenElse   TokenType = "ELSE"   // else
	TokenWhile  TokenType = "WHILE"  // while
	TokenFor    TokenType = "FOR"    // for
	TokenTrue   TokenType = "TRUE"   // true
	TokenFalse  TokenType = "FALSE"  // false
	TokenVoid   TokenType = "VOID"   // void (used as a type literal)

	// Literals & Identifiers
	TokenString TokenType = "STRING" // "..."
	TokenNumber TokenType = "NUMBER" // 43
	TokenIdent  TokenType = "IDENT"  // Identifier (e.g. variable name)

	// Special
	TokenEOF TokenType = "EOF"

	// Types (used by parser to categorize type names)
	// NOTE: bool and int are lexed as TokenTypeLiteral, void as TokenVoid
	TokenTypeLiteral TokenType = "TYPE_LITERAL"
)

// Position locates a byte in the source. Line and Column are 1-based,
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

// Span is the half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Comment is a `//` or `/* */` comment. Text is the comment as written,
// delimiters included, without trailing whitespace.
type Comment struct {
	Text string
	Loc  Span
}

type Token struct {
	Type    TokenType
	Literal string // string tokens keep the raw text between the quotes
	Pos     Position
	End     Position
}

func (t Token) Span() Span { return Span{Start: t.Pos, End: t.End} }

func (t Token) IsTypeKeyword() bool {
	return t.Type == TokenTypeLiteral || t.Type == TokenVoid
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier '%s'", t.Literal)
	case TokenNumber:
		return fmt.Sprintf("number '%s'", t.Literal)
	case TokenString:
		return fmt.Sprintf("string \"%s\"", t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]TokenType{
	"fn":     TokenFn,
	"let":    TokenLet,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"for":    TokenFor,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"void":   TokenVoid,
	"bool":   TokenTypeLiteral,
	"int":    TokenTypeLiteral,
}

// LookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or TokenIdent if it's not a keyword.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

// Symbol returns the source spelling for operator and punctuation types.
func Symbol(t TokenType) string {
	return symbols[t]
}

var symbols = map[TokenType]string{
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenAssign:       "=",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenAsterisk:     "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenBang:         "!",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenAmpersand:    "&",
	TokenPipe:         "|",
	TokenColon:        ":",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenEqual:        "==",
	TokenNotEqual:     "!=",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenAnd:          "&&",
	TokenOr:           "||",
}
