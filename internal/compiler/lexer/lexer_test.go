package lexer

import (
	"errors"
	"testing"

	"github.com/hadeslang/hades/internal/compiler/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	var toks []token.Token
	for tok, err := range Tokenize(src) {
		if err != nil {
			t.Fatalf("Tokenize(%q) unexpected error: %v", src, err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestNextToken(t *testing.T) {
	input := `fn add(a: int, b: Point): bool {
  // line comment
  let s = "hi \"there\"";
  /* block
     comment */
  return a <= b && !c || d != 10 % 3;
}`

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.TokenFn, "fn"},
		{token.TokenIdent, "add"},
		{token.TokenLParen, "("},
		{token.TokenIdent, "a"},
		{token.TokenColon, ":"},
		{token.TokenTypeLiteral, "int"},
		{token.TokenComma, ","},
		{token.TokenIdent, "b"},
		{token.TokenColon, ":"},
		{token.TokenIdent, "Point"},
		{token.TokenRParen, ")"},
		{token.TokenColon, ":"},
		{token.TokenTypeLiteral, "bool"},
		{token.TokenLBrace, "{"},
		{token.TokenLet, "let"},
		{token.TokenIdent, "s"},
		{token.TokenAssign, "="},
		{token.TokenString, `hi \"there\"`},
		{token.TokenSemicolon, ";"},
		{token.TokenReturn, "return"},
		{token.TokenIdent, "a"},
		{token.TokenLessEqual, "<="},
		{token.TokenIdent, "b"},
		{token.TokenAnd, "&&"},
		{token.TokenBang, "!"},
		{token.TokenIdent, "c"},
		{token.TokenOr, "||"},
		{token.TokenIdent, "d"},
		{token.TokenNotEqual, "!="},
		{token.TokenNumber, "10"},
		{token.TokenPercent, "%"},
		{token.TokenNumber, "3"},
		{token.TokenSemicolon, ";"},
		{token.TokenRBrace, "}"},
		{token.TokenEOF, ""},
	}

	toks := collect(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got=%d", len(expected), len(toks))
	}
	for i, exp := range expected {
		if toks[i].Type != exp.typ {
			t.Errorf("tokens[%d] type wrong. expected=%s, got=%s", i, exp.typ, toks[i].Type)
		}
		if toks[i].Literal != exp.literal {
			t.Errorf("tokens[%d] literal wrong. expected=%q, got=%q", i, exp.literal, toks[i].Literal)
		}
	}
}

func TestSingleCharOperators(t *testing.T) {
	toks := collect(t, "= == < > & | + - * / , ;")
	want := []token.TokenType{
		token.TokenAssign, token.TokenEqual, token.TokenLess, token.TokenGreater,
		token.TokenAmpersand, token.TokenPipe, token.TokenPlus, token.TokenMinus,
		token.TokenAsterisk, token.TokenSlash, token.TokenComma, token.TokenSemicolon,
		token.TokenEOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("tokens[%d] expected=%s, got=%s", i, w, toks[i].Type)
		}
	}
}

func TestKeywordLongestMatch(t *testing.T) {
	toks := collect(t, "fnord fn letter let true truex _int int")
	want := []token.TokenType{
		token.TokenIdent, token.TokenFn, token.TokenIdent, token.TokenLet,
		token.TokenTrue, token.TokenIdent, token.TokenIdent, token.TokenTypeLiteral,
		token.TokenEOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("tokens[%d] (%q) expected=%s, got=%s", i, toks[i].Literal, w, toks[i].Type)
		}
	}
}

func TestPositions(t *testing.T) {
	toks := collect(t, "let x\n  = \"é\" y;")
	tests := []struct {
		idx  int
		want token.Position
	}{
		{0, token.Position{Offset: 0, Line: 1, Column: 1}},
		{1, token.Position{Offset: 4, Line: 1, Column: 5}},
		{2, token.Position{Offset: 8, Line: 2, Column: 3}},
		{3, token.Position{Offset: 10, Line: 2, Column: 5}},
		// "é" is two bytes but one column
		{4, token.Position{Offset: 15, Line: 2, Column: 9}},
	}
	for _, tt := range tests {
		if got := toks[tt.idx].Pos; got != tt.want {
			t.Errorf("tokens[%d] (%q) pos expected=%+v, got=%+v", tt.idx, toks[tt.idx].Literal, tt.want, got)
		}
	}
	if end := toks[3].End; end.Offset != 14 || end.Column != 8 {
		t.Errorf("string end expected offset 14 column 8, got=%+v", end)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind LexErrorKind
		pos  token.Position
	}{
		{"unterminated string", `let x = "abc;`, UnterminatedString, token.Position{Offset: 8, Line: 1, Column: 9}},
		{"escaped quote at end", `"abc\"`, UnterminatedString, token.Position{Offset: 0, Line: 1, Column: 1}},
		{"trailing backslash", `"abc\`, UnterminatedString, token.Position{Offset: 0, Line: 1, Column: 1}},
		{"unterminated comment", "x /* never\nclosed", UnterminatedComment, token.Position{Offset: 2, Line: 1, Column: 3}},
		{"unexpected character", "let x = 1 @ 2;", UnexpectedCharacter, token.Position{Offset: 10, Line: 1, Column: 11}},
		{"number overflow", "99999999999999999999", InvalidNumber, token.Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got error
			for _, err := range Tokenize(tt.src) {
				if err != nil {
					got = err
				}
			}
			var lexErr *LexError
			if !errors.As(got, &lexErr) {
				t.Fatalf("expected *LexError, got=%v", got)
			}
			if lexErr.Kind != tt.kind {
				t.Errorf("kind expected=%d, got=%d", tt.kind, lexErr.Kind)
			}
			if lexErr.Pos != tt.pos {
				t.Errorf("pos expected=%+v, got=%+v", tt.pos, lexErr.Pos)
			}
			if lexErr.Help == "" {
				t.Errorf("expected help text")
			}
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	l := NewLexer(`"open`)
	_, err1 := l.NextToken()
	_, err2 := l.NextToken()
	if err1 == nil || err1 != err2 {
		t.Fatalf("expected the same error twice, got=%v and %v", err1, err2)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := NewLexer("   // only a comment")
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != token.TokenEOF {
			t.Fatalf("expected EOF, got=%s", tok.Type)
		}
	}
}

func TestTokenizeStopsEarly(t *testing.T) {
	n := 0
	for range Tokenize("a b c d") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2 tokens, got=%d", n)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`tab\there`, "tab\there"},
		{`q\"q`, `q"q`},
		{`back\\slash`, `back\slash`},
		{`\x`, "x"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.raw); got != tt.want {
			t.Errorf("Unescape(%q) expected=%q, got=%q", tt.raw, tt.want, got)
		}
		if got := Unescape(Escape(tt.want)); got != tt.want {
			t.Errorf("Unescape(Escape(%q)) got=%q", tt.want, got)
		}
	}
}

func TestComments(t *testing.T) {
	l := NewLexer("let x = 1; // one  \r\n/* two\n   lines */ x\n//")
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type == token.TokenEOF {
			break
		}
	}

	tests := []struct {
		text  string
		start token.Position
		end   token.Position
	}{
		{"// one", token.Position{Offset: 11, Line: 1, Column: 12}, token.Position{Offset: 20, Line: 1, Column: 21}},
		{"/* two\n   lines */", token.Position{Offset: 21, Line: 2, Column: 1}, token.Position{Offset: 39, Line: 3, Column: 12}},
		{"//", token.Position{Offset: 42, Line: 4, Column: 1}, token.Position{Offset: 44, Line: 4, Column: 3}},
	}
	comments := l.Comments()
	if len(comments) != len(tests) {
		t.Fatalf("expected %d comments, got=%+v", len(tests), comments)
	}
	for i, tt := range tests {
		c := comments[i]
		if c.Text != tt.text || c.Loc.Start != tt.start || c.Loc.End != tt.end {
			t.Errorf("comments[%d] expected=%q %s-%s, got=%q %s", i, tt.text, tt.start, tt.end, c.Text, c.Loc)
		}
	}
}
