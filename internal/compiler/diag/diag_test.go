package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/hadeslang/hades/internal/compiler/parser"
)

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := parser.Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) expected an error", src)
	}
	return err
}

func format(src string, err error, opts Options) string {
	var b strings.Builder
	_ = Render(&b, src, err, opts)
	return b.String()
}

func TestRenderParseError(t *testing.T) {
	src := "let x = 1"
	got := format(src, parseErr(t, src), Options{Filename: "main.hd"})
	expected := "error: Syntax Error: expected ';', found end of input\n" +
		" --> main.hd:1:10\n" +
		"  |\n" +
		"1 | let x = 1\n" +
		"  |          ^\n" +
		"  = help: try adding a ';' at the end of the statement\n"
	if got != expected {
		t.Errorf("Format expected=\n%s\ngot=\n%s", expected, got)
	}
}

func TestUnderlineCoversToken(t *testing.T) {
	src := "fn f(): int { return 1 abc; }"
	got := format(src, parseErr(t, src), Options{})
	if !strings.Contains(got, "  | "+strings.Repeat(" ", 23)+"^^^\n") {
		t.Errorf("expected a three-column underline at column 24, got=\n%s", got)
	}
}

func TestRenderLexError(t *testing.T) {
	src := "fn main(): void {\n    let s = \"open;\n}"
	got := format(src, parseErr(t, src), Options{Filename: "a.hd"})
	if !strings.Contains(got, "Lex Error") {
		t.Errorf("expected a lex error header, got=\n%s", got)
	}
	if !strings.Contains(got, " --> a.hd:2:13\n") {
		t.Errorf("expected location a.hd:2:13, got=\n%s", got)
	}
	if !strings.Contains(got, "2 |     let s = \"open;\n") {
		t.Errorf("expected the offending line, got=\n%s", got)
	}
	if !strings.Contains(got, "help: ") {
		t.Errorf("expected help text, got=\n%s", got)
	}
}

func TestCaretAlignment(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		caret string
	}{
		// wide runes take two display columns
		{"wide", `let s = "名前" @;`, "  | " + strings.Repeat(" ", 15) + "^\n"},
		// tabs are kept so the caret lines up in any tab width
		{"tab", "\tlet x = 1", "  | \t" + strings.Repeat(" ", 9) + "^\n"},
	}
	for _, tt := range tests {
		got := format(tt.src, parseErr(t, tt.src), Options{})
		if !strings.Contains(got, tt.caret) {
			t.Errorf("%s: expected caret line %q in\n%s", tt.name, tt.caret, got)
		}
	}
}

func TestRenderPlainError(t *testing.T) {
	got := format("", errors.New("open main.hd: no such file"), Options{})
	if got != "error: open main.hd: no such file\n" {
		t.Errorf("got=%q", got)
	}
}

func TestColor(t *testing.T) {
	src := "let x = 1"
	err := parseErr(t, src)
	if got := format(src, err, Options{Color: true}); !strings.Contains(got, ColorError) || !strings.Contains(got, ColorReset) {
		t.Errorf("expected colour codes, got=%q", got)
	}
	if got := format(src, err, Options{}); strings.Contains(got, "\033[") {
		t.Errorf("expected no colour codes, got=%q", got)
	}
}
