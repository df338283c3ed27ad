// Package diag renders lexer and parser failures against the source text:
// a header, the offending line, a caret underline and the help text.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hadeslang/hades/internal/compiler/parser"
	"github.com/hadeslang/hades/internal/compiler/token"
	"golang.org/x/term"
	"golang.org/x/text/width"
)

const (
	ColorReset  = "\033[0m"
	ColorError  = "\033[1;31m"
	ColorGutter = "\033[1;34m"
	ColorHelp   = "\033[36m"
	ColorBold   = "\033[1m"
)

// Diagnostic is implemented by *lexer.LexError and *parser.ParseError.
type Diagnostic interface {
	error
	Position() token.Position
	HelpText() string
}

type Options struct {
	Filename string
	Color    bool
}

// IsTerminal reports whether w is a terminal, for colour auto-detection.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Render writes err to w. Errors that carry no source position are written
// as a single line.
func Render(w io.Writer, src string, err error, opts Options) error {
	paint := func(color, s string) string {
		if !opts.Color {
			return s
		}
		return color + s + ColorReset
	}

	var d Diagnostic
	if !errors.As(err, &d) {
		_, werr := fmt.Fprintf(w, "%s %s\n", paint(ColorError, "error:"), err)
		return werr
	}

	pos := d.Position()
	msg := strings.TrimPrefix(d.Error(), fmt.Sprintf("%d:%d: ", pos.Line, pos.Column))
	line := sourceLine(src, pos.Line)
	lineNo := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(lineNo))

	location := pos.String()
	if opts.Filename != "" {
		location = opts.Filename + ":" + location
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", paint(ColorError, "error:"), paint(ColorBold, msg))
	fmt.Fprintf(&b, "%s %s\n", paint(ColorGutter, gutter+"-->"), location)
	fmt.Fprintf(&b, "%s\n", paint(ColorGutter, gutter+" |"))
	fmt.Fprintf(&b, "%s %s\n", paint(ColorGutter, lineNo+" |"), line)
	fmt.Fprintf(&b, "%s %s%s\n", paint(ColorGutter, gutter+" |"),
		caretPadding(line, pos.Column), paint(ColorError, strings.Repeat("^", underlineWidth(err, line, pos))))
	if help := d.HelpText(); help != "" {
		fmt.Fprintf(&b, "%s %s\n", paint(ColorGutter, gutter+" ="), paint(ColorHelp, "help: "+help))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

// sourceLine returns the 1-based line of src without its terminator.
func sourceLine(src string, n int) string {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// caretPadding reproduces the line up to column as blanks, keeping tabs
// and doubling East Asian wide runes so the caret lands under the token.
func caretPadding(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		switch {
		case r == '\t':
			b.WriteByte('\t')
		default:
			b.WriteString(strings.Repeat(" ", runeWidth(r)))
		}
		col++
	}
	return b.String()
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// underlineWidth covers the unexpected token of a parse error, one column
// otherwise.
func underlineWidth(err error, line string, pos token.Position) int {
	var perr *parser.ParseError
	if !errors.As(err, &perr) || perr.Found.End.Line != pos.Line {
		return 1
	}
	n := perr.Found.End.Column - pos.Column
	if n < 1 {
		return 1
	}

	// measure in display columns
	w := 0
	col := 1
	for _, r := range line {
		if col >= pos.Column+n {
			break
		}
		if col >= pos.Column {
			w += runeWidth(r)
		}
		col++
	}
	return max(w, 1)
}
