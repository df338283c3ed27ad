package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/hadeslang/hades/internal/compiler/lexer"
	"github.com/hadeslang/hades/internal/compiler/parser"
	"github.com/hadeslang/hades/internal/compiler/printer"
	"github.com/hadeslang/hades/internal/compiler/symbols"
	"github.com/hadeslang/hades/internal/compiler/token"
	"github.com/hadeslang/hades/internal/logs"
)

const SourceExt = ".hd"

var ErrRoundTrip = errors.New("formatted output does not parse to the same tree and comments")

// Driver runs the front end over source text and files. The zero value
// is not usable; construct it with NewDriver.
type Driver struct {
	logger         *slog.Logger
	indent         string
	checkRoundtrip bool
}

type Options struct {
	Indent         string
	CheckRoundtrip bool
}

func NewDriver(logger *slog.Logger, opts Options) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		logger:         logger,
		indent:         opts.Indent,
		checkRoundtrip: opts.CheckRoundtrip,
	}
}

// Parse parses src. Failures are a *lexer.LexError or *parser.ParseError.
func (d *Driver) Parse(ctx context.Context, src string) (*ast.SourceFile, error) {
	start := time.Now()
	file, err := parseProgram(src)
	if err != nil {
		d.logger.DebugContext(ctx, "parse failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	nodes := 0
	ast.Inspect(file, func(ast.Node) bool {
		nodes++
		return true
	})
	d.logger.DebugContext(ctx, "parsed",
		"definitions", len(file.Definitions),
		"nodes", nodes,
		"elapsed", time.Since(start),
	)
	return file, nil
}

// ParseFile reads and parses path. The source text is returned even when
// parsing fails so callers can render diagnostics against it.
func (d *Driver) ParseFile(ctx context.Context, path string) (*ast.SourceFile, string, error) {
	ctx = logs.WithFile(ctx, path)
	src, err := readSource(path)
	if err != nil {
		return nil, "", err
	}
	file, err := d.Parse(ctx, src)
	return file, src, err
}

// Tokens lexes src completely, for the token listing.
// The tokens before a lex failure are returned with the error.
func (d *Driver) Tokens(ctx context.Context, src string) ([]token.Token, error) {
	var out []token.Token
	for tok, err := range lexer.Tokenize(src) {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	d.logger.DebugContext(ctx, "lexed", "tokens", len(out))
	return out, nil
}

// Format returns the canonical text of src, comments included. With
// round-trip checking on, the output is re-parsed and must yield an equal
// tree carrying the same comments.
func (d *Driver) Format(ctx context.Context, src string) (string, error) {
	file, err := d.Parse(ctx, src)
	if err != nil {
		return "", err
	}
	out := printer.NewPrinter(d.indent).Print(file)

	if d.checkRoundtrip {
		again, err := parseProgram(out)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRoundTrip, err)
		}
		if !ast.Equal(file, again) {
			return "", ErrRoundTrip
		}
		if !sameComments(file.Comments, again.Comments) {
			return "", fmt.Errorf("%w: %d comments in, %d out", ErrRoundTrip, len(file.Comments), len(again.Comments))
		}
	}
	return out, nil
}

// ParseExpr parses src as a single expression.
func (d *Driver) ParseExpr(ctx context.Context, src string) (ast.Expression, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		d.logger.DebugContext(ctx, "parse failed", "error", err)
		return nil, err
	}
	return expr, nil
}

// FormatExpr returns the canonical text of a single expression.
func (d *Driver) FormatExpr(ctx context.Context, src string) (string, error) {
	expr, err := d.ParseExpr(ctx, src)
	if err != nil {
		return "", err
	}
	return printer.NewPrinter(d.indent).Expression(expr), nil
}

// FormatFile formats path and reports whether its content would change.
// With write set, changed files are rewritten in place.
func (d *Driver) FormatFile(ctx context.Context, path string, write bool) (string, bool, error) {
	ctx = logs.WithFile(ctx, path)
	src, err := readSource(path)
	if err != nil {
		return "", false, err
	}
	out, err := d.Format(ctx, src)
	if err != nil {
		return src, false, err
	}
	changed := out != src
	if changed && write {
		if err := writeSource(path, out); err != nil {
			return out, changed, err
		}
		d.logger.InfoContext(ctx, "formatted")
	}
	return out, changed, nil
}

// Outline lists the declarations and struct constructions in src.
func (d *Driver) Outline(ctx context.Context, src string) ([]symbols.SymbolInfo, error) {
	file, err := d.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return symbols.Collect(file), nil
}

// ExpandSources resolves glob patterns and directories into a sorted list
// of source files. Directories are walked for SourceExt files; files named
// explicitly must carry the extension.
func (d *Driver) ExpandSources(ctx context.Context, patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// let the read report it
			matches = []string{pattern}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.IsDir() {
				if err := validateExtension(m); err != nil {
					d.logger.WarnContext(ctx, "skipping file", "path", m, "error", err)
					continue
				}
				out = append(out, m)
				continue
			}
			err = filepath.WalkDir(m, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !entry.IsDir() && filepath.Ext(path) == SourceExt {
					out = append(out, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}

func writeSource(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	return nil
}

func sameComments(a, b []token.Comment) bool {
	return slices.EqualFunc(a, b, func(x, y token.Comment) bool {
		return x.Text == y.Text
	})
}

func parseProgram(src string) (*ast.SourceFile, error) {
	lex := lexer.NewLexer(src)
	p := parser.NewParser(lex)
	return p.ParseSourceFile()
}

// IsSyntaxError reports whether err is a lexical or grammatical failure
// rather than an I/O one.
func IsSyntaxError(err error) bool {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	return errors.As(err, &lexErr) || errors.As(err, &parseErr)
}
