package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hadeslang/hades/internal/compiler/diag"
)

// Every file under testdata/good must parse and survive formatting.
// Every file under testdata/bad starts with `// want: L:C <Kind> Error`
// naming where and how parsing must fail.

func corpus(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", dir, "*"+SourceExt))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatalf("no test files in testdata/%s", dir)
	}
	return files
}

func TestGoodCorpus(t *testing.T) {
	d := NewDriver(nil, Options{CheckRoundtrip: true})
	ctx := context.Background()

	for _, path := range corpus(t, "good") {
		t.Run(filepath.Base(path), func(t *testing.T) {
			file, src, err := d.ParseFile(ctx, path)
			if err != nil {
				var report strings.Builder
				_ = diag.Render(&report, src, err, diag.Options{Filename: path})
				t.Fatalf("unexpected error:\n%s", report.String())
			}
			if file == nil {
				t.Fatalf("ParseFile returned nil")
			}

			formatted, err := d.Format(ctx, src)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			again, err := d.Format(ctx, formatted)
			if err != nil {
				t.Fatalf("Format of formatted output failed: %v", err)
			}
			if again != formatted {
				t.Errorf("formatting is not idempotent\nfirst=\n%s\nsecond=\n%s", formatted, again)
			}
		})
	}
}

func TestBadCorpus(t *testing.T) {
	d := NewDriver(nil, Options{})
	ctx := context.Background()

	for _, path := range corpus(t, "bad") {
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			src := string(content)
			line, column, kind := parseWant(t, src)

			_, err = d.Parse(ctx, src)
			if err == nil {
				t.Fatalf("expected a %s, parse succeeded", kind)
			}
			if !IsSyntaxError(err) {
				t.Fatalf("expected a syntax error, got=%T %v", err, err)
			}
			var dg diag.Diagnostic
			if !errors.As(err, &dg) {
				t.Fatalf("error has no position: %v", err)
			}
			if pos := dg.Position(); pos.Line != line || pos.Column != column {
				t.Errorf("position expected=%d:%d, got=%s (%v)", line, column, pos, err)
			}
			if !strings.Contains(err.Error(), kind) {
				t.Errorf("expected %q in %q", kind, err.Error())
			}
			if dg.HelpText() == "" {
				t.Errorf("expected help text for %v", err)
			}
		})
	}
}

func parseWant(t *testing.T, src string) (line, column int, kind string) {
	t.Helper()
	header, _, _ := strings.Cut(src, "\n")
	want, ok := strings.CutPrefix(header, "// want: ")
	if !ok {
		t.Fatalf("missing `// want:` header, got %q", header)
	}
	pos, kind, _ := strings.Cut(want, " ")
	if _, err := fmt.Sscanf(pos, "%d:%d", &line, &column); err != nil {
		t.Fatalf("bad want position %q: %v", pos, err)
	}
	return line, column, kind
}
