package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	fmtWrite, fmtList, fmtExpr, astExpr = false, false, "", false
	configPath, logLevel, colorMode = "", "", ""
	for _, name := range []string{"config", "log-level", "color"} {
		rootCmd.PersistentFlags().Lookup(name).Changed = false
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.cue")
	if err := os.WriteFile(path, []byte(`color: "never"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitScaffoldsProject(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, dir)
	project := filepath.Join(dir, "demo")

	stdout, _, err := run(t, "--config", conf, "init", project)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, `project "demo" initialized`) {
		t.Errorf("unexpected output %q", stdout)
	}
	for _, name := range []string{"hades.cue", "src/main.hd", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(project, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// the scaffolded config and source must be accepted by the tool itself
	stdout, stderr, err := run(t, "--config", filepath.Join(project, "hades.cue"), "check", filepath.Join(project, "src"))
	if err != nil {
		t.Fatalf("check of scaffolded project failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "ok  ") {
		t.Errorf("unexpected output %q", stdout)
	}

	if _, _, err := run(t, "--config", conf, "init", project); err == nil {
		t.Errorf("init into an existing directory must fail")
	}
}

func TestCheckReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, dir)
	good := writeSource(t, dir, "good.hd", "let x = 1;\n")
	bad := writeSource(t, dir, "bad.hd", "let x = 1\n")

	stdout, stderr, err := run(t, "--config", conf, "check", good, bad)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got=%v", err)
	}
	if !strings.Contains(stdout, "ok  "+good) {
		t.Errorf("expected %s to pass, got=%q", good, stdout)
	}
	for _, want := range []string{"Syntax Error", "--> " + bad + ":2:1", "help: try adding a ';'", "1 of 2 files failed"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in stderr:\n%s", want, stderr)
		}
	}
	if strings.Contains(stderr, "\033[") {
		t.Errorf("colour must be off with color: never")
	}
}

func TestCheckNeedsSources(t *testing.T) {
	conf := writeConfig(t, t.TempDir())
	if _, _, err := run(t, "--config", conf, "check"); err == nil {
		t.Errorf("check without files or configured sources must fail")
	}
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, dir)
	messy := writeSource(t, dir, "messy.hd", "let x=1+2;")
	clean := writeSource(t, dir, "clean.hd", "let y = 2;\n")

	stdout, _, err := run(t, "--config", conf, "fmt", messy)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if stdout != "let x = 1 + 2;\n" {
		t.Errorf("fmt output got=%q", stdout)
	}

	stdout, _, err = run(t, "--config", conf, "fmt", "-l", messy, clean)
	if err != nil {
		t.Fatalf("fmt -l failed: %v", err)
	}
	if strings.TrimSpace(stdout) != messy {
		t.Errorf("fmt -l expected only %s, got=%q", messy, stdout)
	}

	if _, _, err := run(t, "--config", conf, "fmt", "-w", messy); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	content, _ := os.ReadFile(messy)
	if string(content) != "let x = 1 + 2;\n" {
		t.Errorf("fmt -w left %q", content)
	}

	commented := writeSource(t, dir, "commented.hd", "// entry point\nfn main(): void {\n/* keep me */\nlet x=1; // trailing\n}\n")
	if _, _, err := run(t, "--config", conf, "fmt", "-w", commented); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	content, _ = os.ReadFile(commented)
	expected := "// entry point\nfn main(): void {\n    /* keep me */\n    let x = 1; // trailing\n}\n"
	if string(content) != expected {
		t.Errorf("fmt -w expected=%q, got=%q", expected, content)
	}

	stdout, _, err = run(t, "--config", conf, "fmt", "-e", "(a+b)*(c)")
	if err != nil {
		t.Fatalf("fmt -e failed: %v", err)
	}
	if stdout != "(a + b) * c\n" {
		t.Errorf("fmt -e got=%q", stdout)
	}
}

func TestAstTokensOutline(t *testing.T) {
	dir := t.TempDir()
	conf := writeConfig(t, dir)
	src := writeSource(t, dir, "main.hd", "fn f(a: int): int {\n    return a;\n}\n")

	stdout, _, err := run(t, "--config", conf, "ast", src)
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "source_file") || !strings.Contains(stdout, "return_statement") {
		t.Errorf("unexpected ast dump:\n%s", stdout)
	}

	stdout, _, err = run(t, "--config", conf, "ast", "-e", "Point { x: 1 }")
	if err != nil {
		t.Fatalf("ast -e failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "struct_init") || !strings.Contains(stdout, "field_init") {
		t.Errorf("unexpected expression dump:\n%s", stdout)
	}

	_, stderr, err := run(t, "--config", conf, "ast", "-e", "a +")
	if !errors.Is(err, errReported) || !strings.Contains(stderr, "Syntax Error") {
		t.Errorf("expected a rendered syntax error, got=%v\n%s", err, stderr)
	}

	stdout, _, err = run(t, "--config", conf, "tokens", src)
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	if !strings.Contains(stdout, `"return"`) {
		t.Errorf("unexpected token listing:\n%s", stdout)
	}

	stdout, _, err = run(t, "--config", conf, "outline", src)
	if err != nil {
		t.Fatalf("outline failed: %v", err)
	}
	if !strings.Contains(stdout, "f(a: int): int") || !strings.Contains(stdout, "a: int") {
		t.Errorf("unexpected outline:\n%s", stdout)
	}
}

func TestInvalidColorFlag(t *testing.T) {
	conf := writeConfig(t, t.TempDir())
	_, _, err := run(t, "--config", conf, "--color", "sometimes", "outline", "x.hd")
	if err == nil || !strings.Contains(err.Error(), "invalid --color") {
		t.Errorf("expected an invalid --color error, got=%v", err)
	}
}

func TestShadowedConfigIsLogged(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("hades.cue", []byte(`log_level: "debug"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "explicit.cue")
	if err := os.WriteFile(explicit, []byte("log_level: \"info\"\ncolor: \"never\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, dir, "main.hd", "let x = 1;\n")

	_, stderr, err := run(t, "--config", explicit, "check", src)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "config value set in several files") || !strings.Contains(stderr, "path=log_level") {
		t.Errorf("expected a shadowing record, got=%q", stderr)
	}
	if strings.Contains(stderr, "config loaded") {
		t.Errorf("the explicit file's info level must win over debug, got=%q", stderr)
	}
}
