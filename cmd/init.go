package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hadeslang/hades/internal/compiler/lexer"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new Hades project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initRun,
}

func initRun(cmd *cobra.Command, args []string) error {
	var (
		targetDir   string
		projectName string
	)

	// targetDir is where files go, projectName is for templating
	if len(args) == 1 {
		targetDir = args[0]
		projectName = filepath.Base(args[0])
	} else {
		targetDir = "."
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectName = filepath.Base(cwd)
	}

	// a new subdirectory must not exist yet
	if targetDir != "." {
		if _, err := os.Stat(targetDir); err == nil {
			return fmt.Errorf("directory %q already exists", targetDir)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "↪ scaffolding new project %q ...\n", projectName)

	if err := os.MkdirAll(filepath.Join(targetDir, "src"), 0o755); err != nil {
		return err
	}

	data := map[string]string{"Name": projectName}
	files := []struct{ tpl, out string }{
		{"templates/hades.cue.tpl", "hades.cue"},
		{"templates/main.hd.tpl", "src/main.hd"},
		{"templates/gitignore.tpl", ".gitignore"},
	}
	for _, f := range files {
		outPath := filepath.Join(targetDir, f.out)
		if _, err := os.Stat(outPath); err == nil {
			logger.WarnContext(cmd.Context(), "keeping existing file", "path", outPath)
			continue
		}
		if err := writeTpl(f.tpl, outPath, data); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "✓ project %q initialized!\n", projectName)
	return nil
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.New(filepath.Base(tplName)).
		Funcs(template.FuncMap{"escape": lexer.Escape}).
		ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, data)
}
