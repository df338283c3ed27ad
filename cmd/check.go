package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// check: parse files, report syntax errors
var CheckCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse source files and report syntax errors",
	Long: `Parse each source file and render any syntax error against the source.
Directories are searched for .hd files. Without arguments the "sources"
patterns from the config file are used.`,
	RunE: checkRun,
}

func checkRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	files, err := sourceFiles(ctx, args)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		_, src, err := driver.ParseFile(ctx, path)
		if err != nil {
			failed++
			report(cmd, path, src, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", path)
	}

	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(files))
		return errReported
	}
	return nil
}

// sourceFiles expands args, or the configured sources when there are none.
func sourceFiles(ctx context.Context, args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Sources
	}
	if len(patterns) == 0 {
		return nil, errors.New("no source files given and no sources configured")
	}
	files, err := driver.ExpandSources(ctx, patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hd files in %v", patterns)
	}
	return files, nil
}
