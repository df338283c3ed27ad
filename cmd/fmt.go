package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtList  bool
	fmtExpr  string
)

// fmt: print or rewrite sources in canonical form
var FmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Print or rewrite source files in canonical form",
	Long: `Format source files. By default the formatted text is printed.
With -w files are rewritten in place; with -l only the names of files
whose formatting differs are printed. Comments are kept.

With -e the given expression is formatted instead of files.`,
	RunE: fmtRun,
}

func init() {
	FmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file")
	FmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	FmtCmd.Flags().StringVarP(&fmtExpr, "expr", "e", "", "format a single expression")
}

func fmtRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if fmtExpr != "" {
		out, err := driver.FormatExpr(ctx, fmtExpr)
		if err != nil {
			report(cmd, "<expr>", fmtExpr, err)
			return errReported
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	files, err := sourceFiles(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, path := range files {
		formatted, changed, err := driver.FormatFile(ctx, path, fmtWrite)
		if err != nil {
			failed = true
			report(cmd, path, formatted, err)
			continue
		}
		switch {
		case fmtList:
			if changed {
				fmt.Fprintln(out, path)
			}
		case !fmtWrite:
			fmt.Fprint(out, formatted)
		}
	}

	if failed {
		return errReported
	}
	return nil
}
