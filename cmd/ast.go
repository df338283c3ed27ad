package cmd

import (
	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/spf13/cobra"
)

var astExpr bool

// ast: dump the syntax tree
var AstCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree of a source file",
	Long: `Print the syntax tree of a source file. With -e the argument is
parsed as a single expression instead of a file name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if astExpr {
			src := args[0]
			expr, err := driver.ParseExpr(cmd.Context(), src)
			if err != nil {
				report(cmd, "<expr>", src, err)
				return errReported
			}
			return ast.Dump(cmd.OutOrStdout(), expr)
		}

		path := args[0]
		file, src, err := driver.ParseFile(cmd.Context(), path)
		if err != nil {
			report(cmd, path, src, err)
			return errReported
		}
		return ast.Dump(cmd.OutOrStdout(), file)
	},
}

func init() {
	AstCmd.Flags().BoolVarP(&astExpr, "expr", "e", false, "parse the argument as an expression")
}
