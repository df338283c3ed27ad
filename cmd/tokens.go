package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// tokens: list the token stream
var TokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		src := string(content)

		toks, lexErr := driver.Tokens(cmd.Context(), src)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, tok := range toks {
			fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Span(), tok.Type, tok.Literal)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if lexErr != nil {
			report(cmd, path, src, lexErr)
			return errReported
		}
		return nil
	},
}
