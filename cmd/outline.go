package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// outline: list declarations
var OutlineCmd = &cobra.Command{
	Use:   "outline [file]",
	Short: "List the declarations of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		src := string(content)

		syms, err := driver.Outline(cmd.Context(), src)
		if err != nil {
			report(cmd, path, src, err)
			return errReported
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, sym := range syms {
			// members of a function are indented under it
			indent := ""
			if sym.Container != "" {
				indent = "  "
			}
			fmt.Fprintf(w, "%s\t%s%s\t%s\n", sym.Span.Start, indent, sym.Kind, sym.Signature())
		}
		return w.Flush()
	},
}
