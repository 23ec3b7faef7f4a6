package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:     "toc SOURCE",
	Short:   "Print the table of contents",
	Long:    paragraph(fmt.Sprintf("\nPaginate SOURCE and print its %s with the final page numbers.", keyword("table of contents"))),
	Example: formatBlock("folio toc draft.md\nfolio toc -l 48 draft.md"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := paginateArg(cmd, args[0])
		if err != nil {
			return err
		}
		lines := doc.TOC()
		if len(lines) == 0 {
			return errors.New("document has no headings")
		}
		w := cmd.OutOrStdout()
		for _, l := range lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
		return nil
	},
}
