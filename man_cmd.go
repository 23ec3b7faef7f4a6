package main

import (
	"fmt"
	"io"
	"os"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var (
	manSection uint
	manOutput  string

	manCmd = &cobra.Command{
		Use:                   "man",
		Short:                 "Generate the folio man page",
		Long:                  paragraph(fmt.Sprintf("\n%s a roff man page describing every folio command and flag.", keyword("Generate"))),
		Example:               formatBlock("folio man | man -l -\nfolio man -o folio.1"),
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Hidden:                true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := manPage(manSection)
			if err != nil {
				return err
			}
			if manOutput != "" {
				if err := os.WriteFile(manOutput, []byte(page), 0o644); err != nil { //nolint:gosec
					return fmt.Errorf("unable to write man page: %w", err)
				}
				return nil
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), page); err != nil {
				return fmt.Errorf("unable to write man page: %w", err)
			}
			return nil
		},
	}
)

func init() {
	manCmd.Flags().UintVarP(&manSection, "section", "s", 1, "man page section")
	manCmd.Flags().StringVarP(&manOutput, "output", "o", "", "write to file instead of stdout")
}

// manPage renders the man page of the whole command tree.
func manPage(section uint) (string, error) {
	page, err := mcobra.NewManPage(section, rootCmd)
	if err != nil {
		return "", fmt.Errorf("unable to instantiate man page: %w", err)
	}
	return page.Build(roff.NewDocument()), nil
}
