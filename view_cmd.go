package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/folio/ui"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view SOURCE",
	Short: "Browse the paginated document",
	Long: paragraph(fmt.Sprintf("\n%s the paginated document page by page. Local files are paginated again whenever they change.",
		keyword("Browse"))),
	Example: formatBlock("folio view draft.md\nfolio view -l 48 github://owner/repo"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "-" {
			return errors.New("view needs a file or URL, not stdin")
		}
		return runTUI(cmd, args[0])
	},
}

func runTUI(cmd *cobra.Command, arg string) error {
	// Read environment to get the TUI settings
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	src, err := sourceFromArg(commandContext(cmd), arg)
	if err != nil {
		return err
	}
	b, err := io.ReadAll(src.reader)
	_ = src.reader.Close()
	if err != nil {
		return err
	}

	cfg.Path = src.path()
	cfg.Title = filepath.Base(src.URL)
	settings := renderSettings()
	load := func() (*paginate.Result, error) {
		content := b
		if cfg.Path != "" {
			fresh, err := os.ReadFile(cfg.Path)
			if err != nil {
				return nil, err
			}
			content = fresh
		}
		_, res, err := render(content, settings)
		return res, err
	}

	// Run Bubble Tea program
	if _, err := ui.NewProgram(cfg, load).Run(); err != nil {
		return err
	}
	return nil
}
