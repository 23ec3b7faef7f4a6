package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
)

const defaultConfig = `# page width in columns
width: 72
# body lines per page
lines: 55
# break early to keep units such as a heading and its first paragraph
# together; unset leaves the choice to the document
# autobreaks: true
# fold text to plain ASCII
ascii: false
# fail instead of planning again when the TOC or index outgrows its reservation
strict: false
# use pager to display the paginated text
pager: false
# left running header, overrides the document identifier
# header: ""
# center running footer, overrides the document category
# footer: ""
`

func defaultConfigFile() string {
	scope := gap.NewScope(gap.User, "folio")
	path, _ := scope.ConfigPath("folio.yml")
	return path
}

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the folio config file",
	Long:    paragraph(fmt.Sprintf("\n%s the folio config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("folio config\nfolio config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("folio", configFile)
		if err != nil {
			return err
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = defaultConfigFile()
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported config type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("could not write config file: %w", err)
		}
		return os.WriteFile(configFile, []byte(defaultConfig), 0o600)
	} else if err != nil { // some other error occurred
		return err
	}
	return nil
}
