package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/folio/utils"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	minWidth = 20
	minLines = 5
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	width      uint
	lines      uint
	autobreaks bool
	ascii      bool
	strict     bool
	header     string
	footer     string
	verbose    bool
	pager      bool
	output     string

	rootCmd = &cobra.Command{
		Use:   "folio [SOURCE|DIR]",
		Short: "Paginate markdown into RFC-style plain text",
		Long: paragraph(
			fmt.Sprintf("\nPaginate markdown into %s: fixed-height pages with running headers and footers, a table of contents and an index.", keyword("RFC-style plain text")),
		),
		Example:          formatBlock("folio draft.md\nfolio -l 48 -o draft.txt draft.md\ncat draft.md | folio --ascii\nfolio github://owner/repo"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config: %w", err)
		}
	}

	// grab config values from Viper
	width = viper.GetUint("width")
	lines = viper.GetUint("lines")
	autobreaks = viper.GetBool("autobreaks")
	ascii = viper.GetBool("ascii")
	strict = viper.GetBool("strict")
	header = viper.GetString("header")
	footer = viper.GetString("footer")
	verbose = viper.GetBool("verbose")
	pager = viper.GetBool("pager")

	if verbose {
		mirrorLogToStderr()
	}

	if width < minWidth {
		return fmt.Errorf("width must be at least %d, got %d", minWidth, width)
	}
	if lines < minLines {
		return fmt.Errorf("lines must be at least %d, got %d", minLines, lines)
	}

	if pager && output != "" {
		return errors.New("--pager and --output cannot be used together")
	}
	// We only page when a human is looking at the output
	if pager && !cmd.Flags().Changed("pager") && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Debug("Standard output is not a terminal, not using the pager")
		pager = false
	}
	return nil
}

// renderSettings collects the current command line and configuration values.
func renderSettings() renderOptions {
	o := renderOptions{
		width:     int(width),
		lines:     int(lines),
		ascii:     ascii,
		strict:    strict,
		overrides: paginate.Overrides{},
	}
	// Settings given explicitly win over the document's own.
	if viper.IsSet("header") {
		o.overrides["header"] = header
	}
	if viper.IsSet("footer") {
		o.overrides["footer"] = footer
	}
	if viper.IsSet("autobreaks") {
		o.overrides["autobreaks"] = "yes"
		if !autobreaks {
			o.overrides["autobreaks"] = "no"
		}
	}
	return o
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, err
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	// if stdin is a pipe then use stdin for input. note that you can also
	// explicitly use a - to read from stdin.
	if len(args) == 0 {
		if yes, err := stdinIsPipe(); err != nil {
			return err
		} else if yes {
			return executeArg(cmd, "-", cmd.OutOrStdout())
		}
		return executeArg(cmd, "", cmd.OutOrStdout())
	}
	return executeArg(cmd, args[0], cmd.OutOrStdout())
}

func executeArg(cmd *cobra.Command, arg string, w io.Writer) error {
	// create an io.Reader from the markdown source in cli-args
	src, err := sourceFromArg(commandContext(cmd), arg)
	if err != nil {
		return err
	}
	defer src.reader.Close() //nolint:errcheck
	return executeCLI(src, w)
}

func executeCLI(src *source, w io.Writer) error {
	b, err := io.ReadAll(src.reader)
	if err != nil {
		return err
	}

	_, res, err := render(b, renderSettings())
	if err != nil {
		return err
	}
	out := res.String()
	log.Info("Paginated",
		"source", src.URL,
		"pages", res.Pages,
		"passes", res.Passes,
		"size", humanize.Bytes(uint64(len(out))))

	switch {
	case output != "":
		if err := os.WriteFile(output, []byte(out), 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Debug("Wrote output", "path", output)
		return nil
	case pager:
		pa := utils.GetPagerCommand("PAGER")
		c := exec.Command(pa[0], pa[1:]...) // nolint:gosec
		c.Stdin = strings.NewReader(out)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	_, err = io.WriteString(w, out)
	return err
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	flags.UintVarP(&width, "width", "w", paginate.DefaultWidth, "page width in columns")
	flags.UintVarP(&lines, "lines", "l", paginate.DefaultCapacity, "body lines per page")
	flags.BoolVar(&autobreaks, "autobreaks", true, "break early to keep units together")
	flags.BoolVarP(&ascii, "ascii", "a", false, "fold text to plain ASCII")
	flags.BoolVar(&strict, "strict", false, "fail when the TOC or index outgrows its reservation")
	flags.StringVar(&header, "header", "", "left running header")
	flags.StringVar(&footer, "footer", "", "center running footer")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.Flags().BoolVarP(&pager, "pager", "p", false, "display with pager")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	// Config bindings
	for _, key := range []string{"width", "lines", "autobreaks", "ascii", "strict", "header", "footer", "verbose"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
	_ = viper.BindPFlag("pager", rootCmd.Flags().Lookup("pager"))

	viper.SetDefault("width", paginate.DefaultWidth)
	viper.SetDefault("lines", paginate.DefaultCapacity)

	rootCmd.AddCommand(tocCmd, findCmd, viewCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "folio")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "folio")}, dirs...)
	}

	if c := os.Getenv("FOLIO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("folio")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("folio")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "folio.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
