package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-homedir"
)

var yamlPattern = regexp.MustCompile(`(?m)^---\r?\n(\s*\r?\n)?`)

// SplitFrontmatter separates a YAML front matter header from the markdown
// that follows it. ok is false when content does not start with a front
// matter block.
func SplitFrontmatter(content []byte) (frontmatter, body []byte, ok bool) {
	matches := yamlPattern.FindAllIndex(content, 2)
	if len(matches) < 2 || matches[0][0] != 0 {
		return nil, content, false
	}
	return content[matches[0][1]:matches[1][0]], content[matches[1][1]:], true
}

// HasUnterminatedFrontmatter reports whether content opens a front matter
// block that is never closed.
func HasUnterminatedFrontmatter(content []byte) bool {
	matches := yamlPattern.FindAllIndex(content, 2)
	return len(matches) == 1 && matches[0][0] == 0
}

// Expands tilde and all environment variables from the given path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		return os.ExpandEnv(s)
	}
	return os.ExpandEnv(path)
}

var markdownExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown",
}

// IsMarkdownFile returns whether the filename has a markdown extension.
func IsMarkdownFile(filename string) bool {
	ext := filepath.Ext(filename)

	if ext == "" {
		// By default, assume it's a markdown file.
		return true
	}

	for _, v := range markdownExtensions {
		if strings.EqualFold(ext, v) {
			return true
		}
	}

	return false
}

// GetPagerCommand returns the pager command line found in the environment
// variable named envVar, falling back to less. Values containing a
// backslash are taken as a single Windows path.
func GetPagerCommand(envVar string) []string {
	v := strings.TrimSpace(os.Getenv(envVar))
	switch {
	case v == "":
		return []string{"less", "-r"}
	case strings.Contains(v, `\`):
		return []string{v}
	default:
		return strings.Fields(v)
	}
}

// GlamourStyle returns the glamour option for a style name or JSON path.
func GlamourStyle(style string) glamour.TermRendererOption {
	switch {
	case style == styles.AutoStyle:
		if lipgloss.HasDarkBackground() {
			return glamour.WithStandardStyle(styles.DarkStyle)
		}
		return glamour.WithStandardStyle(styles.LightStyle)
	case styles.DefaultStyles[style] != nil:
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStylesFromJSONFile(ExpandPath(style))
	}
}
