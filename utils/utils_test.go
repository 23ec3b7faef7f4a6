package utils

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	for name, tc := range map[string]struct {
		in          string
		frontmatter string
		body        string
		ok          bool
	}{
		"none":        {"# Title\n", "", "# Title\n", false},
		"yaml":        {"---\ntitle: x\n---\n# Title\n", "title: x\n", "# Title\n", true},
		"blank after": {"---\ntitle: x\n---\n\n# Title\n", "title: x\n", "# Title\n", true},
		"not at top":  {"text\n---\ntitle: x\n---\n", "", "text\n---\ntitle: x\n---\n", false},
		"crlf":        {"---\r\ntitle: x\r\n---\r\nbody", "title: x\r\n", "body", true},
	} {
		t.Run(name, func(t *testing.T) {
			fm, body, ok := SplitFrontmatter([]byte(tc.in))
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if string(fm) != tc.frontmatter {
				t.Errorf("expected front matter %q, got %q", tc.frontmatter, fm)
			}
			if string(body) != tc.body {
				t.Errorf("expected body %q, got %q", tc.body, body)
			}
		})
	}
}

func TestHasUnterminatedFrontmatter(t *testing.T) {
	if !HasUnterminatedFrontmatter([]byte("---\ntitle: x\n# Title\n")) {
		t.Errorf("expected unterminated front matter")
	}
	if HasUnterminatedFrontmatter([]byte("---\ntitle: x\n---\n")) {
		t.Errorf("expected terminated front matter")
	}
}

func TestExpandPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("FOLIO_TEST_DIR", "docs")

	got := ExpandPath("~/$FOLIO_TEST_DIR/draft.md")
	expected := filepath.Join(dir, "docs", "draft.md")
	if got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestIsMarkdownFile(t *testing.T) {
	for name, expected := range map[string]bool{
		"README":       true,
		"draft.md":     true,
		"draft.MKD":    true,
		"main.go":      false,
		"notes.tar.gz": false,
	} {
		if got := IsMarkdownFile(name); got != expected {
			t.Errorf("expected %v for %s, got %v", expected, name, got)
		}
	}
}

func TestGetPagerCommand(t *testing.T) {
	tt := []struct {
		pagerEnvVar     string
		expectedCommand []string
	}{
		{
			pagerEnvVar:     "C:\\Program Files\\Git\\usr\\bin\\less.exe",
			expectedCommand: []string{"C:\\Program Files\\Git\\usr\\bin\\less.exe"},
		},
		{
			pagerEnvVar:     "usr/local/bin",
			expectedCommand: []string{"usr/local/bin"},
		},
		{
			pagerEnvVar:     "less -R",
			expectedCommand: []string{"less", "-R"},
		},
		{
			pagerEnvVar:     "",
			expectedCommand: []string{"less", "-r"},
		},
	}

	for _, v := range tt {
		t.Setenv("PAGER", v.pagerEnvVar)
		command := GetPagerCommand("PAGER")
		if !reflect.DeepEqual(command, v.expectedCommand) {
			t.Errorf("Expected: %s Actual %s (pagerEnvVar %s)", v.expectedCommand, command, v.pagerEnvVar)
		}
	}
}
