package paginate

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestJoinAuthors(t *testing.T) {
	for expected, names := range map[string][]string{
		"":                          nil,
		"Postel":                    {"Postel"},
		"Postel & Reynolds":         {"Postel", "Reynolds"},
		"Bradner, Postel & Crocker": {"Bradner", "Postel", "Crocker"},
	} {
		t.Run(expected, func(t *testing.T) {
			if got := JoinAuthors(names); got != expected {
				t.Errorf("expected %q, got %q", expected, got)
			}
		})
	}
}

func TestJustify(t *testing.T) {
	for _, tc := range []struct {
		name                string
		left, center, right string
		width               int
		expected            string
		truncated           bool
	}{
		{"three parts", "a", "b", "c", 9, "a   b   c", false},
		{"no center", "Doe", "", "[Page 1]", 20, "Doe         [Page 1]", false},
		{"tight", "L", "centered", "R", 12, "L centered R", false},
		{"center shifted left", "", "abcd", "xyz", 10, "  abcd xyz", false},
		{"only left", "left", "", "", 10, "left", false},
		{"truncated", "abcdef", "", "xy", 6, "abc xy", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := Justify(tc.left, tc.center, tc.right, tc.width)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
			if truncated != tc.truncated {
				t.Errorf("expected truncated=%v, got %v", tc.truncated, truncated)
			}
		})
	}
}

func TestNewRunning(t *testing.T) {
	meta := Metadata{
		Title:   "A Very Long Document Title",
		Abbrev:  "Short Title",
		Month:   "May",
		Year:    "2024",
		Authors: []string{"Doe", "Roe"},
	}

	r := NewRunning(meta, nil)
	header := r.Header(DefaultWidth)
	if runewidth.StringWidth(header) != DefaultWidth {
		t.Errorf("expected header width %d, got %q", DefaultWidth, header)
	}
	if !strings.HasPrefix(header, "Internet-Draft") || !strings.HasSuffix(header, "May 2024") {
		t.Errorf("unexpected header %q", header)
	}
	if !strings.Contains(header, "Short Title") {
		t.Errorf("expected abbreviated title in %q", header)
	}

	footer := r.Footer(7, DefaultWidth)
	if !strings.HasPrefix(footer, "Doe & Roe") || !strings.HasSuffix(footer, "[Page 7]") {
		t.Errorf("unexpected footer %q", footer)
	}
	if !strings.Contains(footer, "(Category)") {
		t.Errorf("expected default category in %q", footer)
	}
	if r.Header(DefaultWidth) != header {
		t.Errorf("expected header to be stable")
	}

	r = NewRunning(meta, Overrides{"header": "RFC 9999", "footer": "Informational"})
	if !strings.HasPrefix(r.Header(DefaultWidth), "RFC 9999") {
		t.Errorf("expected header override, got %q", r.Header(DefaultWidth))
	}
	if !strings.Contains(r.Footer(1, DefaultWidth), "Informational") {
		t.Errorf("expected footer override, got %q", r.Footer(1, DefaultWidth))
	}

	r = NewRunning(Metadata{Title: "Untitled"}, nil)
	if r.HeaderCenter != "Untitled" {
		t.Errorf("expected title fallback, got %q", r.HeaderCenter)
	}
}

func TestOverridesAutoBreaks(t *testing.T) {
	for _, tc := range []struct {
		o        Overrides
		expected bool
	}{
		{nil, true},
		{Overrides{"autobreaks": "yes"}, true},
		{Overrides{"autobreaks": "no"}, false},
		{Overrides{"autobreaks": " No "}, false},
	} {
		if got := tc.o.AutoBreaks(); got != tc.expected {
			t.Errorf("expected %v for %v, got %v", tc.expected, tc.o, got)
		}
	}
}
