package ui

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// pageAt returns the 0-based index of the page shown at line offset.
func pageAt(starts []int, offset int) int {
	i, found := slices.BinarySearch(starts, offset)
	if found {
		return i
	}
	return max(i-1, 0)
}

// nextPageStart returns the offset the next page starts at, or offset when
// already on the last page.
func nextPageStart(starts []int, offset int) int {
	i := pageAt(starts, offset)
	if i+1 < len(starts) {
		return starts[i+1]
	}
	return offset
}

// prevPageStart returns the start of the current page when it is scrolled
// down, otherwise the start of the previous page.
func prevPageStart(starts []int, offset int) int {
	if len(starts) == 0 {
		return 0
	}
	i := pageAt(starts, offset)
	if offset > starts[i] || i == 0 {
		return starts[i]
	}
	return starts[i-1]
}

// pageText returns the text of page i without the form feed that ends it.
func pageText(lines []string, starts []int, i int) string {
	if i < 0 || i >= len(starts) {
		return ""
	}
	end := len(lines)
	if i+1 < len(starts) {
		end = starts[i+1] - 1
	}
	return strings.Join(lines[starts[i]:end], "\n")
}

// pageContent prepares paginated lines for display, drawing page breaks as
// a rule as wide as the widest line.
func pageContent(lines []string) string {
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	rule := pageBreakStyle(strings.Repeat("─", w))

	var b strings.Builder
	for i, l := range lines {
		if l == "\f" {
			b.WriteString(rule)
		} else {
			b.WriteString(l)
		}
		if i+1 < len(lines) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
