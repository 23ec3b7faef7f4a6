package paginate

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	defaultIdentifier = "Internet-Draft"
	defaultCategory   = "(Category)"
)

// Metadata is the document information shown in running headers and footers.
type Metadata struct {
	Identifier string
	Title      string
	Abbrev     string
	Month      string
	Year       string
	Authors    []string // surnames, in document order
	Category   string
}

// Overrides are document-level settings keyed by name. Recognized keys are
// "header" (left header text), "footer" (center footer text) and
// "autobreaks" ("no" disables hint-based early breaks).
type Overrides map[string]string

// AutoBreaks reports whether hint-based early breaks are enabled.
func (o Overrides) AutoBreaks() bool {
	v, ok := o["autobreaks"]
	if !ok {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(v), "no")
}

// Running holds the text of the running header and footer. Only the page
// number in the footer changes from page to page.
type Running struct {
	HeaderLeft   string
	HeaderCenter string
	HeaderRight  string
	FooterLeft   string
	FooterCenter string
}

// NewRunning builds running text from metadata, applying overrides.
func NewRunning(m Metadata, o Overrides) Running {
	r := Running{
		HeaderLeft:   m.Identifier,
		HeaderCenter: m.Abbrev,
		HeaderRight:  strings.TrimSpace(m.Month + " " + m.Year),
		FooterLeft:   JoinAuthors(m.Authors),
		FooterCenter: m.Category,
	}
	if r.HeaderLeft == "" {
		r.HeaderLeft = defaultIdentifier
	}
	if r.HeaderCenter == "" {
		r.HeaderCenter = m.Title
	}
	if r.FooterCenter == "" {
		r.FooterCenter = defaultCategory
	}
	if v, ok := o["header"]; ok {
		r.HeaderLeft = v
	}
	if v, ok := o["footer"]; ok {
		r.FooterCenter = v
	}
	return r
}

// Header returns the running header justified to width.
func (r Running) Header(width int) string {
	s, _ := Justify(r.HeaderLeft, r.HeaderCenter, r.HeaderRight, width)
	return s
}

// Footer returns the running footer for page justified to width.
func (r Running) Footer(page, width int) string {
	s, _ := Justify(r.FooterLeft, r.FooterCenter, PageLabel(page), width)
	return s
}

// PageLabel formats a page number the way footers show it.
func PageLabel(page int) string {
	return "[Page " + strconv.Itoa(page) + "]"
}

// JoinAuthors joins names as "a", "a & b" or "a, b & c".
func JoinAuthors(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	last := len(names) - 1
	return strings.Join(names[:last], ", ") + " & " + names[last]
}

// Justify places left, center and right on one line of the given display
// width. When the parts do not fit, the longest part is shortened until they
// do and the second return value is true. Trailing blanks are trimmed.
func Justify(left, center, right string, width int) (string, bool) {
	parts := [3]string{
		strings.TrimRight(left, " "),
		strings.TrimSpace(center),
		strings.TrimSpace(right),
	}
	truncated := false
	for {
		over := justifiedWidth(parts) - width
		if over <= 0 {
			break
		}
		i := longest(parts)
		w := runewidth.StringWidth(parts[i])
		if w == 0 {
			break
		}
		keep := w - over
		if keep < 0 {
			keep = 0
		}
		parts[i] = runewidth.Truncate(parts[i], keep, "")
		truncated = true
	}

	lw := runewidth.StringWidth(parts[0])
	cw := runewidth.StringWidth(parts[1])
	rw := runewidth.StringWidth(parts[2])

	rStart := width - rw
	cStart := (width - cw) / 2
	if rw > 0 && cStart+cw+1 > rStart {
		cStart = rStart - cw - 1
	}
	if lw > 0 && cStart < lw+1 {
		cStart = lw + 1
	}
	if cStart < 0 {
		cStart = 0
	}

	var b strings.Builder
	col := 0
	b.WriteString(parts[0])
	col += lw
	if cw > 0 {
		b.WriteString(strings.Repeat(" ", cStart-col))
		b.WriteString(parts[1])
		col = cStart + cw
	}
	if rw > 0 {
		if rStart > col {
			b.WriteString(strings.Repeat(" ", rStart-col))
		}
		b.WriteString(parts[2])
	}
	return strings.TrimRight(b.String(), " "), truncated
}

// justifiedWidth is the minimum width the parts need with one blank between
// neighbours.
func justifiedWidth(parts [3]string) int {
	total, n := 0, 0
	for _, p := range parts {
		if w := runewidth.StringWidth(p); w > 0 {
			total += w
			n++
		}
	}
	if n > 1 {
		total += n - 1
	}
	return total
}

func longest(parts [3]string) int {
	idx, best := 0, -1
	for i, p := range parts {
		if w := runewidth.StringWidth(p); w > best {
			idx, best = i, w
		}
	}
	return idx
}
