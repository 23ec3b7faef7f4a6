package document

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/folio/paginate"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	tocTitle     = "Table of Contents"
	indexTitle   = "Index"
	authorsTitle = "Authors' Addresses"

	defaultWorkgroup = "Network Working Group"
)

// frontPage writes the two column document header and the centered title.
func (w *writer) frontPage() {
	m := w.doc.Meta
	if m.Title == "" && len(m.Authors) == 0 {
		return
	}

	left := []string{m.Workgroup, "Internet-Draft"}
	if left[0] == "" {
		left[0] = defaultWorkgroup
	}
	if m.Number != "" {
		left[1] = "Request for Comments: " + m.Number
	}
	if c := m.CategoryName(); c != "" {
		left = append(left, "Category: "+c)
	}

	var right []string
	org := ""
	for _, a := range m.Authors {
		right = append(right, a.Name)
		if a.Organization != "" && a.Organization != org {
			right = append(right, a.Organization)
		}
		org = a.Organization
	}
	if d := m.Date.String(); d != "" {
		right = append(right, d)
	}

	rows := make([]string, max(len(left), len(right)))
	for i := range rows {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		rows[i], _ = paginate.Justify(l, "", r, w.width)
	}
	w.unit(rows, nil)

	var title []string
	for _, l := range strings.Split(wordwrap.String(m.Title, w.width-10), "\n") {
		title = append(title, center(strings.TrimSpace(l), w.width))
	}
	if m.DocName != "" {
		title = append(title, center(m.DocName, w.width))
	}
	w.rec.Write("", "")
	w.blank = true
	w.unit(title, nil)
}

func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// indexSection reserves the index at the end of the body.
func (w *writer) indexSection() {
	if len(w.doc.index) == 0 || !w.doc.Meta.enabled("index", true) {
		return
	}
	w.flushHeading()
	w.gap()
	w.rec.MarkIndexSection()
}

// authorsSection writes the contact details of every author.
func (w *writer) authorsSection() {
	var lines []string
	for _, a := range w.doc.Meta.Authors {
		if a.Organization == "" && a.Email == "" {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "   "+a.Name)
		if a.Organization != "" {
			lines = append(lines, "   "+a.Organization)
		}
		if a.Email != "" {
			lines = append(lines, "", "   Email: "+a.Email)
		}
	}
	if len(lines) == 0 {
		return
	}

	h := &Heading{ID: w.doc.uniqueID(authorsHeadingID), Title: authorsTitle, Depth: 1}
	w.doc.addHeading(h)
	w.heading = h
	w.headingLines = []string{authorsTitle}
	w.unit(lines, nil)
}

// TOC renders the table of contents with the pages stamped so far.
func (d *Document) TOC() []string {
	depth := d.Meta.tocDepth()
	var lines []string
	for _, h := range d.headings {
		if h.Depth > depth {
			continue
		}
		ind := bodyIndent + 2*(h.Depth-1)
		lines = append(lines, leaders(strings.Repeat(" ", ind)+h.Label(), h.Page, d.opts.width))
	}
	if len(lines) == 0 {
		return nil
	}
	return append([]string{tocTitle, ""}, lines...)
}

// leaders joins left and the page number with a dotted leader so that the
// page number ends at width.
func leaders(left string, page, width int) string {
	num := strconv.Itoa(page)
	end := width - len(num) - 1
	if runewidth.StringWidth(left) > end-4 {
		left = runewidth.Truncate(left, max(end-4, 0), "")
	}

	lw := runewidth.StringWidth(left)
	var b strings.Builder
	b.WriteString(left)
	for col := lw; col < end; col++ {
		if col > lw && col%2 == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte(' ')
	b.WriteString(num)
	return b.String()
}

// Index renders the index with the pages stamped so far.
func (d *Document) Index() []string {
	entries := d.IndexEntries()
	if len(entries) == 0 {
		return nil
	}

	lines := []string{indexTitle}
	group := ""
	for _, e := range entries {
		if g := letter(e.Term); g != group {
			group = g
			lines = append(lines, "", "   "+g, "")
		}
		lines = append(lines, indexLine(e.Term, e.Pages, 6, d.opts.width)...)

		subs := make([]string, 0, len(e.Subterms))
		for s := range e.Subterms {
			subs = append(subs, s)
		}
		slices.SortFunc(subs, compareTerms)
		for _, s := range subs {
			lines = append(lines, indexLine(s, e.Subterms[s], 9, d.opts.width)...)
		}
	}
	return lines
}

func letter(term string) string {
	r, _ := utf8.DecodeRuneInString(term)
	if !unicode.IsLetter(r) {
		return "Symbols"
	}
	return string(unicode.ToUpper(r))
}

// indexLine formats a term and its pages, continuing at ind+3.
func indexLine(term string, pages []int, ind, width int) []string {
	pages = slices.Clone(pages)
	slices.Sort(pages)
	pages = slices.Compact(pages)

	nums := make([]string, len(pages))
	for i, p := range pages {
		nums[i] = strconv.Itoa(p)
	}
	s := term
	if len(nums) > 0 {
		s += "  " + strings.Join(nums, ", ")
	}
	return hanging(s, "", ind, ind+3, width)
}
