package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/folio/paginate"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

const (
	bodyIndent  = 3
	quoteIndent = 3
	listGap     = 2

	authorsHeadingID = "authors-addresses"
)

var (
	tocPattern     = regexp.MustCompile(`(?i)^<toc\s*/?>$`)
	newpagePattern = regexp.MustCompile(`(?i)^<!--\s*newpage\s*-->$`)
	needPattern    = regexp.MustCompile(`(?i)^<!--\s*needlines:\s*(\d+)\s*-->$`)
	irefPattern    = regexp.MustCompile(`(?i)<iref\b([^>]*?)/?>`)
	attrPattern    = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	breakPattern   = regexp.MustCompile(`(?i)^<br\s*/?>$`)
)

// writer walks the Markdown tree and writes it into a Recorder.
type writer struct {
	doc    *Document
	rec    *paginate.Recorder
	source []byte
	width  int
	ascii  bool

	blank    bool
	base     int
	counters []int

	heading      *Heading
	headingLines []string
	refs         []paginate.IndexRef
	last         int // start offset of the last unit, -1 before any

	tocDone bool
	toc     bool
}

func newWriter(d *Document, source []byte) *writer {
	return &writer{
		doc:    d,
		rec:    paginate.NewRecorder(),
		source: source,
		width:  d.opts.width,
		ascii:  d.opts.ascii,
		toc:    d.Meta.enabled("toc", true),
		last:   -1,
	}
}

func (w *writer) render(root ast.Node) {
	if w.doc.Meta.Title == "" {
		if h, ok := root.FirstChild().(*ast.Heading); ok && h.Level == 1 {
			w.doc.Meta.Title = w.fold(headingText(h, w.source))
			root.RemoveChild(root, h)
		}
	}
	w.base = baseLevel(root)

	w.frontPage()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
	w.flushHeading()
	w.flushRefs()
	w.indexSection()
	w.authorsSection()
}

func baseLevel(root ast.Node) int {
	base := 0
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && (base == 0 || h.Level < base) {
			base = h.Level
		}
	}
	if base == 0 {
		return 1
	}
	return base
}

func (w *writer) fold(s string) string {
	if w.ascii {
		return Fold(s)
	}
	return s
}

// gap separates blocks with a single blank line.
func (w *writer) gap() {
	if w.rec.Len() > 0 && !w.blank {
		w.rec.Write("")
		w.blank = true
	}
}

// unit writes lines as one block, together with a pending heading.
func (w *writer) unit(lines []string, refs []paginate.IndexRef) {
	if len(lines) == 0 {
		w.refs = append(w.refs, refs...)
		return
	}
	if w.heading != nil {
		lines = append(append(w.headingLines, ""), lines...)
	}
	w.gap()
	w.last = w.rec.Len()
	if w.heading != nil {
		w.rec.MarkHeading(w.heading.ID)
		w.heading, w.headingLines = nil, nil
	}
	w.mark(refs)
	w.rec.Write(lines...)
	w.blank = lines[len(lines)-1] == ""
}

func (w *writer) mark(refs []paginate.IndexRef) {
	all := append(w.refs, refs...)
	w.refs = nil
	w.rec.MarkIndex(all...)
}

// flushRefs attaches references that no block followed to the last unit.
// The end of the buffer is never assigned a page.
func (w *writer) flushRefs() {
	if len(w.refs) == 0 || w.last < 0 {
		return
	}
	w.rec.MarkIndexAt(w.last, w.refs...)
	w.refs = nil
}

// flushHeading writes a heading that no block followed.
func (w *writer) flushHeading() {
	if w.heading == nil {
		return
	}
	lines := w.headingLines
	w.gap()
	w.last = w.rec.Len()
	w.rec.MarkHeading(w.heading.ID)
	w.heading, w.headingLines = nil, nil
	w.mark(nil)
	w.rec.Write(lines...)
	w.blank = false
}

func (w *writer) forceBreak() {
	w.flushHeading()
	w.rec.ForceBreak()
	w.blank = true
}

func (w *writer) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		w.startHeading(n)
	case *ast.List:
		w.list(n)
	case *ast.ThematicBreak:
		w.forceBreak()
	case *ast.HTMLBlock:
		w.directives(n)
	default:
		lines, refs := w.blockLines(n, bodyIndent)
		w.unit(lines, refs)
	}
}

func (w *writer) startHeading(n *ast.Heading) {
	w.flushHeading()
	if !w.tocDone && w.toc {
		w.placeTOC(true)
	}

	depth := max(n.Level-w.base+1, 1)
	for len(w.counters) < depth {
		w.counters = append(w.counters, 0)
	}
	w.counters = w.counters[:depth]
	w.counters[depth-1]++

	var number strings.Builder
	for _, c := range w.counters {
		number.WriteString(strconv.Itoa(c))
		number.WriteByte('.')
	}

	title, refs := w.inline(n)
	h := &Heading{
		ID:     w.doc.uniqueID(headingID(n, title)),
		Number: number.String(),
		Title:  strings.Join(strings.Fields(title), " "),
		Depth:  depth,
	}
	w.doc.addHeading(h)
	w.heading = h
	w.headingLines = hanging(h.Label(), "", 0, len(h.Number)+2, w.width)
	w.refs = append(w.refs, refs...)
}

func headingID(n *ast.Heading, title string) string {
	if v, ok := n.AttributeString("id"); ok {
		if id, ok := v.([]byte); ok && len(id) > 0 {
			return string(id)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

// placeTOC records where the table of contents goes.
func (w *writer) placeTOC(breakAfter bool) {
	w.flushHeading()
	w.tocDone = true
	w.gap()
	w.rec.MarkTOC()
	if breakAfter {
		w.rec.ForceBreak()
		w.blank = true
	}
}

func (w *writer) directives(n *ast.HTMLBlock) {
	var raw strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		raw.Write(seg.Value(w.source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(w.source))
	}

	for _, line := range strings.Split(raw.String(), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case tocPattern.MatchString(line):
			if w.toc && !w.tocDone {
				w.placeTOC(false)
			}
		case newpagePattern.MatchString(line):
			w.forceBreak()
		case needPattern.MatchString(line):
			need, _ := strconv.Atoi(needPattern.FindStringSubmatch(line)[1])
			w.flushHeading()
			w.gap()
			w.rec.Need(need)
		default:
			w.refs = append(w.refs, w.irefs(line)...)
		}
	}
}

func (w *writer) irefs(s string) []paginate.IndexRef {
	var refs []paginate.IndexRef
	for _, m := range irefPattern.FindAllStringSubmatch(s, -1) {
		attrs := map[string]string{}
		for _, a := range attrPattern.FindAllStringSubmatch(m[1], -1) {
			attrs[strings.ToLower(a[1])] = a[2] + a[3]
		}
		item := strings.TrimSpace(attrs["item"])
		if item == "" {
			continue
		}
		ref := paginate.IndexRef{
			Term:    w.fold(item),
			Subterm: w.fold(strings.TrimSpace(attrs["subitem"])),
		}
		w.doc.addIndexRef(ref)
		refs = append(refs, ref)
	}
	return refs
}

func (w *writer) list(n *ast.List) {
	number := n.Start
	first := true
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "o"
		if n.IsOrdered() {
			marker = strconv.Itoa(number) + "."
			number++
		}
		lines, refs := w.itemLines(item, bodyIndent, marker, n.IsTight)
		if !first && n.IsTight && w.heading == nil {
			w.last = w.rec.Len()
			w.mark(refs)
			w.rec.Write(lines...)
			w.blank = false
			continue
		}
		w.unit(lines, refs)
		first = false
	}
}

// itemLines renders a list item with its marker hanging at ind.
func (w *writer) itemLines(item ast.Node, ind int, marker string, tight bool) ([]string, []paginate.IndexRef) {
	textIndent := ind + len(marker) + listGap
	var lines []string
	var refs []paginate.IndexRef
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		var block []string
		var r []paginate.IndexRef
		switch c := c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			var s string
			s, r = w.inline(c)
			if len(lines) == 0 {
				block = hanging(s, marker, ind, textIndent, w.width)
			} else {
				block = wrap(s, textIndent, w.width)
			}
		default:
			block, r = w.blockLines(c, textIndent)
			if len(lines) == 0 && len(block) > 0 {
				prefix := strings.Repeat(" ", ind) + marker
				block = append([]string{prefix}, block...)
			}
		}
		refs = append(refs, r...)
		if len(block) == 0 {
			continue
		}
		if len(lines) > 0 && (!tight || c.HasBlankPreviousLines()) {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	if len(lines) == 0 {
		lines = []string{strings.Repeat(" ", ind) + marker}
	}
	return lines, refs
}

// blockLines renders any block node at ind without writing it.
func (w *writer) blockLines(n ast.Node, ind int) ([]string, []paginate.IndexRef) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		s, refs := w.inline(n)
		return wrap(s, ind, w.width), refs
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return w.codeLines(n, ind), nil
	case *ast.Blockquote:
		return w.children(n, ind+quoteIndent, true)
	case *ast.List:
		var lines []string
		var refs []paginate.IndexRef
		number := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "o"
			if n.IsOrdered() {
				marker = strconv.Itoa(number) + "."
				number++
			}
			l, r := w.itemLines(item, ind, marker, n.IsTight)
			if len(lines) > 0 && !n.IsTight {
				lines = append(lines, "")
			}
			lines = append(lines, l...)
			refs = append(refs, r...)
		}
		return lines, refs
	case *east.Table:
		return w.tableLines(n, ind)
	case *ast.ThematicBreak:
		return []string{strings.Repeat(" ", ind) + strings.Repeat("-", max(w.width-2*ind, 3))}, nil
	case *ast.HTMLBlock:
		var refs []paginate.IndexRef
		for i := 0; i < n.Lines().Len(); i++ {
			seg := n.Lines().At(i)
			refs = append(refs, w.irefs(string(seg.Value(w.source)))...)
		}
		return nil, refs
	default:
		return w.children(n, ind, true)
	}
}

func (w *writer) children(n ast.Node, ind int, blanks bool) ([]string, []paginate.IndexRef) {
	var lines []string
	var refs []paginate.IndexRef
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		l, r := w.blockLines(c, ind)
		refs = append(refs, r...)
		if len(l) == 0 {
			continue
		}
		if len(lines) > 0 && blanks {
			lines = append(lines, "")
		}
		lines = append(lines, l...)
	}
	return lines, refs
}

func (w *writer) codeLines(n ast.Node, ind int) []string {
	pad := strings.Repeat(" ", ind)
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimRight(string(seg.Value(w.source)), "\r\n")
		line = strings.ReplaceAll(line, "\t", "    ")
		line = strings.Repeat(" ", seg.Padding) + line
		lines = append(lines, strings.TrimRight(pad+w.fold(line), " "))
	}
	return lines
}

func (w *writer) tableLines(t *east.Table, ind int) ([]string, []paginate.IndexRef) {
	var rows [][]string
	var refs []paginate.IndexRef
	header := -1
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		if _, ok := row.(*east.TableHeader); ok {
			header = len(rows)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			s, r := w.inline(cell)
			cells = append(cells, strings.Join(strings.Fields(s), " "))
			refs = append(refs, r...)
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(t.Alignments))
	for _, cells := range rows {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	pad := strings.Repeat(" ", ind)
	var lines []string
	for r, cells := range rows {
		parts := make([]string, len(widths))
		for i := range widths {
			var c string
			if i < len(cells) {
				c = cells[i]
			}
			align := east.AlignNone
			if i < len(t.Alignments) {
				align = t.Alignments[i]
			}
			parts[i] = align1(c, widths[i], align)
		}
		lines = append(lines, strings.TrimRight(pad+strings.Join(parts, "  "), " "))
		if r == header {
			rules := make([]string, len(widths))
			for i, cw := range widths {
				rules[i] = strings.Repeat("-", max(cw, 1))
			}
			lines = append(lines, pad+strings.Join(rules, "  "))
		}
	}
	return lines, refs
}

func align1(s string, width int, align east.Alignment) string {
	space := width - runewidth.StringWidth(s)
	if space <= 0 {
		return s
	}
	switch align {
	case east.AlignRight:
		return strings.Repeat(" ", space) + s
	case east.AlignCenter:
		left := space / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", space-left)
	default:
		return s + strings.Repeat(" ", space)
	}
}

// inline returns the text of an inline container along with the index
// references found in it.
func (w *writer) inline(n ast.Node) (string, []paginate.IndexRef) {
	var b strings.Builder
	var refs []paginate.IndexRef
	w.inlineTo(&b, &refs, n)
	return w.fold(b.String()), refs
}

func (w *writer) inlineTo(b *strings.Builder, refs *[]paginate.IndexRef, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(w.source))
			switch {
			case c.HardLineBreak():
				b.WriteByte('\n')
			case c.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			mark := "_"
			if c.Level > 1 {
				mark = "*"
			}
			b.WriteString(mark)
			w.inlineTo(b, refs, c)
			b.WriteString(mark)
		case *ast.Link:
			start := b.Len()
			w.inlineTo(b, refs, c)
			label := b.String()[start:]
			dest := string(c.Destination)
			if dest != "" && !strings.HasPrefix(dest, "#") && dest != label {
				fmt.Fprintf(b, " <%s>", dest)
			}
		case *ast.AutoLink:
			fmt.Fprintf(b, "<%s>", c.URL(w.source))
		case *ast.RawHTML:
			raw := strings.TrimSpace(string(c.Segments.Value(w.source)))
			if breakPattern.MatchString(raw) {
				b.WriteByte('\n')
				continue
			}
			*refs = append(*refs, w.irefs(raw)...)
		case *east.TaskCheckBox:
			if c.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		default:
			w.inlineTo(b, refs, c)
		}
	}
}

// wrap fills s to width with every line indented by ind.
func wrap(s string, ind, width int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	wrapped := indent.String(wordwrap.String(s, max(width-ind, 1)), uint(ind))
	return trimLines(strings.Split(wrapped, "\n"))
}

// hanging fills s with the first line starting with marker at ind and the
// rest aligned at textIndent.
func hanging(s, marker string, ind, textIndent, width int) []string {
	s = strings.TrimSpace(s)
	lines := strings.Split(wordwrap.String(s, max(width-textIndent, 1)), "\n")
	first := strings.Repeat(" ", ind) + marker
	if marker != "" {
		first += strings.Repeat(" ", max(textIndent-runewidth.StringWidth(first), 1))
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == 0 {
			out[i] = first + strings.TrimLeft(l, " ")
			continue
		}
		out[i] = strings.Repeat(" ", textIndent) + strings.TrimLeft(l, " ")
	}
	return trimLines(out)
}

func trimLines(lines []string) []string {
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
