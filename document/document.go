// Package document renders Markdown into a paginate.Recorder the way an RFC
// text writer lays out sections, lists, artwork and tables, and keeps the
// document model that the paginator stamps page numbers onto.
package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/folio/paginate"
	"github.com/charmbracelet/folio/utils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ErrFrontmatter reports a front matter block that cannot be read.
var ErrFrontmatter = errors.New("invalid front matter")

// Heading is a section heading.
type Heading struct {
	ID     string
	Number string // "1.", "1.2.", or empty for unnumbered sections
	Title  string
	Depth  int
	Page   int
}

// Label returns the number and title as shown in the table of contents.
func (h *Heading) Label() string {
	if h.Number == "" {
		return h.Title
	}
	return h.Number + "  " + h.Title
}

// IndexEntry is an index term with the pages it is referenced on.
type IndexEntry struct {
	Term     string
	Pages    []int
	Subterms map[string][]int
}

// Document is a parsed Markdown document ready for pagination.
type Document struct {
	Meta Metadata

	headings []*Heading
	byID     map[string]*Heading
	index    map[string]*IndexEntry
	src      paginate.Source
	opts     options
}

// Parse reads front matter and Markdown from src and renders the body.
func Parse(src []byte, opts ...Option) (*Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if utils.HasUnterminatedFrontmatter(src) {
		return nil, fmt.Errorf("%w: missing closing ---", ErrFrontmatter)
	}
	d := &Document{
		byID:  make(map[string]*Heading),
		index: make(map[string]*IndexEntry),
		opts:  o,
	}
	fm, body, ok := utils.SplitFrontmatter(src)
	if ok {
		if err := yaml.Unmarshal(fm, &d.Meta); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFrontmatter, err)
		}
	}
	if o.ascii {
		d.Meta.fold()
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := md.Parser().Parse(text.NewReader(body))

	w := newWriter(d, body)
	w.render(root)
	d.src = w.rec.Source()

	o.logger.Debug("Rendered document",
		"title", d.Meta.Title,
		"lines", len(d.src.Lines),
		"headings", len(d.headings),
		"terms", len(d.index))
	return d, nil
}

// Source returns the rendered body.
func (d *Document) Source() paginate.Source {
	return d.src
}

// Headings returns the section headings in document order.
func (d *Document) Headings() []*Heading {
	return d.headings
}

// Heading returns the heading with the given anchor id.
func (d *Document) Heading(id string) (*Heading, bool) {
	h, ok := d.byID[id]
	return h, ok
}

// IndexEntries returns the index terms sorted case-insensitively.
func (d *Document) IndexEntries() []*IndexEntry {
	entries := slices.Collect(maps.Values(d.index))
	slices.SortFunc(entries, func(a, b *IndexEntry) int {
		return compareTerms(a.Term, b.Term)
	})
	return entries
}

func compareTerms(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Overrides returns the front matter overrides with extra applied on top.
func (d *Document) Overrides(extra paginate.Overrides) paginate.Overrides {
	o := d.Meta.Overrides()
	maps.Copy(o, extra)
	return o
}

// Job returns a pagination job for the document.
func (d *Document) Job(extra paginate.Overrides) paginate.Job {
	return paginate.Job{
		Source:  d.src,
		Running: paginate.NewRunning(d.Meta.Running(), d.Overrides(extra)),
		TOC:     d.TOC,
		Index:   d.Index,
		Stamper: d,
	}
}

// ResetStamps implements paginate.Stamper.
func (d *Document) ResetStamps() {
	for _, h := range d.headings {
		h.Page = 0
	}
	for _, e := range d.index {
		e.Pages = nil
		for sub := range e.Subterms {
			e.Subterms[sub] = nil
		}
	}
}

// StampHeading implements paginate.Stamper.
func (d *Document) StampHeading(id string, page int) {
	if h, ok := d.byID[id]; ok {
		h.Page = page
	}
}

// StampIndex implements paginate.Stamper.
func (d *Document) StampIndex(ref paginate.IndexRef, page int) {
	e, ok := d.index[ref.Term]
	if !ok {
		return
	}
	if ref.Subterm == "" {
		e.Pages = append(e.Pages, page)
		return
	}
	e.Subterms[ref.Subterm] = append(e.Subterms[ref.Subterm], page)
}

func (d *Document) addHeading(h *Heading) {
	d.headings = append(d.headings, h)
	d.byID[h.ID] = h
}

// uniqueID returns id, or id with the first free "-N" suffix when a heading
// already uses it.
func (d *Document) uniqueID(id string) string {
	if _, ok := d.byID[id]; !ok {
		return id
	}
	for i := 1; ; i++ {
		c := fmt.Sprintf("%s-%d", id, i)
		if _, ok := d.byID[c]; !ok {
			return c
		}
	}
}

func (d *Document) addIndexRef(ref paginate.IndexRef) {
	e, ok := d.index[ref.Term]
	if !ok {
		e = &IndexEntry{Term: ref.Term, Subterms: make(map[string][]int)}
		d.index[ref.Term] = e
	}
	if ref.Subterm != "" {
		if _, ok := e.Subterms[ref.Subterm]; !ok {
			e.Subterms[ref.Subterm] = nil
		}
	}
}

// headingText returns the plain text of a heading node.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Value(source))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
