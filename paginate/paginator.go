package paginate

import (
	"fmt"
	"io"
	"strings"
)

// Deferred renders a section whose content depends on page numbers. It is
// called once to measure the section and once more after stamping.
type Deferred func() []string

// Job is everything needed to paginate one document.
type Job struct {
	Source  Source
	Running Running
	TOC     Deferred
	Index   Deferred

	// Stamper receives page numbers after layout. It may be nil.
	Stamper Stamper
}

// Result is a paginated document.
type Result struct {
	Lines  []string
	Pages  int
	Passes int
	Plan   Plan

	Assignments map[int]int
	TOC         []Extent
	Index       []Extent
}

// Paginator lays documents out into fixed-height pages.
type Paginator struct {
	cfg config
}

// New returns a Paginator configured with opts.
func New(opts ...Option) *Paginator {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Paginator{cfg: cfg}
}

// Capacity returns the number of body lines per page.
func (p *Paginator) Capacity() int {
	return p.cfg.capacity
}

// Width returns the page width.
func (p *Paginator) Width() int {
	return p.cfg.width
}

// Paginate plans, lays out, stamps and back-patches job.
func (p *Paginator) Paginate(job Job) (*Result, error) {
	logger := p.cfg.logger
	if _, truncated := Justify(job.Running.HeaderLeft, job.Running.HeaderCenter, job.Running.HeaderRight, p.cfg.width); truncated {
		logger.Warn("Running header truncated", "width", p.cfg.width)
	}

	toc := section{render: job.TOC, present: placed(job.Source, job.Source.TOCMarker)}
	index := section{render: job.Index, present: placed(job.Source, job.Source.IndexMarker)}

	plan := Plan{TOC: len(toc.draw()), Index: len(index.draw())}
	for pass := 1; ; pass++ {
		logger.Debug("Laying out", "pass", pass, "toc", plan.TOC, "index", plan.Index, "lines", len(job.Source.Lines))

		lay := p.Layout(job.Source, plan, job.Running)
		Apply(job.Source, lay.Assignments, job.Stamper)

		tocLines, indexLines := toc.draw(), index.draw()
		next := Plan{TOC: max(plan.TOC, len(tocLines)), Index: max(plan.Index, len(indexLines))}
		if next != plan {
			err := overflow(plan, next)
			if p.cfg.strict || pass >= p.cfg.maxPasses {
				return nil, err
			}
			logger.Warn("Deferred section outgrew its reservation, planning again", "err", err)
			plan = next
			continue
		}

		if err := Splice(lay.Lines, lay.TOC, tocLines); err != nil {
			return nil, fmt.Errorf("toc: %w", err)
		}
		if err := Splice(lay.Lines, lay.Index, indexLines); err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		logger.Debug("Paginated", "pages", lay.Pages, "passes", pass)

		return &Result{
			Lines:       lay.Lines,
			Pages:       lay.Pages,
			Passes:      pass,
			Plan:        plan,
			Assignments: lay.Assignments,
			TOC:         lay.TOC,
			Index:       lay.Index,
		}, nil
	}
}

type section struct {
	render  Deferred
	present bool
}

func (s section) draw() []string {
	if !s.present || s.render == nil {
		return nil
	}
	return s.render()
}

// placed reports whether the layout walk reaches marker.
func placed(src Source, marker int) bool {
	return marker >= 0 && marker <= len(src.Lines)
}

func overflow(plan, next Plan) error {
	if next.TOC > plan.TOC {
		return fmt.Errorf("toc: %w: %d lines rendered, %d reserved", ErrReservationOverflow, next.TOC, plan.TOC)
	}
	return fmt.Errorf("index: %w: %d lines rendered, %d reserved", ErrReservationOverflow, next.Index, plan.Index)
}

// String returns the paginated document as text.
func (r *Result) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}

// WriteTo writes every line followed by a newline.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, line := range r.Lines {
		m, err := io.WriteString(w, line+"\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// PageStarts returns the index of the first output line of every page.
func (r *Result) PageStarts() []int {
	starts := []int{0}
	for i, line := range r.Lines {
		if line == "\f" && i+1 < len(r.Lines) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
