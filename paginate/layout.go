package paginate

// Extent is a half-open range [Start, End) of output lines reserved for a
// deferred section on one page.
type Extent struct {
	Start int
	End   int
}

// Len returns the number of lines in the extent.
func (e Extent) Len() int {
	return e.End - e.Start
}

// Plan holds the number of lines reserved for each deferred section.
type Plan struct {
	TOC   int
	Index int
}

// Layout is a Source laid out into pages with blank placeholders for the
// deferred sections.
type Layout struct {
	Lines []string
	Pages int

	// Assignments maps every marked buffer offset to the page it landed on.
	Assignments map[int]int

	TOC   []Extent
	Index []Extent
}

type engine struct {
	cfg     config
	running Running
	header  string
	out     []string
	fill    int
	page    int
}

// Layout walks src once and lays it out into pages, reserving plan.TOC and
// plan.Index blank lines at the respective markers. It does not modify src.
func (p *Paginator) Layout(src Source, plan Plan, running Running) *Layout {
	e := &engine{
		cfg:     p.cfg,
		running: running,
		header:  running.Header(p.cfg.width),
		out:     make([]string, 0, len(src.Lines)+len(src.Lines)/p.cfg.capacity*5+plan.TOC+plan.Index),
		page:    1,
	}
	lay := &Layout{Assignments: make(map[int]int)}

	for off, line := range src.Lines {
		e.reserveAt(off, src, plan, lay)
		if h, ok := src.Hints[off]; ok && e.breaksBefore(h) {
			e.pad()
		}
		e.emit(line)
		if src.Marked(off) {
			lay.Assignments[off] = e.page
		}
	}
	e.reserveAt(len(src.Lines), src, plan, lay)

	e.pad()
	e.out = append(e.out, "", e.running.Footer(e.page, e.cfg.width))

	lay.Lines = e.out
	lay.Pages = e.page
	return lay
}

func (e *engine) reserveAt(off int, src Source, plan Plan, lay *Layout) {
	if off == src.TOCMarker {
		lay.TOC = e.reserve(plan.TOC)
	}
	if off == src.IndexMarker {
		lay.Index = e.reserve(plan.Index)
	}
}

// breaksBefore reports whether the unit carrying hint h starts a new page.
// An empty page never gets padded.
func (e *engine) breaksBefore(h Hint) bool {
	if e.fill == 0 {
		return false
	}
	if h == ForcedBreak {
		return true
	}
	return h > 0 && e.cfg.autoBreaks && e.fill+int(h) > e.cfg.capacity
}

func (e *engine) pad() {
	for e.fill < e.cfg.capacity {
		e.out = append(e.out, "")
		e.fill++
	}
}

func (e *engine) newPage() {
	e.out = append(e.out, "", e.running.Footer(e.page, e.cfg.width), "\f", e.header, "")
	e.fill = 0
	e.page++
}

func (e *engine) emit(line string) {
	if e.fill+1 > e.cfg.capacity {
		e.newPage()
	}
	e.out = append(e.out, line)
	e.fill++
}

// reserve emits size blank lines as one unit and returns one extent per page
// they landed on.
func (e *engine) reserve(size int) []Extent {
	if size <= 0 {
		return nil
	}
	if e.breaksBefore(Hint(size)) {
		e.pad()
	}
	var extents []Extent
	start := len(e.out)
	for range size {
		if e.fill+1 > e.cfg.capacity {
			extents = appendExtent(extents, start, len(e.out))
			e.newPage()
			start = len(e.out)
		}
		e.out = append(e.out, "")
		e.fill++
	}
	return appendExtent(extents, start, len(e.out))
}

func appendExtent(extents []Extent, start, end int) []Extent {
	if end <= start {
		return extents
	}
	return append(extents, Extent{Start: start, End: end})
}
