package paginate

import "maps"

// Hint is the recorded size of the unit starting at a buffer offset.
type Hint int

// ForcedBreak is the hint value that always starts a new page.
const ForcedBreak Hint = -1

// NoMarker is the marker offset used when a deferred section is absent.
const NoMarker = -1

// IndexRef is a single index reference. Subterm is empty for references to
// the term itself.
type IndexRef struct {
	Term    string
	Subterm string
}

// Source is the frozen output of a rendering pass.
type Source struct {
	Lines     []string
	Hints     map[int]Hint
	Headings  map[int]string
	IndexRefs map[int][]IndexRef

	// Offsets in Lines where the TOC and the index are reserved, or NoMarker.
	TOCMarker   int
	IndexMarker int
}

// Marked reports whether any heading or index reference starts at offset.
func (s Source) Marked(offset int) bool {
	if _, ok := s.Headings[offset]; ok {
		return true
	}
	return len(s.IndexRefs[offset]) > 0
}

// Recorder is an append-only line buffer that records break hints and
// structural marks as lines are written.
type Recorder struct {
	lines     []string
	hints     map[int]Hint
	headings  map[int]string
	indexRefs map[int][]IndexRef
	toc       int
	index     int
}

// NewRecorder returns an empty Recorder with no deferred sections.
func NewRecorder() *Recorder {
	return &Recorder{
		hints:     make(map[int]Hint),
		headings:  make(map[int]string),
		indexRefs: make(map[int][]IndexRef),
		toc:       NoMarker,
		index:     NoMarker,
	}
}

// Len returns the current end offset of the buffer.
func (r *Recorder) Len() int {
	return len(r.lines)
}

// Write appends lines as one unit and records its size at the offset where
// it begins. A forced break or a larger hint already recorded at that offset
// is kept.
func (r *Recorder) Write(lines ...string) {
	if len(lines) == 0 {
		return
	}
	begin := len(r.lines)
	r.lines = append(r.lines, lines...)
	r.setHint(begin, Hint(len(lines)))
}

// Need asks for the next n lines to be kept on one page when possible.
func (r *Recorder) Need(n int) {
	if n <= 0 {
		return
	}
	r.setHint(len(r.lines), Hint(n))
}

// ForceBreak starts a new page at the current end of the buffer.
func (r *Recorder) ForceBreak() {
	r.hints[len(r.lines)] = ForcedBreak
}

func (r *Recorder) setHint(offset int, h Hint) {
	if old, ok := r.hints[offset]; ok && (old == ForcedBreak || old > h) {
		return
	}
	r.hints[offset] = h
}

// MarkHeading associates the current end offset with a heading id.
func (r *Recorder) MarkHeading(id string) {
	r.headings[len(r.lines)] = id
}

// MarkIndex adds index references at the current end offset.
func (r *Recorder) MarkIndex(refs ...IndexRef) {
	if len(refs) == 0 {
		return
	}
	off := len(r.lines)
	r.indexRefs[off] = append(r.indexRefs[off], refs...)
}

// MarkIndexAt adds index references at an offset already written.
// Offsets past the end are ignored.
func (r *Recorder) MarkIndexAt(off int, refs ...IndexRef) {
	if len(refs) == 0 || off < 0 || off > len(r.lines) {
		return
	}
	r.indexRefs[off] = append(r.indexRefs[off], refs...)
}

// MarkTOC reserves the table of contents at the current end offset.
func (r *Recorder) MarkTOC() {
	r.toc = len(r.lines)
}

// MarkIndexSection reserves the index at the current end offset.
func (r *Recorder) MarkIndexSection() {
	r.index = len(r.lines)
}

// Source returns a snapshot of everything recorded so far. Later writes to
// the recorder do not affect the returned Source.
func (r *Recorder) Source() Source {
	refs := make(map[int][]IndexRef, len(r.indexRefs))
	for k, v := range r.indexRefs {
		refs[k] = append([]IndexRef(nil), v...)
	}
	return Source{
		Lines:       append([]string(nil), r.lines...),
		Hints:       maps.Clone(r.hints),
		Headings:    maps.Clone(r.headings),
		IndexRefs:   refs,
		TOCMarker:   r.toc,
		IndexMarker: r.index,
	}
}
