package paginate

import (
	"maps"
	"slices"
)

// Stamper receives the page numbers assigned to headings and index
// references. ResetStamps is called before every round of stamping so that
// laying out the same document again does not accumulate stale pages.
type Stamper interface {
	ResetStamps()
	StampHeading(id string, page int)
	StampIndex(ref IndexRef, page int)
}

// Apply stamps the pages in assignments onto s, in buffer order.
func Apply(src Source, assignments map[int]int, s Stamper) {
	if s == nil {
		return
	}
	s.ResetStamps()
	for _, off := range slices.Sorted(maps.Keys(assignments)) {
		page := assignments[off]
		if id, ok := src.Headings[off]; ok {
			s.StampHeading(id, page)
		}
		for _, ref := range src.IndexRefs[off] {
			s.StampIndex(ref, page)
		}
	}
}

// PageMap is a Stamper that just collects pages.
type PageMap struct {
	Headings map[string]int
	Index    map[IndexRef][]int
}

// ResetStamps implements Stamper.
func (m *PageMap) ResetStamps() {
	m.Headings = make(map[string]int)
	m.Index = make(map[IndexRef][]int)
}

// StampHeading implements Stamper.
func (m *PageMap) StampHeading(id string, page int) {
	m.Headings[id] = page
}

// StampIndex implements Stamper.
func (m *PageMap) StampIndex(ref IndexRef, page int) {
	m.Index[ref] = append(m.Index[ref], page)
}
