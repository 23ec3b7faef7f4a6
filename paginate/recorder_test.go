package paginate

import (
	"reflect"
	"testing"
)

func TestRecorderHints(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a", "b")
	rec.ForceBreak()
	rec.Write("c")
	rec.Need(3)
	rec.Write("d")
	rec.Write()
	rec.Write("e", "f")

	src := rec.Source()
	expected := map[int]Hint{0: 2, 2: ForcedBreak, 3: 3, 4: 2}
	if !reflect.DeepEqual(src.Hints, expected) {
		t.Errorf("expected hints %v, got %v", expected, src.Hints)
	}
	if rec.Len() != 6 {
		t.Errorf("expected 6 lines, got %d", rec.Len())
	}
}

func TestRecorderLargerHintWins(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a")
	rec.Need(1)
	rec.Write("b", "c")

	if h := rec.Source().Hints[1]; h != 2 {
		t.Errorf("expected hint 2, got %d", h)
	}
}

func TestRecorderMarks(t *testing.T) {
	rec := NewRecorder()
	rec.MarkTOC()
	rec.MarkIndex()
	rec.Write("title")
	rec.MarkHeading("intro")
	rec.MarkIndex(IndexRef{Term: "pages"}, IndexRef{Term: "pages", Subterm: "breaks"})
	rec.Write("1. Introduction")
	rec.MarkIndex(IndexRef{Term: "fill"})
	rec.MarkIndexSection()

	src := rec.Source()
	if src.TOCMarker != 0 {
		t.Errorf("expected toc marker 0, got %d", src.TOCMarker)
	}
	if src.IndexMarker != 2 {
		t.Errorf("expected index marker 2, got %d", src.IndexMarker)
	}
	if src.Headings[1] != "intro" {
		t.Errorf("expected heading at 1, got %v", src.Headings)
	}
	expected := map[int][]IndexRef{
		1: {{Term: "pages"}, {Term: "pages", Subterm: "breaks"}},
		2: {{Term: "fill"}},
	}
	if !reflect.DeepEqual(src.IndexRefs, expected) {
		t.Errorf("expected index refs %v, got %v", expected, src.IndexRefs)
	}
	if src.Marked(0) || !src.Marked(1) || !src.Marked(2) {
		t.Errorf("unexpected marked offsets in %v", src)
	}
}

func TestRecorderSourceIsSnapshot(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a")
	src := rec.Source()
	rec.Write("b")
	rec.MarkHeading("late")

	if len(src.Lines) != 1 {
		t.Errorf("expected 1 line in snapshot, got %d", len(src.Lines))
	}
	if len(src.Headings) != 0 {
		t.Errorf("expected no headings in snapshot, got %v", src.Headings)
	}
}

func TestRecorderWithoutSections(t *testing.T) {
	src := NewRecorder().Source()
	if src.TOCMarker != NoMarker || src.IndexMarker != NoMarker {
		t.Errorf("expected no markers, got %d and %d", src.TOCMarker, src.IndexMarker)
	}
}

func TestRecorderMarkIndexAt(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a", "b")
	rec.Write("c")
	rec.MarkIndexAt(2, IndexRef{Term: "late"})
	rec.MarkIndexAt(9, IndexRef{Term: "lost"})
	rec.MarkIndexAt(-1, IndexRef{Term: "lost"})

	expected := map[int][]IndexRef{2: {{Term: "late"}}}
	if got := rec.Source().IndexRefs; !reflect.DeepEqual(got, expected) {
		t.Errorf("expected index refs %v, got %v", expected, got)
	}
}
