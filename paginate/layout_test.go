package paginate

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

var testRunning = NewRunning(Metadata{
	Title:   "Test",
	Month:   "May",
	Year:    "2024",
	Authors: []string{"Doe"},
}, nil)

func numbered(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return lines
}

func blanks(n int) []string {
	return make([]string, n)
}

// pageBodies checks the page frame of lines and returns every page body.
func pageBodies(t *testing.T, lines []string, capacity int) [][]string {
	t.Helper()
	stride := capacity + 5
	if len(lines) < capacity+2 || (len(lines)-capacity-2)%stride != 0 {
		t.Fatalf("unexpected output length %d for capacity %d", len(lines), capacity)
	}
	header := testRunning.Header(DefaultWidth)
	pages := (len(lines)-capacity-2)/stride + 1
	bodies := make([][]string, 0, pages)
	for k := range pages {
		start := k * stride
		if k > 0 {
			if lines[start-3] != "\f" || lines[start-2] != header || lines[start-1] != "" {
				t.Fatalf("page %d: unexpected page head %q", k+1, lines[start-3:start])
			}
		}
		if lines[start+capacity] != "" {
			t.Fatalf("page %d: expected blank before footer, got %q", k+1, lines[start+capacity])
		}
		footer := lines[start+capacity+1]
		if !strings.HasSuffix(footer, PageLabel(k+1)) {
			t.Fatalf("page %d: unexpected footer %q", k+1, footer)
		}
		bodies = append(bodies, lines[start:start+capacity])
	}
	return bodies
}

func TestLayoutEarlyBreak(t *testing.T) {
	rec := NewRecorder()
	rec.Write(numbered("a", 8)...)
	rec.Write(numbered("b", 4)...)

	lay := New(WithCapacity(10)).Layout(rec.Source(), Plan{}, testRunning)
	bodies := pageBodies(t, lay.Lines, 10)
	if lay.Pages != 2 || len(bodies) != 2 {
		t.Fatalf("expected 2 pages, got %d", lay.Pages)
	}
	expected := [][]string{
		append(numbered("a", 8), blanks(2)...),
		append(numbered("b", 4), blanks(6)...),
	}
	if !reflect.DeepEqual(bodies, expected) {
		t.Errorf("expected %q, got %q", expected, bodies)
	}
}

func TestLayoutWithoutAutoBreaks(t *testing.T) {
	rec := NewRecorder()
	rec.Write(numbered("a", 8)...)
	rec.Write(numbered("b", 4)...)

	lay := New(WithCapacity(10), WithAutoBreaks(false)).Layout(rec.Source(), Plan{}, testRunning)
	bodies := pageBodies(t, lay.Lines, 10)
	expected := [][]string{
		{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "b0", "b1"},
		append([]string{"b2", "b3"}, blanks(8)...),
	}
	if !reflect.DeepEqual(bodies, expected) {
		t.Errorf("expected %q, got %q", expected, bodies)
	}
}

func TestLayoutForcedBreak(t *testing.T) {
	for _, auto := range []bool{true, false} {
		t.Run(fmt.Sprintf("autobreaks=%v", auto), func(t *testing.T) {
			rec := NewRecorder()
			rec.ForceBreak()
			rec.Write("a")
			rec.ForceBreak()
			rec.Write("b")

			lay := New(WithCapacity(10), WithAutoBreaks(auto)).Layout(rec.Source(), Plan{}, testRunning)
			bodies := pageBodies(t, lay.Lines, 10)
			expected := [][]string{
				append([]string{"a"}, blanks(9)...),
				append([]string{"b"}, blanks(9)...),
			}
			if !reflect.DeepEqual(bodies, expected) {
				t.Errorf("expected %q, got %q", expected, bodies)
			}
		})
	}
}

func TestLayoutCapacityBackstop(t *testing.T) {
	rec := NewRecorder()
	rec.Write(numbered("x", 25)...)

	lay := New(WithCapacity(10)).Layout(rec.Source(), Plan{}, testRunning)
	bodies := pageBodies(t, lay.Lines, 10)
	if lay.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", lay.Pages)
	}
	var content []string
	for _, body := range bodies {
		for _, line := range body {
			if line != "" {
				content = append(content, line)
			}
		}
	}
	if !reflect.DeepEqual(content, numbered("x", 25)) {
		t.Errorf("expected content to survive layout, got %q", content)
	}
}

func TestLayoutAssignments(t *testing.T) {
	rec := NewRecorder()
	rec.MarkIndex(IndexRef{Term: "start"})
	rec.Write(numbered("a", 8)...)
	rec.MarkHeading("two")
	rec.Write(numbered("b", 4)...)
	rec.MarkHeading("three")
	rec.Write(numbered("c", 9)...)

	lay := New(WithCapacity(10)).Layout(rec.Source(), Plan{}, testRunning)
	expected := map[int]int{0: 1, 8: 2, 12: 3}
	if !reflect.DeepEqual(lay.Assignments, expected) {
		t.Errorf("expected %v, got %v", expected, lay.Assignments)
	}
}

func TestLayoutReservation(t *testing.T) {
	for _, tc := range []struct {
		name     string
		before   int
		size     int
		auto     bool
		expected []Extent
	}{
		{"fits", 3, 4, true, []Extent{{3, 7}}},
		{"moved to next page", 8, 5, true, []Extent{{15, 20}}},
		{"split across pages", 8, 5, false, []Extent{{8, 10}, {15, 18}}},
		{"empty", 3, 0, true, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewRecorder()
			rec.Write(numbered("a", tc.before)...)
			rec.MarkTOC()
			rec.Write("after")

			lay := New(WithCapacity(10), WithAutoBreaks(tc.auto)).Layout(rec.Source(), Plan{TOC: tc.size}, testRunning)
			pageBodies(t, lay.Lines, 10)
			if !reflect.DeepEqual(lay.TOC, tc.expected) {
				t.Fatalf("expected extents %v, got %v", tc.expected, lay.TOC)
			}
			reserved := 0
			for _, ext := range lay.TOC {
				for _, line := range lay.Lines[ext.Start:ext.End] {
					if line != "" {
						t.Errorf("expected reserved line to be blank, got %q", line)
					}
				}
				reserved += ext.Len()
			}
			if reserved != tc.size {
				t.Errorf("expected %d reserved lines, got %d", tc.size, reserved)
			}
		})
	}
}

func TestLayoutReservationAtEnd(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a", "b")
	rec.MarkIndexSection()

	lay := New(WithCapacity(10)).Layout(rec.Source(), Plan{Index: 3}, testRunning)
	pageBodies(t, lay.Lines, 10)
	expected := []Extent{{2, 5}}
	if !reflect.DeepEqual(lay.Index, expected) {
		t.Errorf("expected %v, got %v", expected, lay.Index)
	}
}

func TestLayoutMarkerOutOfRange(t *testing.T) {
	rec := NewRecorder()
	rec.Write("a", "b")
	src := rec.Source()
	src.IndexMarker = 99

	lay := New(WithCapacity(10)).Layout(src, Plan{Index: 3}, testRunning)
	if lay.Index != nil {
		t.Errorf("expected no extents, got %v", lay.Index)
	}
	if lay.Pages != 1 {
		t.Errorf("expected 1 page, got %d", lay.Pages)
	}
}

func TestLayoutDoesNotModifySource(t *testing.T) {
	rec := NewRecorder()
	rec.Write(numbered("a", 12)...)
	src := rec.Source()
	before := rec.Source()

	New(WithCapacity(5)).Layout(src, Plan{}, testRunning)
	if !reflect.DeepEqual(src, before) {
		t.Errorf("expected source to be unchanged")
	}
}
