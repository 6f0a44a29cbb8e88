package layout

import (
	"strings"
	"testing"
)

type lines []string

func (l lines) LineCount() uint32        { return uint32(len(l)) }
func (l lines) LineText(i uint32) string { return l[i] }

func newTestView(src LineSource) *View {
	v := NewView(src, NewEngine(4))
	v.SetWrap(10, false)
	v.SetRowHeight(10)
	return v
}

func TestViewRowAt(t *testing.T) {
	v := newTestView(lines{"1", "2", "333333333333", "4"})

	tests := []struct {
		y       int
		line    uint32
		segment int
		rowY    int
	}{
		{0, 0, 0, 0},
		{9, 0, 0, 0},
		{10, 1, 0, 10},
		{25, 2, 0, 20},
		{35, 2, 1, 30},
		{45, 3, 0, 40},
	}

	for _, tt := range tests {
		row, ok := v.RowAt(tt.y)
		if !ok {
			t.Errorf("RowAt(%d) not found", tt.y)
			continue
		}
		if row.Line != tt.line || row.Segment != tt.segment || row.Y != tt.rowY {
			t.Errorf("RowAt(%d) = %+v, want line %d segment %d y %d", tt.y, row, tt.line, tt.segment, tt.rowY)
		}
	}

	if row, _ := v.RowAt(35); row.Start != 10 || !row.IsContinuation() {
		t.Errorf("continuation row = %+v", row)
	}
	if _, ok := v.RowAt(50); ok {
		t.Error("RowAt past end should report false")
	}
	if _, ok := v.RowAt(-1); ok {
		t.Error("RowAt(-1) should report false")
	}
}

func TestViewNextStopsAtEnd(t *testing.T) {
	v := newTestView(lines{"a", "b"})

	row, ok := v.RowAt(0)
	if !ok {
		t.Fatal("RowAt(0) failed")
	}
	row, ok = v.Next(row)
	if !ok || row.Line != 1 {
		t.Fatalf("Next = %+v, %v", row, ok)
	}
	if _, ok := v.Next(row); ok {
		t.Error("Next past the last row should report false")
	}
}

func TestViewScrollRows(t *testing.T) {
	v := newTestView(lines{"1", "2", "333333333333", "4"})

	if moved := v.ScrollRows(3); moved != 3 {
		t.Errorf("ScrollRows(3) moved %d", moved)
	}
	if line, seg := v.TopLine(); line != 2 || seg != 1 {
		t.Errorf("TopLine = (%d,%d), want (2,1)", line, seg)
	}

	row, ok := v.RowAt(0)
	if !ok || row.Line != 2 || row.Segment != 1 || row.Y != 0 {
		t.Errorf("RowAt(0) after scroll = %+v", row)
	}

	if moved := v.ScrollRows(10); moved != 1 {
		t.Errorf("ScrollRows past end moved %d, want 1", moved)
	}
	if moved := v.ScrollRows(-2); moved != -2 {
		t.Errorf("ScrollRows(-2) moved %d", moved)
	}
	if line, seg := v.TopLine(); line != 2 || seg != 0 {
		t.Errorf("TopLine = (%d,%d), want (2,0)", line, seg)
	}
	if moved := v.ScrollRows(-10); moved != -2 {
		t.Errorf("ScrollRows(-10) moved %d, want -2", moved)
	}
}

func TestViewScrollToLineClamps(t *testing.T) {
	v := newTestView(lines{"a", "b", "c"})
	v.ScrollToLine(100)
	if line, _ := v.TopLine(); line != 2 {
		t.Errorf("TopLine = %d, want 2", line)
	}
}

func TestViewScrollTo(t *testing.T) {
	v := newTestView(lines{"333333333333", "b"})

	v.ScrollTo(0, 1)
	if line, seg := v.TopLine(); line != 0 || seg != 1 {
		t.Errorf("TopLine = (%d,%d), want (0,1)", line, seg)
	}
	v.ScrollTo(0, 5)
	if _, seg := v.TopLine(); seg != 1 {
		t.Errorf("segment = %d, want clamp to 1", seg)
	}
}

func TestViewAnchorClampsAfterShrink(t *testing.T) {
	src := lines{"a", "b", "c", "d"}
	v := newTestView(src)
	v.ScrollToLine(3)

	v.SetLines(src[:2])
	if line, _ := v.TopLine(); line != 0 {
		t.Errorf("SetLines should reset the anchor, got %d", line)
	}

	v.ScrollToLine(1)
	v.lines = src[:1]
	if line, _ := v.TopLine(); line != 0 {
		t.Errorf("anchor should clamp to the last line, got %d", line)
	}
}

func TestViewSetWrapClampsSegment(t *testing.T) {
	v := newTestView(lines{"333333333333"})
	v.ScrollRows(1)
	if _, seg := v.TopLine(); seg != 1 {
		t.Fatalf("segment = %d, want 1", seg)
	}

	v.SetWrap(0, false)
	if _, seg := v.TopLine(); seg != 0 {
		t.Errorf("segment after unwrap = %d, want 0", seg)
	}
}

func TestViewLineHeight(t *testing.T) {
	v := newTestView(lines{"short", strings.Repeat("x", 25)})
	if h := v.LineHeight(0); h != 10 {
		t.Errorf("LineHeight(0) = %d, want 10", h)
	}
	if h := v.LineHeight(1); h != 30 {
		t.Errorf("LineHeight(1) = %d, want 30", h)
	}
	if h := v.LineHeight(5); h != 0 {
		t.Errorf("LineHeight past end = %d, want 0", h)
	}
}

func TestViewRowAtStartsFromAnchor(t *testing.T) {
	src := make(lines, 100000)
	for i := range src {
		src[i] = "line"
	}
	v := newTestView(src)
	v.ScrollToLine(99990)

	if _, ok := v.RowAt(30); !ok {
		t.Fatal("RowAt(30) failed")
	}
	if misses := v.Cache().Stats().Misses; misses > 5 {
		t.Errorf("laid out %d lines, want only the visible ones", misses)
	}
}
