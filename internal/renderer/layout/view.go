package layout

// DefaultRowHeight is the row height in pixels used when none is set.
const DefaultRowHeight = 16

// LineSource provides the logical lines a View lays out.
type LineSource interface {
	LineCount() uint32
	LineText(line uint32) string
}

// Row is one rendered row of a laid out line.
type Row struct {
	Line    uint32 // logical line (0-indexed)
	Segment int    // wrap segment within the line, 0 for the first row
	Start   int    // byte offset within the line where the row begins
	Y       int    // pixel offset from the top of the view
	Height  int    // row height in pixels
}

// IsContinuation reports whether the row continues a wrapped line.
func (r Row) IsContinuation() bool {
	return r.Segment > 0
}

// View lays out a line source from a scroll anchor.
// The anchor is the logical line and wrap segment shown at the top of the
// view; row lookups walk forward from it and never from line zero.
type View struct {
	lines     LineSource
	cache     *Cache
	rowHeight int

	topLine    uint32
	topSegment int
}

// NewView creates a view over lines using engine for layout.
func NewView(lines LineSource, engine *Engine) *View {
	return &View{
		lines:     lines,
		cache:     NewCache(engine, 4096),
		rowHeight: DefaultRowHeight,
	}
}

// SetLines replaces the line source and resets the scroll anchor.
func (v *View) SetLines(lines LineSource) {
	v.lines = lines
	v.cache.InvalidateAll()
	v.topLine, v.topSegment = 0, 0
}

// Lines returns the current line source.
func (v *View) Lines() LineSource {
	return v.lines
}

// Engine returns the layout engine.
func (v *View) Engine() *Engine {
	return v.cache.Engine()
}

// Cache returns the line layout cache.
func (v *View) Cache() *Cache {
	return v.cache
}

// SetWrap changes the wrap configuration and drops cached layouts.
func (v *View) SetWrap(width int, atWord bool) {
	v.cache.Engine().SetWrap(width, atWord)
	v.cache.InvalidateAll()
	v.clampAnchor()
}

// SetTabWidth changes the tab width and drops cached layouts.
func (v *View) SetTabWidth(width int) {
	v.cache.Engine().SetTabWidth(width)
	v.cache.InvalidateAll()
	v.clampAnchor()
}

// RowHeight returns the row height in pixels.
func (v *View) RowHeight() int {
	return v.rowHeight
}

// SetRowHeight sets the row height in pixels. Non-positive values are ignored.
func (v *View) SetRowHeight(h int) {
	if h > 0 {
		v.rowHeight = h
	}
}

// TopLine returns the logical line and segment at the top of the view.
func (v *View) TopLine() (line uint32, segment int) {
	v.clampAnchor()
	return v.topLine, v.topSegment
}

// ScrollToLine places the first row of line at the top of the view.
func (v *View) ScrollToLine(line uint32) {
	v.topLine, v.topSegment = line, 0
	v.clampAnchor()
}

// ScrollTo places the given wrap segment of line at the top of the view.
func (v *View) ScrollTo(line uint32, segment int) {
	v.topLine, v.topSegment = line, segment
	v.clampAnchor()
}

// ScrollRows moves the anchor by delta rendered rows (negative scrolls up).
// Returns the number of rows actually moved.
func (v *View) ScrollRows(delta int) int {
	v.clampAnchor()
	moved := 0
	for delta > 0 {
		if v.topSegment+1 < v.layout(v.topLine).RowCount {
			v.topSegment++
		} else if v.topLine+1 < v.lineCount() {
			v.topLine++
			v.topSegment = 0
		} else {
			break
		}
		delta--
		moved++
	}
	for delta < 0 {
		if v.topSegment > 0 {
			v.topSegment--
		} else if v.topLine > 0 {
			v.topLine--
			v.topSegment = v.layout(v.topLine).RowCount - 1
		} else {
			break
		}
		delta++
		moved--
	}
	return moved
}

// LineHeight returns the pixel height of a logical line.
func (v *View) LineHeight(line uint32) int {
	if line >= v.lineCount() {
		return 0
	}
	return v.layout(line).RowCount * v.rowHeight
}

// RowAt returns the rendered row covering pixel y, measured from the top
// of the view. Returns false when y is negative or past the document end.
func (v *View) RowAt(y int) (Row, bool) {
	if y < 0 || v.lineCount() == 0 {
		return Row{}, false
	}
	v.clampAnchor()

	row := v.row(v.topLine, v.topSegment, 0)
	for y >= row.Y+row.Height {
		next, ok := v.Next(row)
		if !ok {
			return Row{}, false
		}
		row = next
	}
	return row, true
}

// Next returns the rendered row that follows row.
// Returns false at the end of the document.
func (v *View) Next(row Row) (Row, bool) {
	y := row.Y + v.rowHeight
	if row.Segment+1 < v.layout(row.Line).RowCount {
		return v.row(row.Line, row.Segment+1, y), true
	}
	if row.Line+1 < v.lineCount() {
		return v.row(row.Line+1, 0, y), true
	}
	return Row{}, false
}

func (v *View) row(line uint32, segment, y int) Row {
	return Row{
		Line:    line,
		Segment: segment,
		Start:   v.layout(line).RowStart(segment),
		Y:       y,
		Height:  v.rowHeight,
	}
}

func (v *View) layout(line uint32) *LineLayout {
	return v.cache.Get(line, v.lines.LineText(line))
}

func (v *View) lineCount() uint32 {
	if v.lines == nil {
		return 0
	}
	return v.lines.LineCount()
}

// clampAnchor keeps the anchor inside the document after edits or
// layout changes shrink it.
func (v *View) clampAnchor() {
	n := v.lineCount()
	if n == 0 {
		v.topLine, v.topSegment = 0, 0
		return
	}
	if v.topLine >= n {
		v.topLine = n - 1
		v.topSegment = 0
	}
	if rows := v.layout(v.topLine).RowCount; v.topSegment >= rows {
		v.topSegment = rows - 1
	}
	if v.topSegment < 0 {
		v.topSegment = 0
	}
}
