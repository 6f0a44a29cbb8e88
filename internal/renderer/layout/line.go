// Package layout computes how logical lines map to rendered rows.
//
// A logical line is laid out into one or more rendered rows depending on
// the wrap width. Widths come from go-runewidth so wide (CJK) characters
// take two columns and control characters take none; tabs expand to the
// next tab stop.
package layout

import (
	"github.com/mattn/go-runewidth"
)

// LineLayout represents the visual layout of a single buffer line.
type LineLayout struct {
	BufferLine uint32 // The buffer line number (0-indexed)

	// WrapPoints holds the byte offsets within the line where each
	// continuation row begins. Empty when the line fits on one row.
	WrapPoints []int
	RowCount   int // Number of rendered rows (always >= 1)

	Width   int  // Total visual width in columns
	HasTabs bool // Contains tab characters
	HasWide bool // Contains wide (CJK) characters
}

// RowStart returns the byte offset within the line where row begins.
func (l *LineLayout) RowStart(row int) int {
	if row <= 0 || len(l.WrapPoints) == 0 {
		return 0
	}
	if row > len(l.WrapPoints) {
		row = len(l.WrapPoints)
	}
	return l.WrapPoints[row-1]
}

// Engine computes line layouts.
type Engine struct {
	tabWidth   int
	wrapWidth  int  // 0 = no wrap
	wrapAtWord bool // Try to wrap at word boundaries
}

// NewEngine creates a layout engine with the given tab width.
// Wrapping is disabled until SetWrap is called.
func NewEngine(tabWidth int) *Engine {
	e := &Engine{tabWidth: 4, wrapAtWord: true}
	e.SetTabWidth(tabWidth)
	return e
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// SetTabWidth sets the tab width. Non-positive widths are ignored.
func (e *Engine) SetTabWidth(width int) {
	if width > 0 {
		e.tabWidth = width
	}
}

// tabAdvance returns how many columns a tab starting at col occupies.
func (e *Engine) tabAdvance(col int) int {
	return e.tabWidth - col%e.tabWidth
}

// WrapWidth returns the current wrap width (0 = no wrap).
func (e *Engine) WrapWidth() int {
	return e.wrapWidth
}

// SetWrap configures wrapping. A width of 0 disables it.
func (e *Engine) SetWrap(width int, atWord bool) {
	if width < 0 {
		width = 0
	}
	e.wrapWidth = width
	e.wrapAtWord = atWord
}

// Layout computes the visual layout for a line.
func (e *Engine) Layout(line string, bufferLine uint32) *LineLayout {
	layout := &LineLayout{
		BufferLine: bufferLine,
		RowCount:   1,
	}

	col := 0      // visual column within the line
	rowStart := 0 // visual column where the current row starts
	breakByte, breakCol := -1, 0

	for i, r := range line {
		var width int
		if r == '\t' {
			layout.HasTabs = true
			width = e.tabAdvance(col)
		} else {
			width = runewidth.RuneWidth(r)
			if width == 2 {
				layout.HasWide = true
			}
		}

		if e.wrapWidth > 0 && width > 0 && col > rowStart && col-rowStart+width > e.wrapWidth {
			wrapByte, wrapCol := i, col
			if e.wrapAtWord && breakByte > layout.RowStart(layout.RowCount-1) {
				wrapByte, wrapCol = breakByte, breakCol
			}
			layout.WrapPoints = append(layout.WrapPoints, wrapByte)
			layout.RowCount++
			rowStart = wrapCol
			breakByte = -1
		}

		col += width
		if r == ' ' || r == '\t' {
			// A row may break right after whitespace.
			breakByte, breakCol = i+1, col
		}
	}

	layout.Width = col
	return layout
}
