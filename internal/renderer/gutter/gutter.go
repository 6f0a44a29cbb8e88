// Package gutter keeps the line-number column aligned with rendered rows.
//
// The gutter walks the rows a layout.View renders inside the viewport and
// produces one mark per row: the 1-based line number on the first row of a
// logical line and an empty label on wrapped continuation rows.
package gutter

import (
	"sync"

	"github.com/dshills/runpad/internal/renderer/layout"
)

// RowSource provides rendered rows in top to bottom order.
// layout.View implements it.
type RowSource interface {
	// RowAt returns the row covering pixel y, or false past the document end.
	RowAt(y int) (layout.Row, bool)

	// Next returns the row after row, or false at the document end.
	Next(row layout.Row) (layout.Row, bool)
}

// Viewport is the visible pixel span of the text area.
type Viewport struct {
	Top    int
	Height int
}

// Bottom returns the first pixel below the viewport.
func (v Viewport) Bottom() int {
	return v.Top + v.Height
}

// Mark is one gutter label aligned with a rendered row.
type Mark struct {
	Y     int    // pixel offset of the row
	Line  uint32 // logical line (0-indexed)
	Label string // line number, or "" on continuation rows
}

// Sync computes the marks for the rows visible in vp.
// The walk stops at the bottom of the viewport or the end of the document.
func Sync(src RowSource, vp Viewport) []Mark {
	if src == nil || vp.Height <= 0 {
		return nil
	}

	var marks []Mark
	row, ok := src.RowAt(vp.Top)
	for ok && row.Y < vp.Bottom() {
		m := Mark{Y: row.Y, Line: row.Line}
		if !row.IsContinuation() {
			m.Label = FormatNumber(row.Line + 1)
		}
		marks = append(marks, m)
		row, ok = src.Next(row)
	}
	return marks
}

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum width for auto-calculated widths.
	MinLineNumberWidth int
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
	}
}

// Gutter holds the most recently synchronized marks.
type Gutter struct {
	mu sync.RWMutex

	config    Config
	marks     []Mark
	lineCount uint32
}

// New creates a new gutter with the given configuration.
func New(config Config) *Gutter {
	return &Gutter{config: config}
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the gutter configuration.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
}

// Visible reports whether line numbers are shown.
func (g *Gutter) Visible() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.ShowLineNumbers
}

// SetVisible shows or hides line numbers. The marks are kept either way.
func (g *Gutter) SetVisible(visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.ShowLineNumbers = visible
}

// Toggle flips line number visibility and returns the new state.
func (g *Gutter) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.ShowLineNumbers = !g.config.ShowLineNumbers
	return g.config.ShowLineNumbers
}

// Refresh recomputes the marks. Call it after content, scroll or wrap change.
// lineCount sizes the number column.
func (g *Gutter) Refresh(src RowSource, vp Viewport, lineCount uint32) {
	marks := Sync(src, vp)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.marks = marks
	g.lineCount = lineCount
}

// Marks returns a copy of the current marks.
func (g *Gutter) Marks() []Mark {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Mark, len(g.marks))
	copy(out, g.marks)
	return out
}

// Labels returns the label of every current mark in order.
func (g *Gutter) Labels() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	labels := make([]string, len(g.marks))
	for i, m := range g.marks {
		labels[i] = m.Label
	}
	return labels
}

// Width returns the gutter width in columns, including the separator.
// A hidden gutter has width 0.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.config.ShowLineNumbers {
		return 0
	}
	return CalculateWidth(g.lineCount, g.config.MinLineNumberWidth) + 1
}

// Render returns the padded gutter text for each mark.
// A hidden gutter renders nothing.
func (g *Gutter) Render() []string {
	width := g.Width()
	if width == 0 {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.marks))
	for i, m := range g.marks {
		out[i] = PadLeft(m.Label, width-1) + " "
	}
	return out
}
