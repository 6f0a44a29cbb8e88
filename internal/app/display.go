package app

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/runpad/internal/config"
	"github.com/dshills/runpad/internal/document"
	"github.com/dshills/runpad/internal/errs"
	"github.com/dshills/runpad/internal/renderer/gutter"
	"github.com/dshills/runpad/internal/renderer/layout"
)

// Themes lists the accepted theme names.
var Themes = []string{"light", "dark"}

// ErrUnknownTheme is returned by SetTheme for a name not in Themes.
var ErrUnknownTheme = fmt.Errorf("theme %w", errs.ErrNotFound)

// Text area size used until SetViewport is called.
const (
	DefaultViewportRows    = 24
	DefaultViewportColumns = 80
)

// Display is the view state of the text area: the layout of the active
// document, the gutter aligned with it and the presentation settings.
// Each document keeps its own scroll position across tab switches.
// It implements execctx.ViewInterface.
type Display struct {
	docs   *document.Set
	view   *layout.View
	gutter *gutter.Gutter

	current uuid.UUID
	anchors map[uuid.UUID]anchor

	wordWrap  bool
	wrapWidth int
	fontSize  int
	theme     string
	rows      int
	columns   int
}

// NewDisplay creates a display over docs using the given settings.
func NewDisplay(docs *document.Set, s config.Settings) *Display {
	gcfg := gutter.DefaultConfig()
	gcfg.ShowLineNumbers = s.View.ShowLineNumbers

	d := &Display{
		docs:    docs,
		view:    layout.NewView(docs.Active().Buffer(), layout.NewEngine(s.Editor.TabWidth)),
		gutter:  gutter.New(gcfg),
		current: docs.Active().ID,
		anchors: map[uuid.UUID]anchor{},
		rows:    DefaultViewportRows,
		columns: DefaultViewportColumns,
	}
	d.Apply(s)
	return d
}

// Apply adopts the editor and view sections of s.
// The theme falls back to the first known theme when s names an unknown one.
func (d *Display) Apply(s config.Settings) {
	d.wordWrap = s.Editor.WordWrap
	d.wrapWidth = s.Editor.WrapWidth
	d.fontSize = s.View.FontSize
	d.theme = Themes[0]
	if knownTheme(s.View.Theme) {
		d.theme = s.View.Theme
	}
	d.gutter.SetVisible(s.View.ShowLineNumbers)
	d.view.SetTabWidth(s.Editor.TabWidth)
	d.view.SetRowHeight(s.View.RowHeight())
	d.applyWrap()
	d.Refresh()
}

// ToggleLineNumbers flips gutter visibility and returns the new state.
func (d *Display) ToggleLineNumbers() bool {
	on := d.gutter.Toggle()
	d.Refresh()
	return on
}

// ToggleWordWrap flips wrapping and returns the new state.
func (d *Display) ToggleWordWrap() bool {
	d.wordWrap = !d.wordWrap
	d.applyWrap()
	d.Refresh()
	return d.wordWrap
}

// SetFontSize changes the font size and with it the row height.
func (d *Display) SetFontSize(size int) error {
	if err := config.ValidateFontSize(size); err != nil {
		return err
	}
	d.fontSize = size
	d.view.SetRowHeight(config.ViewSettings{FontSize: size}.RowHeight())
	d.Refresh()
	return nil
}

// SetTheme selects a theme by name.
func (d *Display) SetTheme(name string) error {
	if !knownTheme(name) {
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownTheme, name, strings.Join(Themes, ", "))
	}
	d.theme = name
	return nil
}

// ScrollRows moves the view by delta rendered rows and returns the rows moved.
func (d *Display) ScrollRows(delta int) int {
	d.sync()
	moved := d.view.ScrollRows(delta)
	d.Refresh()
	return moved
}

// Refresh lays out the active document again and realigns the gutter.
func (d *Display) Refresh() {
	d.sync()
	buf := d.docs.Active().Buffer()
	d.gutter.Refresh(d.view, gutter.Viewport{Height: d.rows * d.view.RowHeight()}, buf.LineCount())
}

// SetViewport sets the text area size in rows and columns.
// Non-positive values keep the current size.
func (d *Display) SetViewport(rows, columns int) {
	if rows > 0 {
		d.rows = rows
	}
	if columns > 0 {
		d.columns = columns
	}
	d.applyWrap()
	d.Refresh()
}

// LineNumbers reports whether the gutter is visible.
func (d *Display) LineNumbers() bool { return d.gutter.Visible() }

// WordWrap reports whether wrapping is on.
func (d *Display) WordWrap() bool { return d.wordWrap }

// FontSize returns the current font size.
func (d *Display) FontSize() int { return d.fontSize }

// Theme returns the current theme name.
func (d *Display) Theme() string { return d.theme }

// Gutter returns the gutter.
func (d *Display) Gutter() *gutter.Gutter { return d.gutter }

// View returns the layout view.
func (d *Display) View() *layout.View { return d.view }

// Render returns the visible rows, each prefixed with its gutter label.
func (d *Display) Render() []string {
	d.Refresh()
	buf := d.docs.Active().Buffer()
	prefixes := d.gutter.Render()
	marks := d.gutter.Marks()

	out := make([]string, len(marks))
	for i, m := range marks {
		text := buf.LineText(m.Line)
		row, _ := d.view.RowAt(m.Y)
		ll := d.view.Cache().Get(m.Line, text)
		end := len(text)
		if row.Segment+1 < ll.RowCount {
			end = ll.RowStart(row.Segment + 1)
		}
		line := text[row.Start:end]
		if prefixes != nil {
			line = prefixes[i] + line
		}
		out[i] = line
	}
	return out
}

// anchor is a saved scroll position.
type anchor struct {
	line    uint32
	segment int
}

// sync points the layout at the active document's buffer, saving the
// scroll position of the document it leaves and restoring the one it
// switches to.
func (d *Display) sync() {
	doc := d.docs.Active()
	if d.view.Lines() == layout.LineSource(doc.Buffer()) {
		return
	}

	line, seg := d.view.TopLine()
	d.anchors[d.current] = anchor{line: line, segment: seg}
	d.prune()

	d.view.SetLines(doc.Buffer())
	if a, ok := d.anchors[doc.ID]; ok {
		d.view.ScrollTo(a.line, a.segment)
	}
	d.current = doc.ID
}

// prune forgets the scroll positions of closed documents.
func (d *Display) prune() {
	open := make(map[uuid.UUID]bool, d.docs.Len())
	for _, doc := range d.docs.Documents() {
		open[doc.ID] = true
	}
	for id := range d.anchors {
		if !open[id] {
			delete(d.anchors, id)
		}
	}
}

// applyWrap wraps at the configured width, or the text area width when
// none is configured.
func (d *Display) applyWrap() {
	if !d.wordWrap {
		d.view.SetWrap(0, false)
		return
	}
	width := d.wrapWidth
	if width <= 0 {
		width = d.columns
	}
	d.view.SetWrap(width, true)
}

func knownTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
