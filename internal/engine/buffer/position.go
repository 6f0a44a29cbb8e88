package buffer

import "fmt"

// ByteOffset indexes the buffer text in bytes.
type ByteOffset = int64

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points by line, then column. It returns -1, 0 or 1.
func (p Point) Compare(q Point) int {
	switch {
	case p.Line != q.Line:
		if p.Line < q.Line {
			return -1
		}
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

// Range is the half-open byte span [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange returns [start, end).
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns End - Start.
func (r Range) Len() ByteOffset { return r.End - r.Start }

// IsEmpty reports a zero-length span, such as the span of an insertion.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IsValid reports Start <= End.
func (r Range) IsValid() bool { return r.Start <= r.End }

// Contains reports whether offset falls inside the span.
func (r Range) Contains(offset ByteOffset) bool {
	return r.Start <= offset && offset < r.End
}

// Within reports whether the span lies inside a text of length n.
func (r Range) Within(n ByteOffset) bool {
	return r.Start >= 0 && r.IsValid() && r.End <= n
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the tab width. Non-positive widths are ignored.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}
