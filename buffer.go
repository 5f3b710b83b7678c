package flux

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Buffer is a 2D grid of cells representing a drawable surface.
// Rows that have been written since the last flush are tracked so the
// screen can skip untouched rows when diffing.
type Buffer struct {
	cells  []Cell
	width  int
	height int
	dirty  []bool // per-row write tracking
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	return &Buffer{
		cells:  cells,
		width:  width,
		height: height,
		dirty:  make([]bool, height),
	}
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// index converts x,y coordinates to a slice index.
func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set sets the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
	b.dirty[y] = true
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
	for y := range b.dirty {
		b.dirty[y] = true
	}
}

// Clear clears the buffer to empty cells with default style.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// FillRect fills a rectangular region with the given cell.
func (b *Buffer) FillRect(x, y, width, height int, c Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.Set(x+dx, y+dy, c)
		}
	}
}

// WriteString writes a string at the given coordinates with the given
// style. Double-width runes occupy two cells; the second holds a zero
// rune placeholder the flusher skips. Returns the number of cells used.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringClipped(x, y, s, style, b.width-x)
}

// WriteStringClipped writes a string, stopping at maxWidth cells.
// Returns the number of cells used.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	written := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue // combining marks are not representable per-cell
		}
		if written+rw > maxWidth || !b.InBounds(x, y) {
			break
		}
		b.Set(x, y, NewCell(r, style))
		if rw == 2 {
			b.Set(x+1, y, Cell{Style: style}) // placeholder half
		}
		x += rw
		written += rw
	}
	return written
}

// HLine draws a horizontal line of the given rune.
func (b *Buffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(r, style))
	}
}

// VLine draws a vertical line of the given rune.
func (b *Buffer) VLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x, y+i, NewCell(r, style))
	}
}

// BorderStyle defines the characters used to draw a border.
type BorderStyle struct {
	Top, Bottom, Left, Right                   rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

// Predefined border styles.
var (
	BorderSingle = BorderStyle{
		Top: '─', Bottom: '─', Left: '│', Right: '│',
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	}
	BorderRounded = BorderStyle{
		Top: '─', Bottom: '─', Left: '│', Right: '│',
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	}
	BorderDouble = BorderStyle{
		Top: '═', Bottom: '═', Left: '║', Right: '║',
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
	}
)

// DrawBorder draws a border around the given rectangle.
func (b *Buffer) DrawBorder(x, y, width, height int, border BorderStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}

	b.HLine(x+1, y, width-2, border.Top, style)
	b.HLine(x+1, y+height-1, width-2, border.Bottom, style)
	b.VLine(x, y+1, height-2, border.Left, style)
	b.VLine(x+width-1, y+1, height-2, border.Right, style)

	b.Set(x, y, NewCell(border.TopLeft, style))
	b.Set(x+width-1, y, NewCell(border.TopRight, style))
	b.Set(x, y+height-1, NewCell(border.BottomLeft, style))
	b.Set(x+width-1, y+height-1, NewCell(border.BottomRight, style))
}

// RowDirty reports whether the row has been written since the last
// ClearDirtyFlags.
func (b *Buffer) RowDirty(y int) bool {
	if y < 0 || y >= len(b.dirty) {
		return false
	}
	return b.dirty[y]
}

// ClearDirtyFlags resets row tracking after a flush.
func (b *Buffer) ClearDirtyFlags() {
	for y := range b.dirty {
		b.dirty[y] = false
	}
}

// Resize changes the buffer dimensions, discarding existing content.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	b.cells = cells
	b.width = width
	b.height = height
	b.dirty = make([]bool, height)
}

// String returns the buffer content as plain text, one line per row.
// Styles are discarded. Mostly useful in tests.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.Get(x, y).Rune)
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
