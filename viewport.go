package flux

// SlotSource supplies the viewport with its children. Count is the
// total number of slots, Build creates the component for one slot, and
// IndexForKey (optional) resolves an item key to a slot index for
// state preservation across reordering.
type SlotSource struct {
	Count       func() int
	Build       func(slot int) Component
	IndexForKey func(key any) int
}

// Viewport renders only the visible slots of a large slot sequence.
// It maintains a scroll window and only builds components for visible
// rows. Slots are arranged cols per row; cols is 1 for a list.
type Viewport struct {
	Base

	source     SlotSource
	itemHeight int // fixed height per row
	cols       int

	// Scroll state
	scrollRow      int // first visible row index
	viewportRows   int // how many rows fit in viewport
	viewportHeight int

	// Cached visible components (rebuilt on layout or invalidation)
	visible []Component

	// Decoration
	border     *BorderStyle
	background *Color
	padding    int
}

// NewViewport creates a viewport over the given source.
// itemHeight is the fixed height of each row.
func NewViewport(source SlotSource, itemHeight int) *Viewport {
	if itemHeight < 1 {
		itemHeight = 1
	}
	v := &Viewport{
		source:     source,
		itemHeight: itemHeight,
		cols:       1,
	}
	v.style = DefaultStyle()
	return v
}

// Cols sets the number of slots per row (grid arrangement).
func (v *Viewport) Cols(n int) *Viewport {
	if n < 1 {
		n = 1
	}
	v.cols = n
	return v
}

// SlotCount returns the source's current slot count.
func (v *Viewport) SlotCount() int {
	if v.source.Count == nil {
		return 0
	}
	return v.source.Count()
}

// rowCount returns the number of rows needed for all slots.
func (v *Viewport) rowCount() int {
	return (v.SlotCount() + v.cols - 1) / v.cols
}

// SlotForKey resolves a key to a slot index via the source's lookup,
// or -1 when no lookup is installed or the key is unknown.
func (v *Viewport) SlotForKey(key any) int {
	if v.source.IndexForKey == nil {
		return -1
	}
	return v.source.IndexForKey(key)
}

// ScrollTo scrolls so the given row is the first visible row.
func (v *Viewport) ScrollTo(row int) *Viewport {
	if row < 0 {
		row = 0
	}
	maxOffset := max(0, v.rowCount()-v.viewportRows)
	if row > maxOffset {
		row = maxOffset
	}
	if v.scrollRow != row {
		v.scrollRow = row
		v.Invalidate()
	}
	return v
}

// ScrollBy scrolls by delta rows (positive = down, negative = up).
func (v *Viewport) ScrollBy(delta int) *Viewport {
	return v.ScrollTo(v.scrollRow + delta)
}

// ScrollOffset returns the current first visible row.
func (v *Viewport) ScrollOffset() int {
	return v.scrollRow
}

// VisibleRange returns the range of currently visible slot indices.
func (v *Viewport) VisibleRange() (start, end int) {
	start = v.scrollRow * v.cols
	end = min(start+v.viewportRows*v.cols, v.SlotCount())
	return
}

// Invalidate rebuilds the visible components from the source. Call
// after the source's slot population changes outside a layout pass.
func (v *Viewport) Invalidate() {
	start, end := v.VisibleRange()
	needed := end - start

	if cap(v.visible) < needed {
		v.visible = make([]Component, needed)
	} else {
		v.visible = v.visible[:needed]
	}

	for i := 0; i < needed; i++ {
		v.visible[i] = v.source.Build(start + i)
	}
}

// SetConstraints implements Component.
func (v *Viewport) SetConstraints(width, height int) {
	v.Base.SetConstraints(width, height)

	innerH := height
	innerW := width
	if v.border != nil {
		innerH -= 2
		innerW -= 2
	}
	innerH -= v.padding * 2
	innerW -= v.padding * 2

	if innerH < 1 {
		innerH = 1
	}
	if innerW < 1 {
		innerW = 1
	}

	v.viewportHeight = innerH
	v.viewportRows = innerH / v.itemHeight
	if v.viewportRows < 1 {
		v.viewportRows = 1
	}

	// Clamp scroll now that the window size is known.
	if v.scrollRow > v.rowCount()-v.viewportRows {
		v.scrollRow = max(0, v.rowCount()-v.viewportRows)
	}

	v.Invalidate()

	colW := innerW / v.cols
	if colW < 1 {
		colW = 1
	}
	for _, comp := range v.visible {
		comp.SetConstraints(colW, v.itemHeight)
	}

	v.width = width
	v.height = height
}

// MinSize implements Component.
func (v *Viewport) MinSize() (int, int) {
	w := 10 * v.cols
	h := v.itemHeight
	if v.border != nil {
		w += 2
		h += 2
	}
	h += v.padding * 2
	w += v.padding * 2
	return w, h
}

// Render implements Component.
func (v *Viewport) Render(buf *Buffer, x, y int) {
	if v.background != nil {
		cell := NewCell(' ', DefaultStyle().Background(*v.background))
		buf.FillRect(x, y, v.width, v.height, cell)
	}

	if v.border != nil {
		buf.DrawBorder(x, y, v.width, v.height, *v.border, v.style)
	}

	contentX := x + v.padding
	contentY := y + v.padding
	innerW := v.width - v.padding*2
	if v.border != nil {
		contentX++
		contentY++
		innerW -= 2
	}

	colW := innerW / v.cols
	if colW < 1 {
		colW = 1
	}

	for i, comp := range v.visible {
		row := i / v.cols
		col := i % v.cols
		rowY := contentY + row*v.itemHeight

		if rowY >= y+v.height-v.padding {
			break
		}
		if v.border != nil && rowY >= y+v.height-1-v.padding {
			break
		}

		comp.Render(buf, contentX+col*colW, rowY)
	}

	if v.rowCount() > v.viewportRows {
		v.renderScrollbar(buf, x, y)
	}
}

// renderScrollbar draws a simple scrollbar indicator.
func (v *Viewport) renderScrollbar(buf *Buffer, x, y int) {
	sbX := x + v.width - 1
	if v.border != nil {
		sbX--
	}

	sbTop := y + v.padding
	if v.border != nil {
		sbTop++
	}
	sbHeight := v.viewportHeight
	rows := v.rowCount()

	if sbHeight < 1 || rows == 0 {
		return
	}

	thumbSize := max(1, sbHeight*v.viewportRows/rows)
	maxScroll := rows - v.viewportRows
	thumbPos := 0
	if maxScroll > 0 {
		thumbPos = (sbHeight - thumbSize) * v.scrollRow / maxScroll
	}

	trackStyle := DefaultStyle().Foreground(BrightBlack)
	for i := 0; i < sbHeight; i++ {
		buf.Set(sbX, sbTop+i, NewCell('│', trackStyle))
	}

	thumbStyle := DefaultStyle().Foreground(White)
	for i := 0; i < thumbSize; i++ {
		buf.Set(sbX, sbTop+thumbPos+i, NewCell('┃', thumbStyle))
	}
}

// --- Fluent API ---

func (v *Viewport) Border(b BorderStyle) *Viewport {
	v.border = &b
	return v
}

func (v *Viewport) Background(c Color) *Viewport {
	v.background = &c
	return v
}

func (v *Viewport) Padding(p int) *Viewport {
	v.padding = p
	return v
}

// Grow sets the flex grow factor (1 = take available space).
func (v *Viewport) Grow(factor float64) *Viewport {
	v.flexGrow = factor
	return v
}
