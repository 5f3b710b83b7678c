package flux

import "time"

// AnimatedList is a scrollable list whose items animate in when
// inserted and out when removed. The application addresses items by
// logical index; the list keeps rendering a removed item's slot via
// its exit builder until the exit animation finishes, re-mapping
// indices for the viewport in the meantime.
//
// Arrange slots n per row with Cols(n) (or NewAnimatedGrid) for a
// grid; the index bookkeeping is identical.
type AnimatedList struct {
	Base

	rec      *Reconciler[Component]
	vp       *Viewport
	build    ItemBuilder[Component]
	onChange func()
}

// NewAnimatedList creates an animated list over initialCount steady
// items. build renders the item at a logical index with its entrance
// progress (1 = settled). Animations are driven by clock; step it from
// the same goroutine that mutates the list.
func NewAnimatedList(clock *Clock, initialCount, itemHeight int, build ItemBuilder[Component]) *AnimatedList {
	l := &AnimatedList{build: build}
	l.rec = NewReconciler[Component](clock, initialCount, l.changed)
	l.vp = NewViewport(SlotSource{
		// Closed over l, not l.rec: Reset swaps the reconciler out.
		Count: func() int { return l.rec.SlotCount() },
		Build: func(slot int) Component {
			return l.rec.RenderSlot(slot, l.build)
		},
	}, itemHeight)
	l.style = DefaultStyle()
	return l
}

// NewAnimatedGrid creates an animated grid: the same container with
// cols slots per row.
func NewAnimatedGrid(clock *Clock, initialCount, cols, itemHeight int, build ItemBuilder[Component]) *AnimatedList {
	return NewAnimatedList(clock, initialCount, itemHeight, build).Cols(cols)
}

// changed runs once per atomic reconciler mutation.
func (l *AnimatedList) changed() {
	l.vp.Invalidate()
	if l.onChange != nil {
		l.onChange()
	}
}

// OnChange registers a render trigger, typically app.RequestRender.
// It fires exactly once per atomic insert/remove state change.
func (l *AnimatedList) OnChange(fn func()) *AnimatedList {
	l.onChange = fn
	return l
}

// InsertItem inserts a logical item at index and animates it in over
// d (DefaultDuration if zero). index must be in [0, ItemCount()].
func (l *AnimatedList) InsertItem(index int, d time.Duration) {
	l.rec.Insert(index, d)
}

// RemoveItem removes the logical item at index. The slot animates out
// over d rendered by exit, but the removal is immediate as far as
// subsequent logical indices are concerned. index must be in
// [0, ItemCount()) and exit must not be nil.
func (l *AnimatedList) RemoveItem(index int, exit ExitBuilder[Component], d time.Duration) {
	l.rec.Remove(index, exit, d)
}

// ItemCount returns the logical item count.
func (l *AnimatedList) ItemCount() int {
	return l.rec.ItemCount()
}

// SlotCount returns the rendered slot count, including slots held by
// items still animating out.
func (l *AnimatedList) SlotCount() int {
	return l.rec.SlotCount()
}

// SetKeyLookup installs the application's key-to-logical-index lookup
// for state preservation across reordering. The viewport sees it
// composed with the slot mapping, so external key lookups are
// expressed in slot space. fn returns -1 for unknown keys.
func (l *AnimatedList) SetKeyLookup(fn func(key any) int) *AnimatedList {
	if fn == nil {
		l.vp.source.IndexForKey = nil
		return l
	}
	l.vp.source.IndexForKey = func(key any) int {
		index := fn(key)
		if index < 0 {
			return -1
		}
		return l.rec.SlotIndexOf(index)
	}
	return l
}

// Reset discards all animation state and starts over with count steady
// items. In-flight handles are released; nothing animates. Used for
// bulk data replacement, where per-item transitions make no sense.
func (l *AnimatedList) Reset(count int) {
	l.rec.Dispose()
	l.rec = NewReconciler[Component](l.rec.clock, count, l.changed)
	l.changed()
}

// Viewport returns the underlying scroll container for scrolling and
// key-based slot lookups.
func (l *AnimatedList) Viewport() *Viewport {
	return l.vp
}

// Dispose releases every in-flight animation handle. Call on teardown
// of the owning container.
func (l *AnimatedList) Dispose() {
	l.rec.Dispose()
}

// SetConstraints implements Component.
func (l *AnimatedList) SetConstraints(width, height int) {
	l.Base.SetConstraints(width, height)
	l.vp.SetConstraints(width, height)
	l.width, l.height = l.vp.Size()
}

// MinSize implements Component.
func (l *AnimatedList) MinSize() (int, int) {
	return l.vp.MinSize()
}

// Render implements Component.
func (l *AnimatedList) Render(buf *Buffer, x, y int) {
	l.vp.Render(buf, x, y)
}

// --- Fluent API (delegates to the viewport) ---

func (l *AnimatedList) Cols(n int) *AnimatedList {
	l.vp.Cols(n)
	return l
}

func (l *AnimatedList) Border(b BorderStyle) *AnimatedList {
	l.vp.Border(b)
	return l
}

func (l *AnimatedList) Background(c Color) *AnimatedList {
	l.vp.Background(c)
	return l
}

func (l *AnimatedList) Padding(p int) *AnimatedList {
	l.vp.Padding(p)
	return l
}

func (l *AnimatedList) Grow(factor float64) *AnimatedList {
	l.vp.Grow(factor)
	return l
}
