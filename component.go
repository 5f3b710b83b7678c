package flux

import "github.com/mattn/go-runewidth"

// Component is the interface all UI components implement.
type Component interface {
	// Layout
	SetConstraints(width, height int) // Parent tells us available space
	MinSize() (width, height int)     // Minimum size we need
	Size() (width, height int)        // Our actual size after layout

	// Rendering
	Render(buf *Buffer, x, y int)
}

// Base provides common functionality for all components.
// Embed this in your component structs.
type Base struct {
	style         Style
	width, height int // Actual size
	minW, minH    int // Minimum size
	constraintW   int // Available width from parent
	constraintH   int // Available height from parent
	flexGrow      float64
}

// SetConstraints is called by parent to tell us available space.
func (b *Base) SetConstraints(width, height int) {
	b.constraintW = width
	b.constraintH = height
}

// Constraints returns the current constraints.
func (b *Base) Constraints() (width, height int) {
	return b.constraintW, b.constraintH
}

// MinSize returns the minimum size needed.
func (b *Base) MinSize() (int, int) {
	return b.minW, b.minH
}

// Size returns the actual size.
func (b *Base) Size() (int, int) {
	return b.width, b.height
}

// SetSize sets the actual size.
func (b *Base) SetSize(w, h int) {
	b.width = w
	b.height = h
}

// SetMinSize sets the minimum size.
func (b *Base) SetMinSize(w, h int) {
	b.minW = w
	b.minH = h
}

// GetStyle returns the component's style.
func (b *Base) GetStyle() Style {
	return b.style
}

// SetStyle sets the component's style.
func (b *Base) SetStyle(s Style) {
	b.style = s
}

// FlexGrow returns the flex grow factor.
func (b *Base) FlexGrow() float64 {
	return b.flexGrow
}

// TextComponent displays a single line of text.
type TextComponent struct {
	Base
	text string
}

// Text creates a text component.
func Text(s string) *TextComponent {
	t := &TextComponent{text: s}
	t.style = DefaultStyle()
	return t
}

// Styled sets the text style.
func (t *TextComponent) Styled(s Style) *TextComponent {
	t.style = s
	return t
}

// Content returns the text content.
func (t *TextComponent) Content() string {
	return t.text
}

// SetConstraints implements Component.
func (t *TextComponent) SetConstraints(width, height int) {
	t.Base.SetConstraints(width, height)
	w := runewidth.StringWidth(t.text)
	if width > 0 && w > width {
		w = width
	}
	t.SetSize(w, 1)
}

// MinSize implements Component.
func (t *TextComponent) MinSize() (int, int) {
	return runewidth.StringWidth(t.text), 1
}

// Render implements Component.
func (t *TextComponent) Render(buf *Buffer, x, y int) {
	buf.WriteStringClipped(x, y, t.text, t.style, t.width)
}
