package flux

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Screen manages the terminal display with double buffering and
// diff-based updates.
type Screen struct {
	front  *Buffer   // What's currently displayed
	back   *Buffer   // What we're drawing to
	writer io.Writer // Output destination (usually os.Stdout)
	fd     int       // File descriptor for terminal operations

	width  int
	height int

	// Terminal state
	origState *term.State
	inRawMode bool

	// Resize handling
	resizeChan chan Size
	sigChan    chan os.Signal

	// Rendering state
	lastStyle Style        // Last style we emitted (for optimization)
	buf       bytes.Buffer // Reusable buffer for building output

	// Protects buffer access during resize
	mu sync.Mutex
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// NewScreen creates a new screen writing to the given writer.
// Pass nil to use os.Stdout.
func NewScreen(w io.Writer) (*Screen, error) {
	if w == nil {
		w = os.Stdout
	}

	fd := int(os.Stdout.Fd())
	width, height, err := getTerminalSize(fd)
	if err != nil {
		// Default fallback
		width, height = 80, 24
	}

	s := &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		writer:     w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
		lastStyle:  DefaultStyle(),
	}

	return s, nil
}

// getTerminalSize returns the current terminal dimensions.
func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	return Size{Width: s.width, Height: s.height}
}

// Width returns the screen width.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height.
func (s *Screen) Height() int {
	return s.height
}

// Buffer returns the back buffer for drawing.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// ResizeChan returns a channel that receives size updates on terminal resize.
func (s *Screen) ResizeChan() <-chan Size {
	return s.resizeChan
}

// EnterRawMode puts the terminal into raw mode for TUI operation.
func (s *Screen) EnterRawMode() error {
	if s.inRawMode {
		return nil
	}

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	s.origState = state
	s.inRawMode = true

	// Start listening for resize signals
	signal.Notify(s.sigChan, syscall.SIGWINCH)
	go s.handleSignals()

	s.writeString("\x1b[?1049h") // Enter alternate screen
	s.writeString("\x1b[2J")     // Clear screen (ensures front buffer matches actual screen)
	s.writeString("\x1b[H")      // Move cursor to home position
	s.writeString("\x1b[?25l")   // Hide cursor

	return nil
}

// ExitRawMode restores the terminal to its original state.
func (s *Screen) ExitRawMode() error {
	if !s.inRawMode {
		return nil
	}

	s.writeString("\x1b[0m")     // Reset style
	s.writeString("\x1b[?25h")   // Show cursor
	s.writeString("\x1b[?1049l") // Exit alternate screen

	signal.Stop(s.sigChan)

	if s.origState != nil {
		if err := term.Restore(int(os.Stdin.Fd()), s.origState); err != nil {
			return fmt.Errorf("failed to restore terminal: %w", err)
		}
	}

	s.inRawMode = false
	return nil
}

// handleSignals processes OS resize signals.
func (s *Screen) handleSignals() {
	for range s.sigChan {
		width, height, err := getTerminalSize(s.fd)
		if err != nil {
			continue
		}
		if width != s.width || height != s.height {
			s.mu.Lock()
			s.width = width
			s.height = height
			s.front.Resize(width, height)
			s.back.Resize(width, height)
			// Clear BOTH buffers to avoid stale content
			s.front.Clear()
			s.back.Clear()
			// Clear the actual terminal screen
			s.writeString("\x1b[2J")
			s.mu.Unlock()
			// Non-blocking send (outside lock to avoid potential deadlock)
			select {
			case s.resizeChan <- Size{Width: width, Height: height}:
			default:
			}
		}
	}
}

// Flush renders the back buffer to the terminal using per-cell diff.
// Only cells that actually changed are written, with cursor positioning
// for each run. Dirty row tracking skips rows that haven't been
// modified since the last frame.
func (s *Screen) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()

	changedCount := 0
	cursorX, cursorY := -1, -1

	for y := 0; y < s.height; y++ {
		// Fast path: skip rows not marked dirty (no writes since last frame)
		if !s.back.RowDirty(y) {
			continue
		}

		for x := 0; x < s.width; x++ {
			backCell := s.back.Get(x, y)
			if backCell == s.front.Get(x, y) {
				continue
			}

			// skip placeholder cells (second half of double-width chars)
			if backCell.Rune == 0 {
				s.front.Set(x, y, backCell)
				continue
			}

			changedCount++

			// Position cursor if not already there
			if cursorX != x || cursorY != y {
				s.buf.WriteString("\x1b[")
				s.writeIntToBuf(y + 1)
				s.buf.WriteByte(';')
				s.writeIntToBuf(x + 1)
				s.buf.WriteByte('H')
			}

			s.writeCell(&s.buf, backCell)
			s.front.Set(x, y, backCell)
			// cursor advances by the display width of the character
			rw := runewidth.RuneWidth(backCell.Rune)
			if rw == 0 {
				rw = 1 // zero-width chars still advance cursor by 1 in most terminals
			}
			cursorX = x + rw
			cursorY = y
		}
	}

	// Reset style at end if we have changes
	if changedCount > 0 {
		s.buf.WriteString("\x1b[0m")
		s.lastStyle = DefaultStyle()
	}

	// Clear dirty flags for next frame
	s.back.ClearDirtyFlags()

	s.writer.Write(s.buf.Bytes())
}

// FlushFull does a complete redraw without diffing.
func (s *Screen) FlushFull() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()

	// Clear screen and move to home
	s.buf.WriteString("\x1b[2J\x1b[H")

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			cell := s.back.Get(x, y)
			if cell.Rune == 0 {
				continue // second half of a double-width char
			}
			s.writeCell(&s.buf, cell)
			s.front.Set(x, y, cell)
		}
		if y < s.height-1 {
			s.buf.WriteString("\r\n")
		}
	}

	// Reset style at end
	s.buf.WriteString("\x1b[0m")
	s.lastStyle = DefaultStyle()

	s.writer.Write(s.buf.Bytes())
	s.back.ClearDirtyFlags()
}

// writeIntToBuf writes an integer to the buffer without allocation.
func (s *Screen) writeIntToBuf(n int) {
	if n == 0 {
		s.buf.WriteByte('0')
		return
	}
	if n < 0 {
		s.buf.WriteByte('-')
		n = -n
	}

	// Use scratch space on stack (max 10 digits for int32)
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	s.buf.Write(scratch[i:])
}

// writeCell writes a cell's style and rune to the buffer.
func (s *Screen) writeCell(buf *bytes.Buffer, cell Cell) {
	// Only emit style changes
	if cell.Style != s.lastStyle {
		s.writeStyle(buf, cell.Style)
		s.lastStyle = cell.Style
	}
	buf.WriteRune(cell.Rune)
}

// writeStyle writes ANSI escape codes for the given style.
func (s *Screen) writeStyle(buf *bytes.Buffer, style Style) {
	// Reset first if we need to turn off attributes
	buf.WriteString("\x1b[0")

	// Attributes
	if style.Attr.Has(AttrBold) {
		buf.WriteString(";1")
	}
	if style.Attr.Has(AttrDim) {
		buf.WriteString(";2")
	}
	if style.Attr.Has(AttrItalic) {
		buf.WriteString(";3")
	}
	if style.Attr.Has(AttrUnderline) {
		buf.WriteString(";4")
	}
	if style.Attr.Has(AttrInverse) {
		buf.WriteString(";7")
	}

	// Foreground color
	s.writeColor(buf, style.FG, true)

	// Background color
	s.writeColor(buf, style.BG, false)

	buf.WriteString("m")
}

// writeColor writes the ANSI escape code for a color (allocation-free).
func (s *Screen) writeColor(buf *bytes.Buffer, c Color, fg bool) {
	switch c.Mode {
	case ColorDefault:
		// Use default color (39 for fg, 49 for bg)
		if fg {
			buf.WriteString(";39")
		} else {
			buf.WriteString(";49")
		}
	case Color16:
		// Basic 16 colors
		base := 30
		if !fg {
			base = 40
		}
		if c.Index >= 8 {
			// Bright colors
			base += 60
			buf.WriteByte(';')
			s.writeIntToBuf(base + int(c.Index-8))
		} else {
			buf.WriteByte(';')
			s.writeIntToBuf(base + int(c.Index))
		}
	case Color256:
		// 256 color palette
		if fg {
			buf.WriteString(";38;5;")
		} else {
			buf.WriteString(";48;5;")
		}
		s.writeIntToBuf(int(c.Index))
	case ColorRGB:
		// True color
		if fg {
			buf.WriteString(";38;2;")
		} else {
			buf.WriteString(";48;2;")
		}
		s.writeIntToBuf(int(c.R))
		buf.WriteByte(';')
		s.writeIntToBuf(int(c.G))
		buf.WriteByte(';')
		s.writeIntToBuf(int(c.B))
	}
}

// writeString is a helper to write a string directly to the terminal.
func (s *Screen) writeString(str string) {
	io.WriteString(s.writer, str)
}

// Clear clears the back buffer.
func (s *Screen) Clear() {
	s.back.Clear()
}

// ShowCursor makes the cursor visible.
func (s *Screen) ShowCursor() {
	s.writeString("\x1b[?25h")
}

// HideCursor hides the cursor.
func (s *Screen) HideCursor() {
	s.writeString("\x1b[?25l")
}
