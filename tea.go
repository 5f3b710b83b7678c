package flux

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameMsg advances the animation clock of a ListModel. Scheduled via
// tea.Tick while any animation is running.
type FrameMsg time.Time

// RowFunc renders one data item as a single line.
type RowFunc[T any] func(item T, index int) string

// slideCells is how far an animating row is indented at progress 0.
const slideCells = 8

// ListModel is a bubbletea list whose rows animate in and out. It
// carries the same logical/slot index reconciliation as AnimatedList,
// rendering rows as strings instead of retained components. Removed
// rows keep rendering (faint, sliding out) until their exit animation
// finishes, while the items slice already reflects the removal.
type ListModel[T any] struct {
	items    []T
	row      RowFunc[T]
	clock    *Clock
	rec      *Reconciler[string]
	duration time.Duration

	width   int
	height  int
	ticking bool

	enterStyle lipgloss.Style
	exitStyle  lipgloss.Style
}

// NewListModel creates a list model over items, rendering each row
// with row. Animations run over d (DefaultDuration if zero).
func NewListModel[T any](items []T, row RowFunc[T], d time.Duration) *ListModel[T] {
	clock := NewClock()
	m := &ListModel[T]{
		items:      items,
		row:        row,
		clock:      clock,
		duration:   d,
		enterStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		exitStyle:  lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
	m.rec = NewReconciler[string](clock, len(items), nil)
	return m
}

// Items returns the current logical items.
func (m *ListModel[T]) Items() []T {
	return m.items
}

// Init implements tea.Model.
func (m *ListModel[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It consumes frame and window-size
// messages; everything else is the embedding application's business.
func (m *ListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.ticking = false
		m.clock.Step(frameInterval)
		return m, m.frame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// frame schedules the next clock step while animations are running.
func (m *ListModel[T]) frame() tea.Cmd {
	if m.ticking || !m.clock.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// InsertAt inserts item at the logical index and starts its entrance
// animation. The returned command keeps the clock ticking; return it
// from Update.
func (m *ListModel[T]) InsertAt(index int, item T) tea.Cmd {
	m.items = append(m.items[:index], append([]T{item}, m.items[index:]...)...)
	m.rec.Insert(index, m.duration)
	return m.frame()
}

// RemoveAt removes the logical item at index. The row's text is
// captured now and keeps rendering, fading out, until the exit
// animation completes.
func (m *ListModel[T]) RemoveAt(index int) tea.Cmd {
	departed := m.row(m.items[index], index)
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.rec.Remove(index, func(progress float64) string {
		return m.animateRow(departed, progress, m.exitStyle)
	}, m.duration)
	return m.frame()
}

// Count returns the logical item count.
func (m *ListModel[T]) Count() int {
	return len(m.items)
}

// Animating reports whether any row is mid-transition.
func (m *ListModel[T]) Animating() bool {
	return m.clock.Active()
}

// Dispose releases the handles of any rows still animating. Call when
// the program exits mid-transition.
func (m *ListModel[T]) Dispose() {
	m.rec.Dispose()
}

// View implements tea.Model: one line per presentation slot, including
// slots held by rows still animating out.
func (m *ListModel[T]) View() string {
	var b strings.Builder
	for slot := 0; slot < m.rec.SlotCount(); slot++ {
		b.WriteString(m.rec.RenderSlot(slot, func(index int, progress float64) string {
			row := m.row(m.items[index], index)
			if progress >= 1 {
				return row
			}
			return m.animateRow(row, progress, m.enterStyle)
		}))
		b.WriteByte('\n')
	}
	return b.String()
}

// animateRow indents and styles a row by its animation progress:
// fully offset at 0, flush and unstyled at 1.
func (m *ListModel[T]) animateRow(row string, progress float64, style lipgloss.Style) string {
	offset := int((1 - progress) * slideCells)
	if offset < 0 {
		offset = 0
	}
	return strings.Repeat(" ", offset) + style.Render(row)
}
