package flux

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func rowBuilder(prefix string) ItemBuilder[Component] {
	return func(index int, progress float64) Component {
		return Text(fmt.Sprintf("%s%d", prefix, index))
	}
}

func renderList(l *AnimatedList, w, h int) string {
	buf := NewBuffer(w, h)
	l.SetConstraints(w, h)
	l.Render(buf, 0, 0)
	return buf.String()
}

func TestAnimatedList(t *testing.T) {
	t.Run("SteadyRender", func(t *testing.T) {
		clock := NewClock()
		l := NewAnimatedList(clock, 3, 1, rowBuilder("row"))

		out := renderList(l, 20, 5)
		for i := 0; i < 3; i++ {
			if !strings.Contains(out, fmt.Sprintf("row%d", i)) {
				t.Errorf("missing row%d in:\n%s", i, out)
			}
		}
	})

	t.Run("ExitSlotRendersBuilder", func(t *testing.T) {
		clock := NewClock()
		l := NewAnimatedList(clock, 3, 1, rowBuilder("row"))

		l.RemoveItem(1, func(progress float64) Component {
			return Text("bye")
		}, 300*time.Millisecond)

		if l.ItemCount() != 2 || l.SlotCount() != 3 {
			t.Fatalf("counts after remove: items=%d slots=%d, want 2/3", l.ItemCount(), l.SlotCount())
		}

		out := renderList(l, 20, 5)
		lines := strings.Split(out, "\n")
		if !strings.Contains(lines[0], "row0") {
			t.Errorf("line 0: %q", lines[0])
		}
		if !strings.Contains(lines[1], "bye") {
			t.Errorf("line 1 should show the exit builder: %q", lines[1])
		}
		// The surviving second item renders with its new logical index.
		if !strings.Contains(lines[2], "row1") {
			t.Errorf("line 2: %q", lines[2])
		}

		clock.Step(300 * time.Millisecond)

		out = renderList(l, 20, 5)
		if strings.Contains(out, "bye") {
			t.Errorf("exit row should be gone after its animation:\n%s", out)
		}
		if l.SlotCount() != 2 {
			t.Errorf("slot count after exit: got %d, want 2", l.SlotCount())
		}
	})

	t.Run("ChangeNotification", func(t *testing.T) {
		clock := NewClock()
		l := NewAnimatedList(clock, 1, 1, rowBuilder("row"))
		changes := 0
		l.OnChange(func() { changes++ })

		l.InsertItem(0, 100*time.Millisecond)
		if changes != 1 {
			t.Errorf("insert: %d changes, want 1", changes)
		}
		l.RemoveItem(1, func(float64) Component { return Text("x") }, 100*time.Millisecond)
		if changes != 2 {
			t.Errorf("remove: %d changes, want 2", changes)
		}
		clock.Step(100 * time.Millisecond)
		if changes != 3 {
			t.Errorf("exit completion: %d changes, want 3", changes)
		}
	})

	t.Run("KeyLookupComposedIntoSlotSpace", func(t *testing.T) {
		clock := NewClock()
		l := NewAnimatedList(clock, 3, 1, rowBuilder("row"))
		keys := map[any]int{"a": 0, "b": 1, "c": 2}
		l.SetKeyLookup(func(key any) int {
			if i, ok := keys[key]; ok {
				return i
			}
			return -1
		})

		if got := l.Viewport().SlotForKey("b"); got != 1 {
			t.Fatalf("steady lookup: got %d, want 1", got)
		}

		l.RemoveItem(0, func(float64) Component { return Text("x") }, 300*time.Millisecond)
		keys = map[any]int{"b": 0, "c": 1}

		// Slot 0 is still held by the exiting item, so logical 0 lives
		// at slot 1.
		if got := l.Viewport().SlotForKey("b"); got != 1 {
			t.Errorf("lookup during exit: got %d, want 1", got)
		}
		if got := l.Viewport().SlotForKey("c"); got != 2 {
			t.Errorf("lookup during exit: got %d, want 2", got)
		}
		if got := l.Viewport().SlotForKey("nope"); got != -1 {
			t.Errorf("unknown key: got %d, want -1", got)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		clock := NewClock()
		l := NewAnimatedList(clock, 2, 1, rowBuilder("row"))
		l.InsertItem(0, 300*time.Millisecond)

		l.Reset(5)

		if l.ItemCount() != 5 || l.SlotCount() != 5 {
			t.Errorf("counts after reset: items=%d slots=%d, want 5/5", l.ItemCount(), l.SlotCount())
		}
		if clock.Active() {
			t.Error("reset should release in-flight animations")
		}
	})

	t.Run("GridArrangement", func(t *testing.T) {
		clock := NewClock()
		g := NewAnimatedGrid(clock, 4, 2, 1, rowBuilder("g"))

		out := renderList(g, 20, 2)
		lines := strings.Split(out, "\n")
		if !strings.Contains(lines[0], "g0") || !strings.Contains(lines[0], "g1") {
			t.Errorf("first grid row should hold g0 and g1: %q", lines[0])
		}
		if !strings.Contains(lines[1], "g2") || !strings.Contains(lines[1], "g3") {
			t.Errorf("second grid row should hold g2 and g3: %q", lines[1])
		}
	})
}
