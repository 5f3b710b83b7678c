package flux

import (
	"testing"
	"time"
)

func TestObservable(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		obs := NewObservable[string]()
		obs.Add("one")
		obs.Add("two")

		if obs.Len() != 2 {
			t.Errorf("expected len 2, got %d", obs.Len())
		}
		if obs.At(0) != "one" {
			t.Errorf("expected 'one', got %q", obs.At(0))
		}
	})

	t.Run("Insert", func(t *testing.T) {
		obs := NewObservable[int]()
		obs.Add(1)
		obs.Add(3)
		obs.Insert(1, 2)

		items := obs.Items()
		if len(items) != 3 || items[0] != 1 || items[1] != 2 || items[2] != 3 {
			t.Errorf("expected [1,2,3], got %v", items)
		}
	})

	t.Run("RemoveAt", func(t *testing.T) {
		obs := NewObservable[string]()
		obs.Add("a")
		obs.Add("b")
		obs.Add("c")

		var removed Change[string]
		obs.Subscribe(func(c Change[string]) { removed = c })
		obs.RemoveAt(1)

		if obs.Len() != 2 {
			t.Errorf("expected len 2, got %d", obs.Len())
		}
		if removed.Type != ChangeRemove || removed.Old != "b" || removed.Index != 1 {
			t.Errorf("remove change should carry the old value: %+v", removed)
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		obs := NewObservable[int]()
		calls := 0
		unsub := obs.Subscribe(func(Change[int]) { calls++ })
		obs.Add(1)
		unsub()
		obs.Add(2)

		if calls != 1 {
			t.Errorf("expected 1 call after unsubscribe, got %d", calls)
		}
	})
}

func newTestBinding(clock *Clock, data *Observable[string]) *AnimatedBinding[string] {
	return BindAnimated(clock, data, 1, AnimatedDispatcher[string]{
		Render: func(item string, index int, progress float64) Component {
			return Text(item)
		},
		Exit: func(item string, progress float64) Component {
			return Text("-" + item)
		},
	}, 100*time.Millisecond)
}

func TestBindAnimated(t *testing.T) {
	t.Run("InsertDrivesEntrance", func(t *testing.T) {
		clock := NewClock()
		data := NewObservable[string]().Add("a").Add("b")
		b := newTestBinding(clock, data)
		l := b.List()

		if l.ItemCount() != 2 || l.SlotCount() != 2 {
			t.Fatalf("initial counts: items=%d slots=%d, want 2/2", l.ItemCount(), l.SlotCount())
		}

		data.Insert(1, "c")

		if l.ItemCount() != 3 || l.SlotCount() != 3 {
			t.Errorf("counts after insert: items=%d slots=%d, want 3/3", l.ItemCount(), l.SlotCount())
		}
		if !clock.Active() {
			t.Error("data insert should start an entrance animation")
		}
	})

	t.Run("RemoveCapturesDepartedValue", func(t *testing.T) {
		clock := NewClock()
		data := NewObservable[string]().Add("a").Add("b")
		b := newTestBinding(clock, data)
		l := b.List()

		data.RemoveAt(0)

		if l.ItemCount() != 1 || l.SlotCount() != 2 {
			t.Fatalf("counts during exit: items=%d slots=%d, want 1/2", l.ItemCount(), l.SlotCount())
		}

		// The exiting slot renders the value that no longer exists in
		// the data.
		got := l.rec.RenderSlot(0, l.build)
		text, ok := got.(*TextComponent)
		if !ok || text.Content() != "-a" {
			t.Errorf("exit slot should render the captured value, got %#v", got)
		}

		// And the surviving item renders from live data.
		got = l.rec.RenderSlot(1, l.build)
		if text, ok := got.(*TextComponent); !ok || text.Content() != "b" {
			t.Errorf("surviving slot: got %#v", got)
		}

		clock.Step(100 * time.Millisecond)
		if l.SlotCount() != 1 {
			t.Errorf("slot count after exit: got %d, want 1", l.SlotCount())
		}
	})

	t.Run("SetRebuildsWithoutAnimation", func(t *testing.T) {
		clock := NewClock()
		data := NewObservable[string]().Add("a")
		b := newTestBinding(clock, data)

		data.Insert(0, "x")
		data.Set([]string{"p", "q", "r"})

		l := b.List()
		if l.ItemCount() != 3 || l.SlotCount() != 3 {
			t.Errorf("counts after set: items=%d slots=%d, want 3/3", l.ItemCount(), l.SlotCount())
		}
		if clock.Active() {
			t.Error("bulk replacement should not animate")
		}
	})

	t.Run("DisposeDetaches", func(t *testing.T) {
		clock := NewClock()
		data := NewObservable[string]().Add("a").Add("b")
		b := newTestBinding(clock, data)
		l := b.List()

		data.RemoveAt(0) // leaves an in-flight exit
		b.Dispose()

		if clock.Active() {
			t.Error("dispose should release the in-flight handle")
		}

		before := l.ItemCount()
		data.Add("z")
		if l.ItemCount() != before {
			t.Error("data changes after dispose must not reach the list")
		}
	})
}
