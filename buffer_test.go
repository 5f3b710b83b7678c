package flux

import "testing"

func TestBufferWrites(t *testing.T) {
	t.Run("WriteString", func(t *testing.T) {
		b := NewBuffer(10, 2)
		n := b.WriteString(0, 0, "hi", DefaultStyle())
		if n != 2 {
			t.Errorf("expected 2 cells, got %d", n)
		}
		if b.Get(0, 0).Rune != 'h' || b.Get(1, 0).Rune != 'i' {
			t.Errorf("unexpected cells: %q %q", b.Get(0, 0).Rune, b.Get(1, 0).Rune)
		}
	})

	t.Run("DoubleWidthRune", func(t *testing.T) {
		b := NewBuffer(10, 1)
		n := b.WriteString(0, 0, "日x", DefaultStyle())
		if n != 3 {
			t.Errorf("wide rune should use 2 cells, total 3, got %d", n)
		}
		if b.Get(0, 0).Rune != '日' {
			t.Errorf("cell 0: %q", b.Get(0, 0).Rune)
		}
		if b.Get(1, 0).Rune != 0 {
			t.Errorf("cell 1 should be the placeholder half, got %q", b.Get(1, 0).Rune)
		}
		if b.Get(2, 0).Rune != 'x' {
			t.Errorf("cell 2: %q", b.Get(2, 0).Rune)
		}
	})

	t.Run("ClippedNeverSplitsWideRune", func(t *testing.T) {
		b := NewBuffer(10, 1)
		n := b.WriteStringClipped(0, 0, "x日", DefaultStyle(), 2)
		if n != 1 {
			t.Errorf("wide rune must not be half-written: got %d cells", n)
		}
		if b.Get(1, 0).Rune != ' ' {
			t.Errorf("cell 1 should stay empty, got %q", b.Get(1, 0).Rune)
		}
	})

	t.Run("DirtyRowTracking", func(t *testing.T) {
		b := NewBuffer(10, 3)
		b.ClearDirtyFlags()
		b.WriteString(0, 1, "x", DefaultStyle())

		if b.RowDirty(0) || !b.RowDirty(1) || b.RowDirty(2) {
			t.Error("only row 1 should be dirty")
		}

		b.ClearDirtyFlags()
		if b.RowDirty(1) {
			t.Error("dirty flags should reset")
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		b := NewBuffer(3, 1)
		b.Set(5, 5, NewCell('x', DefaultStyle()))
		if b.Get(5, 5).Rune != ' ' {
			t.Error("out of bounds reads return the empty cell")
		}
		n := b.WriteString(2, 0, "abc", DefaultStyle())
		if n != 1 {
			t.Errorf("write should clip at the edge: got %d cells", n)
		}
	})
}
