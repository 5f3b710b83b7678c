package flux

import (
	"fmt"
	"sort"
	"time"
)

// ItemBuilder renders the item at a logical index. progress is the
// entrance animation value; 1 means fully settled.
type ItemBuilder[W any] func(index int, progress float64) W

// ExitBuilder renders a departing item with its reversing animation
// value. It is supplied at removal time and captures whatever state it
// needs, since by then the item no longer exists in application data.
type ExitBuilder[W any] func(progress float64) W

// activeItem tracks one item that is currently animating in or out.
// slot is its position among rendered slots and is re-numbered as
// siblings are inserted and removed around it.
type activeItem[W any] struct {
	slot int
	anim *Anim
	exit ExitBuilder[W] // outgoing items only
}

// activeAt returns the item with the given slot index, or nil.
// items is kept sorted by slot, so this is a binary search.
func activeAt[W any](items []*activeItem[W], slot int) *activeItem[W] {
	i := sort.Search(len(items), func(i int) bool { return items[i].slot >= slot })
	if i < len(items) && items[i].slot == slot {
		return items[i]
	}
	return nil
}

// takeActiveAt removes and returns the item with the given slot index,
// or nil. Removal preserves the relative order of the rest.
func takeActiveAt[W any](items *[]*activeItem[W], slot int) *activeItem[W] {
	s := *items
	i := sort.Search(len(s), func(i int) bool { return s[i].slot >= slot })
	if i >= len(s) || s[i].slot != slot {
		return nil
	}
	item := s[i]
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	*items = s[:len(s)-1]
	return item
}

// Reconciler keeps a stable logical index space (what the application
// inserts and removes by) reconciled against the presentation slots a
// viewport actually renders. Removed items keep their slot until their
// exit animation finishes; inserted items occupy a slot immediately
// and animate in. It is generic over the rendered representation W so
// the same bookkeeping serves the Component widget path and the
// string-rendering bubbletea path.
//
// All methods must be called from the same goroutine that steps the
// clock; the reconciler itself takes no locks.
type Reconciler[W any] struct {
	clock    *Clock
	incoming []*activeItem[W] // sorted by slot, unique slots
	outgoing []*activeItem[W] // sorted by slot, unique slots
	slots    int              // rendered slot count: logical count + len(outgoing)
	onChange func()           // fired once per atomic state change
}

// NewReconciler creates a reconciler over initialCount steady items.
// onChange is invoked once per atomic mutation that a renderer needs
// to observe; it may be nil.
func NewReconciler[W any](clock *Clock, initialCount int, onChange func()) *Reconciler[W] {
	if initialCount < 0 {
		panic(fmt.Sprintf("flux: negative initial count %d", initialCount))
	}
	return &Reconciler[W]{
		clock:    clock,
		slots:    initialCount,
		onChange: onChange,
	}
}

// SlotCount returns the number of presentation slots currently
// rendered, including slots held by items animating out.
func (r *Reconciler[W]) SlotCount() int {
	return r.slots
}

// ItemCount returns the logical item count: removals count as already
// complete even while their exit animation is still rendering.
func (r *Reconciler[W]) ItemCount() int {
	return r.slots - len(r.outgoing)
}

// SlotIndexOf translates a logical index into the slot space the
// active collections are keyed on. Only outgoing items shift the
// mapping: each one positioned at or before the running value pushes
// the logical position outward by one slot. Outgoing items are sorted,
// so one linear pass suffices.
func (r *Reconciler[W]) SlotIndexOf(index int) int {
	for _, out := range r.outgoing {
		if out.slot <= index {
			index++
		} else {
			break
		}
	}
	return index
}

// LogicalIndexOf translates a rendered slot index back into the
// logical index handed to the application's item builder. The slot
// must not itself hold an outgoing item; mid-removal slots have no
// logical index.
func (r *Reconciler[W]) LogicalIndexOf(slot int) int {
	index := slot
	for _, out := range r.outgoing {
		if out.slot == slot {
			panic(fmt.Sprintf("flux: slot %d is mid-removal and has no logical index", slot))
		}
		if out.slot < slot {
			index--
		} else {
			break
		}
	}
	return index
}

// Insert makes room for a new logical item at index and animates it
// in over d (DefaultDuration if d is zero). The slot appears
// immediately; when the entrance animation completes the item becomes
// steady and its handle is released. index must be in
// [0, ItemCount()].
func (r *Reconciler[W]) Insert(index int, d time.Duration) {
	if index < 0 || index > r.ItemCount() {
		panic(fmt.Sprintf("flux: insert index %d out of range [0,%d]", index, r.ItemCount()))
	}
	slot := r.SlotIndexOf(index)

	// Make room: everything at or after the new slot moves down one.
	for _, item := range r.incoming {
		if item.slot >= slot {
			item.slot++
		}
	}
	for _, item := range r.outgoing {
		if item.slot >= slot {
			item.slot++
		}
	}

	item := &activeItem[W]{slot: slot, anim: r.clock.NewAnim(d)}
	r.insertSorted(&r.incoming, item)
	r.slots++
	r.notify()

	item.anim.Forward(func() {
		// Look the item up by its current slot; siblings may have
		// re-numbered it since the insert.
		settled := takeActiveAt(&r.incoming, item.slot)
		settled.anim.Release()
		// No notify: a finished entrance renders identically to a
		// steady item.
	})
}

// Remove takes the logical item at index out of the index space
// immediately and animates its slot out over d via exit. Subsequent
// Insert/Remove indices are interpreted as if the item were already
// gone, but the slot keeps rendering through exit until the reverse
// animation completes. If the item was still animating in, its handle
// is reused and reversed from its current progress. index must be in
// [0, ItemCount()) and exit must not be nil.
func (r *Reconciler[W]) Remove(index int, exit ExitBuilder[W], d time.Duration) {
	if exit == nil {
		panic("flux: nil exit builder")
	}
	if index < 0 || index >= r.ItemCount() {
		panic(fmt.Sprintf("flux: remove index %d out of range [0,%d)", index, r.ItemCount()))
	}
	slot := r.SlotIndexOf(index)
	if slot < 0 || slot >= r.slots {
		panic(fmt.Sprintf("flux: remove slot %d out of range [0,%d)", slot, r.slots))
	}
	if activeAt(r.outgoing, slot) != nil {
		panic(fmt.Sprintf("flux: slot %d is already being removed", slot))
	}

	// Ownership of a still-incoming item's handle transfers to the
	// outgoing record, so the exit reverses from the entrance's
	// current progress instead of snapping to fully present.
	var anim *Anim
	if in := takeActiveAt(&r.incoming, slot); in != nil {
		anim = in.anim
	} else {
		anim = r.clock.NewCompletedAnim(d)
	}

	item := &activeItem[W]{slot: slot, anim: anim, exit: exit}
	r.insertSorted(&r.outgoing, item)
	// Slot count is unchanged: the item occupies its slot until the
	// exit animation finishes.
	r.notify()

	anim.Reverse(func() {
		gone := takeActiveAt(&r.outgoing, item.slot)
		gone.anim.Release()

		// Close the gap left by the freed slot.
		for _, it := range r.incoming {
			if it.slot > gone.slot {
				it.slot--
			}
		}
		for _, it := range r.outgoing {
			if it.slot > gone.slot {
				it.slot--
			}
		}
		r.slots--
		r.notify()
	})
}

// RenderSlot resolves what the given slot shows right now: a departing
// item via its exit builder, an entering item via build with its
// entrance progress, or a steady item via build with progress 1. It is
// a pure query and never mutates the collections.
func (r *Reconciler[W]) RenderSlot(slot int, build ItemBuilder[W]) W {
	if out := activeAt(r.outgoing, slot); out != nil {
		return out.exit(out.anim.Value())
	}
	if in := activeAt(r.incoming, slot); in != nil {
		return build(r.LogicalIndexOf(slot), in.anim.Value())
	}
	return build(r.LogicalIndexOf(slot), 1)
}

// Dispose releases every outstanding animation handle in both
// collections. Items whose animations already completed released their
// handles in their completion callbacks and are no longer tracked, so
// every handle is released exactly once even on teardown mid-flight.
func (r *Reconciler[W]) Dispose() {
	for _, item := range r.incoming {
		item.anim.Release()
	}
	for _, item := range r.outgoing {
		item.anim.Release()
	}
	r.incoming = nil
	r.outgoing = nil
}

// insertSorted appends and restores slot order.
func (r *Reconciler[W]) insertSorted(items *[]*activeItem[W], item *activeItem[W]) {
	*items = append(*items, item)
	s := *items
	sort.Slice(s, func(i, j int) bool { return s[i].slot < s[j].slot })
}

func (r *Reconciler[W]) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}
