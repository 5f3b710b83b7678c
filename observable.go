package flux

import "time"

// Observable is a generic data container that notifies on changes.
// It separates data management from UI representation.
type Observable[T any] struct {
	items     []T
	listeners []func(Change[T])
}

// Change describes a modification to the observable.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // For Add/Update, the new value
	Old   T // For Update/Remove, the old value
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // Full replacement
)

// NewObservable creates a new observable list.
func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{}
}

// Items returns all items.
func (o *Observable[T]) Items() []T {
	return o.items
}

// Len returns the number of items.
func (o *Observable[T]) Len() int {
	return len(o.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (o *Observable[T]) At(i int) T {
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// Set replaces all items.
func (o *Observable[T]) Set(items []T) *Observable[T] {
	o.items = items
	o.notify(Change[T]{Type: ChangeSet})
	return o
}

// Add appends an item.
func (o *Observable[T]) Add(item T) *Observable[T] {
	idx := len(o.items)
	o.items = append(o.items, item)
	o.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
	return o
}

// Insert inserts an item at index i.
func (o *Observable[T]) Insert(i int, item T) *Observable[T] {
	if i < 0 {
		i = 0
	}
	if i > len(o.items) {
		i = len(o.items)
	}
	o.items = append(o.items[:i], append([]T{item}, o.items[i:]...)...)
	o.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
	return o
}

// RemoveAt removes the item at index i.
func (o *Observable[T]) RemoveAt(i int) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	o.items = append(o.items[:i], o.items[i+1:]...)
	o.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return o
}

// Update modifies the item at index i.
func (o *Observable[T]) Update(i int, fn func(*T)) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	fn(&o.items[i])
	o.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: o.items[i], Old: old})
	return o
}

// Clear removes all items.
func (o *Observable[T]) Clear() *Observable[T] {
	o.items = o.items[:0]
	o.notify(Change[T]{Type: ChangeClear})
	return o
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *Observable[T]) Subscribe(fn func(Change[T])) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		o.listeners[idx] = nil
	}
}

func (o *Observable[T]) notify(c Change[T]) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(c)
		}
	}
}

// AnimatedDispatcher defines how data items map to animated list rows.
// Render builds the row for a live item, with its entrance progress
// (1 = settled). Exit builds the row for a removed item from the value
// captured at removal time, with its reversing progress.
type AnimatedDispatcher[T any] struct {
	Render func(item T, index int, progress float64) Component
	Exit   func(item T, progress float64) Component
}

// AnimatedBinding connects an Observable to an AnimatedList: inserts
// and removals on the data drive the list's entrance and exit
// animations, and removals render the departed value captured from the
// change event since the data no longer holds it.
type AnimatedBinding[T any] struct {
	data     *Observable[T]
	list     *AnimatedList
	dispatch AnimatedDispatcher[T]
	duration time.Duration
	unsub    func()
}

// BindAnimated creates an animated list bound to data. Rows are
// itemHeight cells tall and animate over d (DefaultDuration if zero).
// Exit falls back to Render with the item's last index when nil.
func BindAnimated[T any](clock *Clock, data *Observable[T], itemHeight int, dispatch AnimatedDispatcher[T], d time.Duration) *AnimatedBinding[T] {
	b := &AnimatedBinding[T]{
		data:     data,
		dispatch: dispatch,
		duration: d,
	}
	b.list = NewAnimatedList(clock, data.Len(), itemHeight, func(index int, progress float64) Component {
		return dispatch.Render(data.At(index), index, progress)
	})
	b.unsub = data.Subscribe(b.handleChange)
	return b
}

// List returns the bound animated list component.
func (b *AnimatedBinding[T]) List() *AnimatedList {
	return b.list
}

// handleChange maps a data change onto the list's animated operations.
func (b *AnimatedBinding[T]) handleChange(c Change[T]) {
	switch c.Type {
	case ChangeAdd:
		b.list.InsertItem(c.Index, b.duration)

	case ChangeRemove:
		old := c.Old
		index := c.Index
		exit := b.dispatch.Exit
		if exit == nil {
			exit = func(item T, progress float64) Component {
				return b.dispatch.Render(item, index, progress)
			}
		}
		b.list.RemoveItem(index, func(progress float64) Component {
			return exit(old, progress)
		}, b.duration)

	case ChangeUpdate:
		// Same slot population, new content.
		b.list.changed()

	case ChangeClear, ChangeSet:
		// Bulk replacement is not animated; restart from steady state.
		b.list.Reset(b.data.Len())
	}
}

// Dispose unsubscribes from the data and releases every in-flight
// animation handle.
func (b *AnimatedBinding[T]) Dispose() {
	b.unsub()
	b.list.Dispose()
}
