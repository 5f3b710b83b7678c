package flux

import "time"

// DefaultDuration is the animation length used when callers pass zero.
const DefaultDuration = 300 * time.Millisecond

// Clock is the tick source that drives animations. All animation state
// advances inside Step, on the caller's goroutine - there is no
// per-animation goroutine. The render loop calls Step once per frame
// while Active reports true, and can idle otherwise.
type Clock struct {
	anims []*Anim
}

// NewClock creates an animation clock.
func NewClock() *Clock {
	return &Clock{}
}

// Anim is a single animation handle: a progress value in [0,1] moving
// toward 0 or 1 at a rate set by its duration. Each handle is owned by
// exactly one active item at a time and must be released exactly once.
type Anim struct {
	clock    *Clock
	value    float64
	dur      time.Duration
	dir      int // 0 idle, +1 forward, -1 reverse
	done     func()
	released bool
}

// NewAnim creates a handle at progress 0 (fully absent).
func (c *Clock) NewAnim(d time.Duration) *Anim {
	if d <= 0 {
		d = DefaultDuration
	}
	a := &Anim{clock: c, dur: d}
	c.anims = append(c.anims, a)
	return a
}

// NewCompletedAnim creates a handle at progress 1 (fully present).
func (c *Clock) NewCompletedAnim(d time.Duration) *Anim {
	a := c.NewAnim(d)
	a.value = 1
	return a
}

// Active reports whether any animation is currently running.
func (c *Clock) Active() bool {
	for _, a := range c.anims {
		if !a.released && a.dir != 0 {
			return true
		}
	}
	return false
}

// Step advances every running animation by dt and then runs the
// completion callbacks of animations that reached their end value.
// Callbacks run strictly after all progress values have been updated,
// so a callback observes a consistent frame. Callbacks may start new
// animations or release handles; those take effect from this step on.
func (c *Clock) Step(dt time.Duration) {
	var completed []*Anim
	for _, a := range c.anims {
		if a.released || a.dir == 0 {
			continue
		}
		a.value += float64(a.dir) * float64(dt) / float64(a.dur)
		if a.dir > 0 && a.value >= 1 {
			a.value = 1
			a.dir = 0
			completed = append(completed, a)
		} else if a.dir < 0 && a.value <= 0 {
			a.value = 0
			a.dir = 0
			completed = append(completed, a)
		}
	}

	for _, a := range completed {
		if a.released || a.done == nil {
			continue
		}
		done := a.done
		a.done = nil
		done()
	}

	c.sweep()
}

// sweep drops released handles from the registry.
func (c *Clock) sweep() {
	kept := c.anims[:0]
	for _, a := range c.anims {
		if !a.released {
			kept = append(kept, a)
		}
	}
	// Zero the tail so released handles can be collected.
	for i := len(kept); i < len(c.anims); i++ {
		c.anims[i] = nil
	}
	c.anims = kept
}

// Value returns the current progress in [0,1].
func (a *Anim) Value() float64 {
	return a.value
}

// Running reports whether the animation is moving toward a target.
func (a *Anim) Running() bool {
	return a.dir != 0 && !a.released
}

// Forward animates progress toward 1. done runs on the clock step in
// which progress reaches 1. Calling Forward or Reverse again before
// then replaces both direction and completion; the superseded
// completion never fires.
func (a *Anim) Forward(done func()) {
	if a.released {
		panic("flux: Forward on released animation handle")
	}
	a.dir = 1
	a.done = done
}

// Reverse animates progress toward 0, from wherever it currently is.
func (a *Anim) Reverse(done func()) {
	if a.released {
		panic("flux: Reverse on released animation handle")
	}
	a.dir = -1
	a.done = done
}

// Release returns the handle to the clock. Releasing twice is a bug in
// the owner's lifecycle handling and panics.
func (a *Anim) Release() {
	if a.released {
		panic("flux: animation handle released twice")
	}
	a.released = true
	a.dir = 0
	a.done = nil
}

// Released reports whether the handle has been released.
func (a *Anim) Released() bool {
	return a.released
}
