// Package resize turns a pointer drag into a bounded size change for one layout
// dimension.
package resize

import "math"

// Config describes one resizable region.
//
// Sensitivity is the pointer distance per unit of size change; values <= 0 are
// treated as 1. Max <= 0 means unbounded.
type Config struct {
	Initial     int
	Min         int
	Max         int
	Sensitivity int
}

// Controller owns the size of one region. It is not safe for concurrent use; it
// is driven from a single UI event loop.
//
// Each move re-derives the delta from the drag origin and adds it to the current
// size, so a pointer held still away from the origin keeps growing or shrinking
// the region on every move event.
type Controller struct {
	size        int
	min         int
	max         int
	sensitivity int

	active bool
	origin int
	cancel func()

	// OnChange, when set, is called after every move that changes the size.
	OnChange func(size int)
}

func New(cfg Config) *Controller {
	c := &Controller{sensitivity: cfg.Sensitivity}
	if c.sensitivity <= 0 {
		c.sensitivity = 1
	}
	c.size = cfg.Initial
	c.SetBounds(cfg.Min, cfg.Max)
	return c
}

func (c *Controller) Size() int        { return c.size }
func (c *Controller) Min() int         { return c.min }
func (c *Controller) Max() int         { return c.max }
func (c *Controller) Sensitivity() int { return c.sensitivity }
func (c *Controller) Active() bool     { return c.active }

// SetBounds replaces the floor and ceiling and re-clamps the size. A ceiling
// below the floor is raised to the floor.
func (c *Controller) SetBounds(lo, hi int) {
	c.min = lo
	c.max = hi
	if c.max > 0 && c.max < c.min {
		c.max = c.min
	}
	c.set(c.size)
}

// DragStart captures origin and, when src is non-nil, subscribes to its
// move/end events until the gesture finishes. Starting while a gesture is
// active ends the previous one first.
func (c *Controller) DragStart(origin int, src Source) {
	if c.active {
		c.DragEnd()
	}
	c.active = true
	c.origin = origin
	if src != nil {
		c.cancel = src.Listen(listener{c})
	}
}

// DragMove applies round((cur-origin)/sensitivity) to the size. It does nothing
// unless a drag is active.
func (c *Controller) DragMove(cur int) {
	if !c.active {
		return
	}
	step := Step(cur-c.origin, c.sensitivity)
	if step == 0 {
		return
	}
	c.set(c.size + step)
}

// DragEnd finishes the gesture and releases its listener. Calling it when no
// drag is active does nothing.
func (c *Controller) DragEnd() {
	if !c.active {
		return
	}
	c.active = false
	c.origin = 0
	if cancel := c.cancel; cancel != nil {
		c.cancel = nil
		cancel()
	}
}

// Nudge applies n sensitivity steps outside of a drag, as keyboard resizing does.
func (c *Controller) Nudge(n int) {
	c.set(c.size + n)
}

func (c *Controller) set(n int) {
	if c.max > 0 && n > c.max {
		n = c.max
	}
	if n < c.min {
		n = c.min
	}
	if n == c.size {
		return
	}
	c.size = n
	if c.OnChange != nil {
		c.OnChange(n)
	}
}

// Step divides a raw pointer delta by sensitivity, rounding halves toward
// positive infinity. Movement under half a step yields zero.
func Step(delta, sensitivity int) int {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return int(math.Floor(float64(delta)/float64(sensitivity) + 0.5))
}

type listener struct{ c *Controller }

func (l listener) Move(pos int) { l.c.DragMove(pos) }
func (l listener) End()         { l.c.DragEnd() }
