package state

import "sync/atomic"

// Clock hands out monotonically increasing revision numbers. Every
// document mutation ticks it, so a revision identifies one document state.
type Clock struct {
	counter uint64
}

// Tick advances the clock and returns the new revision.
func (c *Clock) Tick() uint64 {
	return atomic.AddUint64(&c.counter, 1)
}

// Now returns the latest revision without advancing.
func (c *Clock) Now() uint64 {
	return atomic.LoadUint64(&c.counter)
}
