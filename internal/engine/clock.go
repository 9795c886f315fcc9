package engine

import "sync/atomic"

// Clock stamps display updates with a strictly increasing sequence number.
//
// The first update pushed by an engine carries Seq 1. Sequence numbers are
// logical: they order updates within one engine and say nothing about wall
// time, so replaying the same actions yields the same numbers.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first tick is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first tick is start+1.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out, 0 if none.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
