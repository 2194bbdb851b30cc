package core

import "sync/atomic"

// Default quadrature debounce
const EncoderDebounceMs = 5

// Transition codes are last<<2 | current over the two-bit (A<<1 | B) state.
// Four codes are one detent step in each direction; the rest are no change
// or a skipped state and are ignored.
var quadratureSteps = [16]int8{
	0b1101: 1, 0b0100: 1, 0b0010: 1, 0b1011: 1,
	0b1110: -1, 0b0111: -1, 0b0001: -1, 0b1000: -1,
}

// Decoder turns edges on the encoder's A/B lines into a signed step count.
//
// Edge runs in interrupt context and is the only writer of the state; the
// main loop reads the accumulated count with Drain, which swaps it to zero
// in one atomic step.
type Decoder struct {
	debounce uint32
	last     uint8
	lastEdge uint32
	seenEdge bool
	delta    atomic.Int32
}

// NewDecoder creates a decoder. Both lines idle high with pull-ups, so the
// initial state is 0b11.
func NewDecoder(debounceMs uint32) *Decoder {
	return &Decoder{debounce: debounceMs, last: 0b11}
}

// Edge handles a level change on either line at time now (ms) and returns
// the step it produced (-1, 0 or 1).
func (d *Decoder) Edge(a, b bool, now uint32) int {
	if d.seenEdge && Elapsed(now, d.lastEdge) < d.debounce {
		return 0
	}

	var cur uint8
	if a {
		cur |= 0b10
	}
	if b {
		cur |= 0b01
	}
	code := d.last<<2 | cur
	if code>>2 == cur {
		// No level change, nothing to accept
		return 0
	}

	d.last = cur
	d.lastEdge = now
	d.seenEdge = true

	step := int(quadratureSteps[code])
	if step != 0 {
		d.add(int32(step))
	}
	return step
}

// add accumulates into the counter, saturating at the int8 range
func (d *Decoder) add(step int32) {
	for {
		old := d.delta.Load()
		next := old + step
		if next > 127 || next < -128 {
			return
		}
		if d.delta.CompareAndSwap(old, next) {
			return
		}
	}
}

// Pending returns the accumulated count without consuming it
func (d *Decoder) Pending() int {
	return int(d.delta.Load())
}

// Drain returns the accumulated count and resets it to zero
func (d *Decoder) Drain() int {
	return int(d.delta.Swap(0))
}
