package core

import "sync/atomic"

// Default press debounce
const ButtonDebounceMs = 300

// Button detects presses of the encoder's push switch.
//
// A released-to-pressed edge reports a press at most once per debounce
// window; releasing clears the held latch so the next edge can report again.
// A reported press stays pending until the main loop takes it.
type Button struct {
	debounce  uint32
	held      bool
	lastPress uint32
	pressed   bool // at least one press was accepted
	pending   atomic.Bool
}

// NewButton creates a button with the given debounce window
func NewButton(debounceMs uint32) *Button {
	return &Button{debounce: debounceMs}
}

// Edge handles a level change at time now (ms) and reports whether a press
// was registered.
func (b *Button) Edge(pressed bool, now uint32) bool {
	if !pressed {
		b.held = false
		return false
	}
	if b.held {
		return false
	}
	if b.pressed && Elapsed(now, b.lastPress) < b.debounce {
		return false
	}

	b.held = true
	b.pressed = true
	b.lastPress = now
	b.pending.Store(true)
	return true
}

// Take reports a pending press and clears it
func (b *Button) Take() bool {
	return b.pending.Swap(false)
}
