// Package sim runs the rig firmware against simulated hardware: an
// in-memory GPIO bank, a physical model of the four actuators, a recording
// servo and a front panel that captures what the OLED and status LED show.
package sim

import (
	"errors"
	"sync"

	"axisrig/core"
)

var ErrNotOutput = errors.New("pin not configured as output")

// PinMode is the configured function of a simulated pin
type PinMode uint8

const (
	PinUnused PinMode = iota
	PinOutput
	PinInputPullUp
	PinInputPullDown
)

// EdgeHandler is called after an input pin changes level, like a pin
// change interrupt.
type EdgeHandler func(pin core.GPIOPin, level bool)

type pinState struct {
	mode  PinMode
	level bool
}

// GPIO implements core.GPIODriver over an in-memory pin bank
type GPIO struct {
	mu       sync.Mutex
	pins     map[core.GPIOPin]*pinState
	handlers map[core.GPIOPin][]EdgeHandler
	writes   uint64
}

// NewGPIO creates an empty pin bank
func NewGPIO() *GPIO {
	return &GPIO{
		pins:     make(map[core.GPIOPin]*pinState),
		handlers: make(map[core.GPIOPin][]EdgeHandler),
	}
}

func (g *GPIO) configure(pin core.GPIOPin, mode PinMode, level bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pins[pin] = &pinState{mode: mode, level: level}
	return nil
}

// ConfigureOutput configures pin as an output driven low
func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	return g.configure(pin, PinOutput, false)
}

// ConfigureInputPullUp configures pin as an input idling high
func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	return g.configure(pin, PinInputPullUp, true)
}

// ConfigureInputPullDown configures pin as an input idling low
func (g *GPIO) ConfigureInputPullDown(pin core.GPIOPin) error {
	return g.configure(pin, PinInputPullDown, false)
}

// SetPin drives an output pin
func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.pins[pin]
	if !ok || p.mode != PinOutput {
		return ErrNotOutput
	}
	p.level = value
	g.writes++
	return nil
}

// GetPin reads the level of any configured pin. Unconfigured pins read low.
func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	return g.Level(pin), nil
}

// Level returns the current level of pin
func (g *GPIO) Level(pin core.GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pins[pin]; ok {
		return p.level
	}
	return false
}

// Mode returns the configured mode of pin
func (g *GPIO) Mode(pin core.GPIOPin) PinMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pins[pin]; ok {
		return p.mode
	}
	return PinUnused
}

// Writes counts successful SetPin calls
func (g *GPIO) Writes() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes
}

// OnEdge registers h for level changes on an input pin
func (g *GPIO) OnEdge(pin core.GPIOPin, h EdgeHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[pin] = append(g.handlers[pin], h)
}

// Drive sets the level of an input pin from outside the board. Handlers
// run only when the level changes, and run without the bank lock held.
func (g *GPIO) Drive(pin core.GPIOPin, level bool) {
	g.mu.Lock()
	p, ok := g.pins[pin]
	if !ok {
		p = &pinState{}
		g.pins[pin] = p
	}
	if p.mode == PinOutput || p.level == level {
		g.mu.Unlock()
		return
	}
	p.level = level
	handlers := append([]EdgeHandler(nil), g.handlers[pin]...)
	g.mu.Unlock()

	for _, h := range handlers {
		h(pin, level)
	}
}
