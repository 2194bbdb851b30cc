package sim

import (
	"sync"

	"axisrig/core"
	"axisrig/protocol"
)

// Panel captures the board's outputs: the last screen drawn on the OLED,
// the status LED color and the last published snapshot. It implements
// core.Display, core.StatusIndicator and core.Observer.
type Panel struct {
	mu     sync.Mutex
	screen core.Screen
	status core.RigStatus
	snap   protocol.Snapshot
	frames uint64

	updates chan struct{}
}

// NewPanel creates an empty panel
func NewPanel() *Panel {
	return &Panel{updates: make(chan struct{}, 1)}
}

// Show implements core.Display
func (p *Panel) Show(s core.Screen) error {
	p.mu.Lock()
	p.screen = s
	p.frames++
	p.mu.Unlock()
	return nil
}

// ShowStatus implements core.StatusIndicator
func (p *Panel) ShowStatus(s core.RigStatus) error {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
	return nil
}

// Publish implements core.Observer. It never blocks; readers coalesce
// updates through Updates.
func (p *Panel) Publish(s protocol.Snapshot) {
	p.mu.Lock()
	p.snap = s.Clone()
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Updates signals after a publish; several publishes may share a signal
func (p *Panel) Updates() <-chan struct{} {
	return p.updates
}

// Screen returns the last screen shown
func (p *Panel) Screen() core.Screen {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.screen
	s.Items = append([]string(nil), s.Items...)
	return s
}

// Status returns the status LED state
func (p *Panel) Status() core.RigStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Snapshot returns the last published snapshot
func (p *Panel) Snapshot() protocol.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.Clone()
}

// Frames counts screens drawn
func (p *Panel) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}
