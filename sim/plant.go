package sim

import (
	"sync"

	"axisrig/core"
)

// Plant models the physical actuators behind the H-bridges. Each axis
// moves while exactly one of its drive pins is high, at one distance unit
// per step duration, between a hard stop at zero and the travel limit.
// The limit switch closes while the carriage sits at zero.
type Plant struct {
	mu         sync.Mutex
	gpio       *GPIO
	pins       []core.AxisPins
	stepMs     uint32
	maxMs      int64
	activeHigh bool

	travel  []int64 // ms of drive time from zero
	last    uint32
	started bool
}

// NewPlant creates a plant with every carriage at the given starting
// travel (distance units from the hard stop).
func NewPlant(gpio *GPIO, cfg core.RigConfig, start []int) *Plant {
	p := &Plant{
		gpio:       gpio,
		pins:       cfg.Axes,
		stepMs:     cfg.StepDuration,
		maxMs:      int64(cfg.MaxDistance-cfg.MinDistance) * int64(cfg.StepDuration),
		activeHigh: cfg.LimitActiveHigh,
		travel:     make([]int64, len(cfg.Axes)),
	}
	for i := range p.travel {
		if i < len(start) {
			p.travel[i] = int64(start[i]) * int64(cfg.StepDuration)
		}
		p.travel[i] = clamp64(p.travel[i], 0, p.maxMs)
	}
	return p
}

// Update advances the model to time now (ms) and refreshes the limit pins
func (p *Plant) Update(now uint32) {
	p.mu.Lock()
	dt := int64(0)
	if p.started {
		dt = int64(core.Elapsed(now, p.last))
	}
	p.last = now
	p.started = true

	limits := make([]bool, len(p.pins))
	for i, pins := range p.pins {
		fwd := p.gpio.Level(pins.Forward)
		bwd := p.gpio.Level(pins.Backward)
		switch {
		case fwd && !bwd:
			p.travel[i] += dt
		case bwd && !fwd:
			p.travel[i] -= dt
		}
		p.travel[i] = clamp64(p.travel[i], 0, p.maxMs)
		limits[i] = p.travel[i] == 0
	}
	p.mu.Unlock()

	for i, pins := range p.pins {
		closed := limits[i]
		p.gpio.Drive(pins.Limit, closed == p.activeHigh)
	}
}

// Travel returns the physical distance of axis i from the hard stop in
// distance units.
func (p *Plant) Travel(i int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.travel) {
		return 0
	}
	return float64(p.travel[i]) / float64(p.stepMs)
}

// AtLimit reports whether axis i sits on its limit switch
func (p *Plant) AtLimit(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return i >= 0 && i < len(p.travel) && p.travel[i] == 0
}

func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
