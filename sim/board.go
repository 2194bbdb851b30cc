package sim

import (
	"context"
	"sync"
	"time"

	"axisrig/config"
	"axisrig/core"
	"axisrig/protocol"
)

// Board is a simulated rig: the firmware loop running against simulated
// pins, actuators, servo and front panel. Turn and Press act on the
// encoder's pins the way a hand on the knob would, so input goes through
// the same interrupt path as on hardware.
type Board struct {
	GPIO     *GPIO
	Plant    *Plant
	Servo    *Servo
	Panel    *Panel
	Firmware *core.Firmware

	cfg   config.Config
	clock func() uint32

	mu  sync.Mutex // serializes knob input
	enc EncoderLevels
}

// NewBoard builds a board from cfg. clock supplies the time in ms; nil uses
// wall time since creation. start gives each carriage's physical distance
// from its limit switch.
func NewBoard(cfg config.Config, clock func() uint32, start []int) (*Board, error) {
	if clock == nil {
		epoch := time.Now()
		clock = func() uint32 { return uint32(time.Since(epoch).Milliseconds()) }
	}

	rc := cfg.ToRigConfig()
	b := &Board{
		GPIO:  NewGPIO(),
		Servo: &Servo{},
		Panel: NewPanel(),
		cfg:   cfg,
		clock: clock,
		enc:   EncoderLevels{A: true, B: true},
	}

	rig, err := core.NewRig(rc, core.Hardware{
		GPIO:    b.GPIO,
		Servo:   b.Servo,
		Display: b.Panel,
		Status:  b.Panel,
		Clock:   clock,
	})
	if err != nil {
		return nil, err
	}
	rig.Subscribe(b.Panel)
	b.Plant = NewPlant(b.GPIO, rc, start)

	dec := core.NewDecoder(cfg.Rig.EncoderDebounceMs)
	btn := core.NewButton(cfg.Rig.ButtonDebounceMs)
	b.Firmware = core.NewFirmware(rig, dec, btn, cfg.LoopConfig())

	pins := cfg.Pins
	a, bp, sw := core.GPIOPin(pins.EncoderA), core.GPIOPin(pins.EncoderB), core.GPIOPin(pins.Button)
	for _, pin := range []core.GPIOPin{a, bp, sw} {
		if err := b.GPIO.ConfigureInputPullUp(pin); err != nil {
			return nil, err
		}
	}
	encoderEdge := func(core.GPIOPin, bool) {
		dec.Edge(b.GPIO.Level(a), b.GPIO.Level(bp), b.clock())
	}
	b.GPIO.OnEdge(a, encoderEdge)
	b.GPIO.OnEdge(bp, encoderEdge)
	b.GPIO.OnEdge(sw, func(_ core.GPIOPin, level bool) {
		btn.Edge(!level, b.clock())
	})
	return b, nil
}

// Rig returns the rig. It may only be touched from the loop goroutine
// once Run has started.
func (b *Board) Rig() *core.Rig { return b.Firmware.Rig }

// Subscribe adds an observer. Call before Run.
func (b *Board) Subscribe(o core.Observer) {
	b.Firmware.Rig.Subscribe(o)
}

// Now returns the board time in ms
func (b *Board) Now() uint32 { return b.clock() }

// Step advances the actuators and runs one loop iteration at the current
// board time.
func (b *Board) Step() {
	now := b.clock()
	b.Plant.Update(now)
	b.Firmware.Step(now)
}

// Run steps the board every interval until ctx is done
func (b *Board) Run(ctx context.Context, interval time.Duration) error {
	return b.Firmware.Run(ctx, func() uint32 {
		now := b.clock()
		b.Plant.Update(now)
		return now
	}, interval)
}

// Submit queues a remote command for the loop
func (b *Board) Submit(cmd protocol.Command) error {
	return b.Firmware.Submit(cmd)
}

// Turn rotates the encoder by n quadrature transitions
func (b *Board) Turn(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pins := b.cfg.Pins
	for _, l := range EncoderSteps(b.enc, n) {
		if l.A != b.enc.A {
			b.GPIO.Drive(core.GPIOPin(pins.EncoderA), l.A)
		}
		if l.B != b.enc.B {
			b.GPIO.Drive(core.GPIOPin(pins.EncoderB), l.B)
		}
		b.enc = l
	}
}

// Press pushes and releases the encoder button
func (b *Board) Press() {
	b.mu.Lock()
	defer b.mu.Unlock()
	pin := core.GPIOPin(b.cfg.Pins.Button)
	b.GPIO.Drive(pin, false)
	b.GPIO.Drive(pin, true)
}
