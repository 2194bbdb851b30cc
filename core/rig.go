package core

import (
	"errors"

	"axisrig/protocol"
)

// Rig geometry and timing defaults
const (
	NumAxes               = 4
	DefaultMinDistance    = 0
	DefaultMaxDistance    = 20   // mm
	DefaultStepDurationMs = 6800 // ms of drive per mm
)

var (
	ErrAxisOutOfRange  = errors.New("axis index out of range")
	ErrNoAxes          = errors.New("rig needs at least one axis")
	ErrBadBounds       = errors.New("minimum distance exceeds maximum distance")
	ErrBadStepDuration = errors.New("step duration must be positive")
)

// RigConfig describes the physical rig
type RigConfig struct {
	Axes            []AxisPins
	MinDistance     int
	MaxDistance     int
	StepDuration    uint32 // ms per distance unit
	LimitActiveHigh bool
	LimitSamples    uint8
}

// Validate checks the configuration for values the motion model cannot use
func (c RigConfig) Validate() error {
	if len(c.Axes) == 0 {
		return ErrNoAxes
	}
	if c.MinDistance > c.MaxDistance {
		return ErrBadBounds
	}
	if c.StepDuration == 0 {
		return ErrBadStepDuration
	}
	return nil
}

// Hardware bundles the drivers a rig talks to. Only GPIO is required.
type Hardware struct {
	GPIO    GPIODriver
	Servo   ServoDriver
	Display Display
	Status  StatusIndicator
	Clock   func() uint32 // ms; defaults to GetTime
}

// Rig owns all mutable rig state: the axes, the menu and the servo flag.
//
// Every exported mutating method is an entry point that ends with a
// broadcast of the new state. Entry points must all be called from the
// same goroutine (the firmware loop); other goroutines hand commands to
// Firmware.Submit instead.
type Rig struct {
	cfg      RigConfig
	gpio     GPIODriver
	servoDrv ServoDriver
	clock    func() uint32

	axes   []Axis
	limits []*LimitSwitch
	menu   Menu
	servo  bool

	commands *CommandRegistry
	bc       Broadcaster
}

// NewRig validates cfg, configures the drive and limit pins and returns a
// rig with every axis stopped at position zero.
func NewRig(cfg RigConfig, hw Hardware) (*Rig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw.GPIO == nil {
		return nil, errors.New("rig needs a GPIO driver")
	}
	if hw.Servo == nil {
		hw.Servo = nopServo{}
	}
	if hw.Clock == nil {
		hw.Clock = GetTime
	}

	r := &Rig{
		cfg:      cfg,
		gpio:     hw.GPIO,
		servoDrv: hw.Servo,
		clock:    hw.Clock,
		axes:     make([]Axis, len(cfg.Axes)),
		limits:   make([]*LimitSwitch, len(cfg.Axes)),
		commands: NewCommandRegistry(),
		bc:       Broadcaster{display: hw.Display, status: hw.Status},
	}
	RegisterRigCommands(r.commands)

	for i, pins := range cfg.Axes {
		if err := r.gpio.ConfigureOutput(pins.Forward); err != nil {
			return nil, err
		}
		if err := r.gpio.ConfigureOutput(pins.Backward); err != nil {
			return nil, err
		}
		r.limits[i] = NewLimitSwitch(pins.Limit, cfg.LimitActiveHigh, cfg.LimitSamples)
		if err := r.limits[i].configure(r.gpio); err != nil {
			return nil, err
		}
		r.drive(i, DirIdle)
		r.axes[i].Target = clampInt(0, cfg.MinDistance, cfg.MaxDistance)
	}
	r.menu.reset()
	return r, nil
}

// Config returns the rig configuration
func (r *Rig) Config() RigConfig { return r.cfg }

// NumAxes returns the number of axes
func (r *Rig) NumAxes() int { return len(r.axes) }

// Axis returns a copy of axis i
func (r *Rig) Axis(i int) (Axis, error) {
	if i < 0 || i >= len(r.axes) {
		return Axis{}, ErrAxisOutOfRange
	}
	return r.axes[i], nil
}

// Menu returns a copy of the menu state
func (r *Rig) Menu() Menu { return r.menu }

// ServoState returns the servo flag
func (r *Rig) ServoState() bool { return r.servo }

// Commands returns the remote command registry
func (r *Rig) Commands() *CommandRegistry { return r.commands }

// Subscribe registers an observer for snapshots. Call it before the
// firmware loop starts.
func (r *Rig) Subscribe(o Observer) {
	r.bc.Subscribe(o)
}

// Broadcasts returns the number of broadcasts made so far
func (r *Rig) Broadcasts() uint32 { return r.bc.Count() }

// Status summarizes all axes
func (r *Rig) Status() RigStatus {
	status := StatusStopped
	for i := range r.axes {
		if r.axes[i].Calibrating() {
			return StatusCalibrating
		}
		if r.axes[i].Running {
			status = StatusRunning
		}
	}
	return status
}

// Snapshot builds the observer view of the current state
func (r *Rig) Snapshot() protocol.Snapshot {
	s := protocol.Snapshot{
		Axes:         make([]protocol.AxisStatus, len(r.axes)),
		ServoState:   r.servo,
		GlobalStatus: protocol.StatusStopped,
	}
	for i := range r.axes {
		s.Axes[i] = r.axes[i].status()
		if r.axes[i].Running {
			s.GlobalStatus = protocol.StatusRunning
		}
	}
	return s
}

// Broadcast pushes the current state to the display and all observers
// without mutating anything. Used at boot and for explicit state requests.
func (r *Rig) Broadcast() {
	r.broadcast()
}

func (r *Rig) broadcast() {
	r.bc.Notify(r.Screen(), r.Snapshot(), r.Status())
}

// Apply dispatches a decoded remote command through the registry
func (r *Rig) Apply(cmd protocol.Command) error {
	return r.commands.Dispatch(r, cmd)
}
