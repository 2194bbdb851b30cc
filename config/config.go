// Package config holds the rig's board and host settings.
//
// Default returns the values the firmware is built with. Host tools can
// override them from a YAML file with Load.
package config

import (
	"errors"
	"strconv"

	"axisrig/core"
)

// Config is the complete rig configuration
type Config struct {
	Rig  RigConfig  `yaml:"rig" json:"rig"`
	Pins PinConfig  `yaml:"pins" json:"pins"`
	Host HostConfig `yaml:"host" json:"host"`
}

// RigConfig sets travel geometry and input timing
type RigConfig struct {
	Axes              int    `yaml:"axes" json:"axes"`
	MinDistance       int    `yaml:"min_distance" json:"min_distance"`
	MaxDistance       int    `yaml:"max_distance" json:"max_distance"`
	StepDurationMs    uint32 `yaml:"step_duration_ms" json:"step_duration_ms"`
	EncoderDebounceMs uint32 `yaml:"encoder_debounce_ms" json:"encoder_debounce_ms"`
	ButtonDebounceMs  uint32 `yaml:"button_debounce_ms" json:"button_debounce_ms"`
	ScrollIntervalMs  uint32 `yaml:"scroll_interval_ms" json:"scroll_interval_ms"`
	TickIntervalMs    uint32 `yaml:"tick_interval_ms" json:"tick_interval_ms"`
	LimitPollMs       uint32 `yaml:"limit_poll_ms" json:"limit_poll_ms"`
	LimitSampleCount  uint8  `yaml:"limit_sample_count" json:"limit_sample_count"`
	LimitActiveHigh   *bool  `yaml:"limit_active_high" json:"limit_active_high"`
}

// AxisPinConfig names the H-bridge inputs and the zero limit of one axis
type AxisPinConfig struct {
	Forward  uint8 `yaml:"forward" json:"forward"`
	Backward uint8 `yaml:"backward" json:"backward"`
	Limit    uint8 `yaml:"limit" json:"limit"`
}

// PinConfig maps board functions to GPIO numbers
type PinConfig struct {
	Axes      []AxisPinConfig `yaml:"axes" json:"axes"`
	EncoderA  uint8           `yaml:"encoder_a" json:"encoder_a"`
	EncoderB  uint8           `yaml:"encoder_b" json:"encoder_b"`
	Button    uint8           `yaml:"button" json:"button"`
	Servo     uint8           `yaml:"servo" json:"servo"`
	Servo2    uint8           `yaml:"servo2" json:"servo2"`
	SDA       uint8           `yaml:"sda" json:"sda"`
	SCL       uint8           `yaml:"scl" json:"scl"`
	StatusLED uint8           `yaml:"status_led" json:"status_led"`
}

// HostConfig is used by the simulator and the serial bridge only
type HostConfig struct {
	Listen        string  `yaml:"listen" json:"listen"`
	SerialDevice  string  `yaml:"serial_device" json:"serial_device"`
	SerialBaud    int     `yaml:"serial_baud" json:"serial_baud"`
	LogLevel      string  `yaml:"log_level" json:"log_level"`
	InboxSize     int     `yaml:"inbox_size" json:"inbox_size"`
	CommandRate   float64 `yaml:"command_rate" json:"command_rate"`     // commands per second per client
	CommandBurst  int     `yaml:"command_burst" json:"command_burst"`   // burst allowance per client
	ClientBacklog int     `yaml:"client_backlog" json:"client_backlog"` // queued snapshots per client
}

var (
	ErrAxisCount = errors.New("axis pin count does not match axes")
	ErrPinInUse  = errors.New("pin assigned twice")
)

// Default returns the RP2040 board configuration
func Default() Config {
	activeHigh := true
	return Config{
		Rig: RigConfig{
			Axes:              core.NumAxes,
			MinDistance:       core.DefaultMinDistance,
			MaxDistance:       core.DefaultMaxDistance,
			StepDurationMs:    core.DefaultStepDurationMs,
			EncoderDebounceMs: core.EncoderDebounceMs,
			ButtonDebounceMs:  core.ButtonDebounceMs,
			ScrollIntervalMs:  40,
			TickIntervalMs:    10,
			LimitPollMs:       10,
			LimitSampleCount:  core.DefaultLimitSamples,
			LimitActiveHigh:   &activeHigh,
		},
		Pins: PinConfig{
			Axes: []AxisPinConfig{
				{Forward: 2, Backward: 3, Limit: 10},
				{Forward: 4, Backward: 5, Limit: 11},
				{Forward: 6, Backward: 7, Limit: 12},
				{Forward: 8, Backward: 9, Limit: 13},
			},
			EncoderA:  14,
			EncoderB:  15,
			Button:    16,
			Servo2:    17,
			Servo:     18,
			StatusLED: 19,
			SDA:       20,
			SCL:       21,
		},
		Host: HostConfig{
			Listen:        ":8080",
			SerialDevice:  "/dev/ttyACM0",
			SerialBaud:    115200,
			LogLevel:      "info",
			InboxSize:     16,
			CommandRate:   20,
			CommandBurst:  10,
			ClientBacklog: 8,
		},
	}
}

// applyDefaults fills zero fields from Default
func applyDefaults(c *Config) {
	def := Default()

	r := &c.Rig
	if r.Axes == 0 {
		r.Axes = def.Rig.Axes
	}
	if r.MaxDistance == 0 && r.MinDistance == 0 {
		r.MaxDistance = def.Rig.MaxDistance
	}
	if r.StepDurationMs == 0 {
		r.StepDurationMs = def.Rig.StepDurationMs
	}
	if r.EncoderDebounceMs == 0 {
		r.EncoderDebounceMs = def.Rig.EncoderDebounceMs
	}
	if r.ButtonDebounceMs == 0 {
		r.ButtonDebounceMs = def.Rig.ButtonDebounceMs
	}
	if r.ScrollIntervalMs == 0 {
		r.ScrollIntervalMs = def.Rig.ScrollIntervalMs
	}
	if r.TickIntervalMs == 0 {
		r.TickIntervalMs = def.Rig.TickIntervalMs
	}
	if r.LimitPollMs == 0 {
		r.LimitPollMs = def.Rig.LimitPollMs
	}
	if r.LimitSampleCount == 0 {
		r.LimitSampleCount = def.Rig.LimitSampleCount
	}
	if r.LimitActiveHigh == nil {
		r.LimitActiveHigh = def.Rig.LimitActiveHigh
	}

	p := &c.Pins
	if len(p.Axes) == 0 && r.Axes == len(def.Pins.Axes) {
		p.Axes = def.Pins.Axes
	}
	if p.EncoderA == 0 && p.EncoderB == 0 {
		p.EncoderA, p.EncoderB = def.Pins.EncoderA, def.Pins.EncoderB
	}
	if p.Button == 0 {
		p.Button = def.Pins.Button
	}
	if p.Servo == 0 {
		p.Servo = def.Pins.Servo
	}
	if p.Servo2 == 0 {
		p.Servo2 = def.Pins.Servo2
	}
	if p.StatusLED == 0 {
		p.StatusLED = def.Pins.StatusLED
	}
	if p.SDA == 0 && p.SCL == 0 {
		p.SDA, p.SCL = def.Pins.SDA, def.Pins.SCL
	}

	h := &c.Host
	if h.Listen == "" {
		h.Listen = def.Host.Listen
	}
	if h.SerialDevice == "" {
		h.SerialDevice = def.Host.SerialDevice
	}
	if h.SerialBaud == 0 {
		h.SerialBaud = def.Host.SerialBaud
	}
	if h.LogLevel == "" {
		h.LogLevel = def.Host.LogLevel
	}
	if h.InboxSize == 0 {
		h.InboxSize = def.Host.InboxSize
	}
	if h.CommandRate == 0 {
		h.CommandRate = def.Host.CommandRate
	}
	if h.CommandBurst == 0 {
		h.CommandBurst = def.Host.CommandBurst
	}
	if h.ClientBacklog == 0 {
		h.ClientBacklog = def.Host.ClientBacklog
	}
}

// Validate checks the pin map and hands the rig section to core for the
// geometry checks.
func (c Config) Validate() error {
	if len(c.Pins.Axes) != c.Rig.Axes {
		return ErrAxisCount
	}

	used := make(map[uint8]string)
	claim := func(pin uint8, name string) error {
		if prev, ok := used[pin]; ok {
			return &PinError{Pin: pin, First: prev, Second: name}
		}
		used[pin] = name
		return nil
	}
	for i, a := range c.Pins.Axes {
		n := "axis" + strconv.Itoa(i)
		for _, p := range []struct {
			pin  uint8
			name string
		}{{a.Forward, n + ".forward"}, {a.Backward, n + ".backward"}, {a.Limit, n + ".limit"}} {
			if err := claim(p.pin, p.name); err != nil {
				return err
			}
		}
	}
	for _, p := range []struct {
		pin  uint8
		name string
	}{
		{c.Pins.EncoderA, "encoder_a"},
		{c.Pins.EncoderB, "encoder_b"},
		{c.Pins.Button, "button"},
		{c.Pins.Servo, "servo"},
		{c.Pins.Servo2, "servo2"},
		{c.Pins.SDA, "sda"},
		{c.Pins.SCL, "scl"},
		{c.Pins.StatusLED, "status_led"},
	} {
		if err := claim(p.pin, p.name); err != nil {
			return err
		}
	}

	return c.ToRigConfig().Validate()
}

// PinError reports a GPIO claimed by two functions
type PinError struct {
	Pin           uint8
	First, Second string
}

func (e *PinError) Error() string {
	return "pin " + strconv.Itoa(int(e.Pin)) + " assigned to both " + e.First + " and " + e.Second
}

func (e *PinError) Unwrap() error { return ErrPinInUse }

// ToRigConfig converts to the core rig configuration
func (c Config) ToRigConfig() core.RigConfig {
	axes := make([]core.AxisPins, len(c.Pins.Axes))
	for i, a := range c.Pins.Axes {
		axes[i] = core.AxisPins{
			Forward:  core.GPIOPin(a.Forward),
			Backward: core.GPIOPin(a.Backward),
			Limit:    core.GPIOPin(a.Limit),
		}
	}
	activeHigh := true
	if c.Rig.LimitActiveHigh != nil {
		activeHigh = *c.Rig.LimitActiveHigh
	}
	return core.RigConfig{
		Axes:            axes,
		MinDistance:     c.Rig.MinDistance,
		MaxDistance:     c.Rig.MaxDistance,
		StepDuration:    c.Rig.StepDurationMs,
		LimitActiveHigh: activeHigh,
		LimitSamples:    c.Rig.LimitSampleCount,
	}
}

// LoopConfig returns the firmware loop timing
func (c Config) LoopConfig() core.LoopConfig {
	return core.LoopConfig{
		TickIntervalMs:   c.Rig.TickIntervalMs,
		LimitPollMs:      c.Rig.LimitPollMs,
		ScrollIntervalMs: c.Rig.ScrollIntervalMs,
		InboxSize:        c.Host.InboxSize,
	}
}
