// Limit switch handling for axis calibration.
// A switch must read active on SampleCount consecutive polls before it
// counts as triggered, which filters contact bounce and noise pickup on
// long cable runs.
package core

// Default number of consecutive active samples before a limit triggers
const DefaultLimitSamples = 3

// LimitSwitch samples one axis's zero limit input
type LimitSwitch struct {
	Pin          GPIOPin
	ActiveHigh   bool  // switch level when the axis is at zero
	SampleCount  uint8 // consecutive active samples required
	triggerCount uint8 // remaining samples before trigger
}

// NewLimitSwitch creates a switch sampler
func NewLimitSwitch(pin GPIOPin, activeHigh bool, samples uint8) *LimitSwitch {
	if samples == 0 {
		samples = 1
	}
	return &LimitSwitch{
		Pin:          pin,
		ActiveHigh:   activeHigh,
		SampleCount:  samples,
		triggerCount: samples,
	}
}

// configure sets the input pull so the switch reads inactive when open
func (l *LimitSwitch) configure(gpio GPIODriver) error {
	if l.ActiveHigh {
		return gpio.ConfigureInputPullDown(l.Pin)
	}
	return gpio.ConfigureInputPullUp(l.Pin)
}

// Sample feeds one pin reading and reports whether the switch has now read
// active for SampleCount samples in a row. The sampler re-arms after it
// reports a trigger.
func (l *LimitSwitch) Sample(level bool) bool {
	if level != l.ActiveHigh {
		l.triggerCount = l.SampleCount
		return false
	}
	if l.triggerCount > 1 {
		l.triggerCount--
		return false
	}
	l.triggerCount = l.SampleCount
	return true
}

// Reset discards a partial run of active samples
func (l *LimitSwitch) Reset() {
	l.triggerCount = l.SampleCount
}
