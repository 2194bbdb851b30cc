package core

// ServoDriver moves the rig's servo between its two positions.
// Targets implement it with a PWM servo driver; the angle mapping
// (off = 0°, on = full travel) lives in the implementation.
type ServoDriver interface {
	SetServo(on bool) error
}

// Global singleton registered by target code.
var servoDriver ServoDriver

// SetServoDriver is called by target-specific code to register its driver.
func SetServoDriver(d ServoDriver) {
	servoDriver = d
}

// MustServo returns the configured driver or panics if missing.
func MustServo() ServoDriver {
	if servoDriver == nil {
		panic("servo driver not configured")
	}
	return servoDriver
}

// nopServo is used when a rig is built without a servo
type nopServo struct{}

func (nopServo) SetServo(bool) error { return nil }
