//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// Pulse widths for the two servo positions. Zero stops the pulse train and
// lets the horn go slack.
const (
	servoOnMicros  = 2400
	servoOffMicros = 0
)

// ServoPair drives every rig servo to the same position
type ServoPair struct {
	servos []servo.Servo
}

// NewServoPair attaches a servo on each pin. Each pin's PWM slice is
// reconfigured for a 50 Hz period.
func NewServoPair(pins ...uint8) (*ServoPair, error) {
	p := &ServoPair{}
	for _, pin := range pins {
		s, err := servo.New(pwmForPin(pin), machine.Pin(pin))
		if err != nil {
			return nil, err
		}
		p.servos = append(p.servos, s)
	}
	return p, nil
}

// SetServo implements core.ServoDriver
func (p *ServoPair) SetServo(on bool) error {
	us := int16(servoOffMicros)
	if on {
		us = servoOnMicros
	}
	for _, s := range p.servos {
		s.SetMicroseconds(us)
	}
	return nil
}

// pwmForPin returns the PWM slice that owns pin.
// GPIO N belongs to slice (N >> 1) & 7; the channel is N & 1.
func pwmForPin(pin uint8) servo.PWM {
	switch (pin >> 1) & 0x7 {
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	}
	return machine.PWM0
}
