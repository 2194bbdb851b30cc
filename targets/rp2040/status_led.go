//go:build rp2040

package main

import (
	"machine"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"

	"axisrig/core"
)

// StatusLED shows the rig status on a WS2812 pixel driven by a PIO state
// machine: green when stopped, amber while running, blue while calibrating.
type StatusLED struct {
	ws *piolib.WS2812B
}

// NewStatusLED claims a state machine on PIO0 for the pixel on pin
func NewStatusLED(pin uint8) (*StatusLED, error) {
	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		return nil, err
	}
	ws, err := piolib.NewWS2812B(sm, machine.Pin(pin))
	if err != nil {
		return nil, err
	}
	return &StatusLED{ws: ws}, nil
}

// ShowStatus implements core.StatusIndicator
func (l *StatusLED) ShowStatus(s core.RigStatus) error {
	switch s {
	case core.StatusRunning:
		l.ws.PutRGB(40, 24, 0)
	case core.StatusCalibrating:
		l.ws.PutRGB(0, 0, 40)
	default:
		l.ws.PutRGB(0, 40, 0)
	}
	return nil
}
