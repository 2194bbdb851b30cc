//go:build rp2040

package main

import (
	"machine"

	"axisrig/config"
	"axisrig/core"
)

const bothEdges = machine.PinRising | machine.PinFalling

// attachInputs wires the encoder and its push switch to pin interrupts.
// All three lines idle high on pull-ups.
func attachInputs(pins config.PinConfig, dec *core.Decoder, btn *core.Button) error {
	a := machine.Pin(pins.EncoderA)
	b := machine.Pin(pins.EncoderB)
	sw := machine.Pin(pins.Button)
	for _, p := range []machine.Pin{a, b, sw} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	onEncoder := func(machine.Pin) {
		dec.Edge(a.Get(), b.Get(), Millis())
	}
	if err := a.SetInterrupt(bothEdges, onEncoder); err != nil {
		return err
	}
	if err := b.SetInterrupt(bothEdges, onEncoder); err != nil {
		return err
	}
	return sw.SetInterrupt(bothEdges, func(machine.Pin) {
		btn.Edge(!sw.Get(), Millis())
	})
}
