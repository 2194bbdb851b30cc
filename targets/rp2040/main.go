//go:build rp2040

package main

import (
	"machine"
	"time"

	"axisrig/config"
	"axisrig/core"
)

// Longest main loop sleep; bounds the latency of commands and presses
const maxIdleMs = 2

var (
	link *usbLink

	// Main loop panics recovered
	loopErrors uint32
)

func main() {
	// Disable a watchdog left running by a previous image
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitUSB()
	link = newUSBLink()
	core.SetDebugWriter(link.WriteDebug)
	core.SetDebugEnabled(true)

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		halt("config: " + err.Error())
	}

	core.SetGPIODriver(NewRPGPIODriver())
	hw := core.Hardware{
		GPIO:  core.MustGPIO(),
		Clock: core.GetTime,
	}
	if servos, err := NewServoPair(cfg.Pins.Servo, cfg.Pins.Servo2); err != nil {
		core.DebugPrintln("[servo] " + err.Error())
	} else {
		core.SetServoDriver(servos)
		hw.Servo = core.MustServo()
	}
	if oled, err := NewOLED(cfg.Pins.SDA, cfg.Pins.SCL); err != nil {
		core.DebugPrintln("[oled] " + err.Error())
	} else {
		hw.Display = oled
	}
	if led, err := NewStatusLED(cfg.Pins.StatusLED); err != nil {
		core.DebugPrintln("[led] " + err.Error())
	} else {
		hw.Status = led
	}

	UpdateSystemTime()
	rig, err := core.NewRig(cfg.ToRigConfig(), hw)
	if err != nil {
		halt("rig: " + err.Error())
	}
	rig.Subscribe(link)

	dec := core.NewDecoder(cfg.Rig.EncoderDebounceMs)
	btn := core.NewButton(cfg.Rig.ButtonDebounceMs)
	fw := core.NewFirmware(rig, dec, btn, cfg.LoopConfig())
	if err := attachInputs(cfg.Pins, dec, btn); err != nil {
		core.DebugPrintln("[input] " + err.Error())
	}

	go link.readLoop()

	for {
		var idle uint32
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopErrors++
					link.in.Reset()
				}
			}()

			now := UpdateSystemTime()
			link.Receive(fw)
			fw.Step(now)
			link.Flush()
			idle = fw.Idle(now, maxIdleMs)
		}()

		// Yield to the USB reader, longer when no timer is due
		if idle == 0 {
			time.Sleep(100 * time.Microsecond)
		} else {
			time.Sleep(time.Duration(idle) * time.Millisecond)
		}
	}
}

// halt reports a fatal setup error once a second. Nothing is driven.
func halt(msg string) {
	for {
		link.WriteDebug("[fatal] " + msg)
		time.Sleep(time.Second)
	}
}
