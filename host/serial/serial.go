// Package serial opens the USB CDC link to the rig board.
package serial

import (
	"io"

	"axisrig/config"
)

// Port is a byte stream to the board. Tests substitute pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush discards data buffered in either direction
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; USB CDC ignores it but the OS wants one
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the settings for the rig board on device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// FromHost builds a port config from the host section of the rig config
func FromHost(h config.HostConfig) *Config {
	cfg := DefaultConfig(h.SerialDevice)
	if h.SerialBaud > 0 {
		cfg.Baud = h.SerialBaud
	}
	return cfg
}
