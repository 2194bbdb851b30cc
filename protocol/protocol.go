// Package protocol defines the wire format shared by the rig firmware and
// its host-side tools: JSON commands, JSON state snapshots and the
// checksummed line framing used on the serial link.
package protocol

import "errors"

// Version represents the axisrig wire protocol version
const Version = "1.0.0"

// Framing constants
const (
	LineMax       = 512 // Longest accepted frame including checksum and newline
	LineSeparator = '*' // Separates the JSON payload from its checksum
	LineTrailer   = 6   // '*' + 4 hex digits + '\n'
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrBadChecksum = errors.New("line checksum mismatch")
	ErrLineTooLong = errors.New("line exceeds maximum length")
)
