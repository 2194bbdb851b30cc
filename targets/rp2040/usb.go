//go:build rp2040

package main

import (
	"machine"
	"time"

	"axisrig/core"
	"axisrig/protocol"
)

// maxWriteFailures consecutive failed writes mark the host as gone
const maxWriteFailures = 10

// InitUSB configures machine.Serial, which is USB CDC on the RP2040
func InitUSB() {
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// usbLink carries checksummed JSON lines over USB CDC.
//
// The reader goroutine fills the input FIFO; the main loop turns complete
// lines into commands and writes the newest pending snapshot.
type usbLink struct {
	in   *protocol.FifoBuffer
	line []byte

	snapshot []byte
	frame    []byte
	pending  bool

	received      uint32
	badFrames     uint32
	writeFailures uint32
	disconnected  bool
}

func newUSBLink() *usbLink {
	return &usbLink{
		in:       protocol.NewFifoBuffer(2 * protocol.LineMax),
		line:     make([]byte, protocol.LineMax),
		snapshot: make([]byte, 0, protocol.LineMax),
		frame:    make([]byte, 0, protocol.LineMax+protocol.LineTrailer),
	}
}

// Publish implements core.Observer. Snapshots are complete, so a newer one
// replaces any that has not been written yet: when several state changes
// land in one loop pass, only the last reaches the host and the
// intermediate frames are dropped on purpose.
func (l *usbLink) Publish(s protocol.Snapshot) {
	l.snapshot = s.AppendJSON(l.snapshot[:0])
	l.pending = true
}

// Receive hands every complete, valid line to the firmware inbox
func (l *usbLink) Receive(fw *core.Firmware) {
	for {
		line, ok := l.in.ReadLine(l.line)
		if !ok {
			return
		}
		payload, err := protocol.DecodeLine(line)
		if err != nil {
			l.badFrames++
			core.DebugPrintln("[usb] " + err.Error())
			continue
		}
		l.received++
		if err := fw.SubmitJSON(payload); err != nil {
			core.DebugPrintln("[usb] " + err.Error())
		}
	}
}

// Flush writes the pending snapshot, if any
func (l *usbLink) Flush() {
	if !l.pending {
		return
	}
	l.pending = false
	l.frame = protocol.AppendLine(l.frame[:0], l.snapshot)
	l.write(l.frame)
}

// WriteDebug sends a plain text line. The host logs lines without a valid
// checksum as board output.
func (l *usbLink) WriteDebug(msg string) {
	l.frame = append(l.frame[:0], msg...)
	l.frame = append(l.frame, '\n')
	l.write(l.frame)
}

func (l *usbLink) write(data []byte) {
	written := 0
	for written < len(data) {
		n, err := machine.Serial.Write(data[written:])
		if err != nil || n == 0 {
			// Likely a disconnect
			l.writeFailures++
			if l.writeFailures > maxWriteFailures {
				l.disconnected = true
				l.writeFailures = 0
				l.in.Reset()
			}
			return
		}
		written += n
	}
	l.writeFailures = 0
}

// readLoop runs in a goroutine and moves USB bytes into the FIFO
func (l *usbLink) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			// Restart the reader loop
			time.Sleep(100 * time.Millisecond)
			go l.readLoop()
		}
	}()

	var chunk [64]byte
	for {
		n := 0
		for n < len(chunk) && machine.Serial.Buffered() > 0 {
			b, err := machine.Serial.ReadByte()
			if err != nil {
				break
			}
			chunk[n] = b
			n++
		}
		if n > 0 {
			if l.disconnected {
				// Fresh connection: drop any half line from the old one
				l.disconnected = false
				l.in.Reset()
			}
			if l.in.Write(chunk[:n]) < n {
				l.badFrames++
			}
		}
		// Yield to avoid a busy loop
		time.Sleep(100 * time.Microsecond)
	}
}
