// Package bridge connects a rig board on a serial line to the websocket hub.
//
// The board writes one framed snapshot per state change and accepts framed
// commands (see protocol.EncodeLine). Lines that do not verify as frames
// are the board's debug output and are logged.
package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"axisrig/core"
	"axisrig/protocol"
)

// Interval between reads after the port reports no data
const idlePoll = 10 * time.Millisecond

// Stats counts bridge traffic
type Stats struct {
	Snapshots uint64 // frames decoded and published
	BadFrames uint64 // lines that failed verification
	Commands  uint64 // commands written to the board
}

// Bridge relays between the board and observers
type Bridge struct {
	port io.ReadWriter
	pub  core.Observer
	log  *slog.Logger

	wmu sync.Mutex
	out []byte

	snapshots atomic.Uint64
	badFrames atomic.Uint64
	commands  atomic.Uint64
}

// New creates a bridge publishing the board's snapshots to pub
func New(port io.ReadWriter, pub core.Observer, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{
		port: port,
		pub:  pub,
		log:  log.With("component", "bridge"),
	}
}

// Submit frames cmd and writes it to the board. It implements
// remote.CommandSink.
func (b *Bridge) Submit(cmd protocol.Command) error {
	payload, err := cmd.Encode()
	if err != nil {
		return err
	}
	if len(payload)+protocol.LineTrailer > protocol.LineMax {
		return protocol.ErrLineTooLong
	}

	b.wmu.Lock()
	defer b.wmu.Unlock()
	b.out = protocol.AppendLine(b.out[:0], payload)
	if _, err := b.port.Write(b.out); err != nil {
		return err
	}
	b.commands.Add(1)
	return nil
}

// Run reads the board until ctx is done or the port fails. If the port is
// an io.Closer it is closed when ctx ends to unblock the reader.
func (b *Bridge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	stop := make(chan struct{})

	g.Go(func() error {
		defer close(stop)
		err := b.readLoop(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			if c, ok := b.port.(io.Closer); ok {
				c.Close()
			}
		case <-stop:
		}
		return nil
	})
	return g.Wait()
}

func (b *Bridge) readLoop(ctx context.Context) error {
	fifo := protocol.NewFifoBuffer(2 * protocol.LineMax)
	chunk := make([]byte, 256)
	line := make([]byte, protocol.LineMax)

	for {
		n, err := b.port.Read(chunk)
		data := chunk[:n]
		for len(data) > 0 {
			w := fifo.Write(data)
			data = data[w:]
			b.drain(fifo, line)
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			// tarm/serial reports a read timeout as EOF
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idlePoll):
			}
		default:
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (b *Bridge) drain(fifo *protocol.FifoBuffer, buf []byte) {
	for {
		line, ok := fifo.ReadLine(buf)
		if !ok {
			return
		}
		b.handleLine(line)
	}
}

func (b *Bridge) handleLine(line []byte) {
	payload, err := protocol.DecodeLine(line)
	if err != nil {
		b.badFrames.Add(1)
		b.log.Debug("board", "line", string(line))
		return
	}
	snap, err := protocol.DecodeSnapshot(payload)
	if err != nil {
		b.badFrames.Add(1)
		b.log.Warn("undecodable snapshot", "err", err)
		return
	}
	b.snapshots.Add(1)
	b.pub.Publish(snap)
}

// Stats returns the traffic counters
func (b *Bridge) Stats() Stats {
	return Stats{
		Snapshots: b.snapshots.Load(),
		BadFrames: b.badFrames.Load(),
		Commands:  b.commands.Load(),
	}
}
