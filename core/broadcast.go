package core

import "axisrig/protocol"

// Observer receives a snapshot after every state change. Publish is called
// on the firmware loop and must not block; network observers queue the
// snapshot and return.
type Observer interface {
	Publish(s protocol.Snapshot)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(protocol.Snapshot)

// Publish calls f(s)
func (f ObserverFunc) Publish(s protocol.Snapshot) { f(s) }

// Broadcaster fans state out to the local display, the status indicator
// and every observer, in that order.
type Broadcaster struct {
	display   Display
	status    StatusIndicator
	observers []Observer

	count      uint32
	lastStatus RigStatus
	statusSent bool
}

// Subscribe adds an observer
func (b *Broadcaster) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// Count returns the number of broadcasts made
func (b *Broadcaster) Count() uint32 {
	return b.count
}

// Notify pushes one state change. The status indicator is only written
// when the status changes.
func (b *Broadcaster) Notify(screen Screen, snap protocol.Snapshot, status RigStatus) {
	b.count++

	if b.display != nil {
		debugError("display", b.display.Show(screen))
	}

	if b.status != nil && (!b.statusSent || status != b.lastStatus) {
		if err := b.status.ShowStatus(status); err != nil {
			debugError("status", err)
		} else {
			b.lastStatus = status
			b.statusSent = true
		}
	}

	for _, o := range b.observers {
		o.Publish(snap)
	}
}
