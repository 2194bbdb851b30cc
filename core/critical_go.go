//go:build !tinygo

package core

import "sync"

// criticalState is unused on regular Go; the mutex stands in for masking
// interrupts so tests can exercise the scheduler from several goroutines.
type criticalState struct{}

var criticalMu sync.Mutex

func enterCritical() criticalState {
	criticalMu.Lock()
	return criticalState{}
}

func exitCritical(criticalState) {
	criticalMu.Unlock()
}
