//go:build !tinygo

package core

import "sync/atomic"

// Host builds share the clock between the firmware goroutine and tests
var systemTicks atomic.Uint32

func getSystemTicks() uint32 {
	return systemTicks.Load()
}

func setSystemTicks(ms uint32) {
	systemTicks.Store(ms)
}
