//go:build tinygo

package core

import "sync/atomic"

// Read from pin interrupts, written by the main loop
var systemTicksValue uint32

func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicksValue)
}

func setSystemTicks(ms uint32) {
	atomic.StoreUint32(&systemTicksValue, ms)
}
