//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"axisrig/core"
)

// RP2040 timer peripheral, a free running 64-bit microsecond counter
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08
	timerTIMERAWL = timerBase + 0x0C
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// GetHardwareUptime reads the full 64-bit microsecond timer
func GetHardwareUptime() uint64 {
	// High, low, high again to detect a carry between the two reads
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// Millis returns milliseconds since boot, truncated to 32 bits.
// Safe to call from interrupt handlers.
func Millis() uint32 {
	return uint32(GetHardwareUptime() / 1000)
}

// UpdateSystemTime publishes the current time to core.GetTime.
// Called once per main loop iteration.
func UpdateSystemTime() uint32 {
	now := Millis()
	core.SetTime(now)
	return now
}
