package core

// The rig clock counts milliseconds. It is a free-running uint32 that wraps
// after ~49 days, so comparisons must go through Elapsed / TimeReached.

// GetTime returns the current system time in milliseconds
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ms uint32) {
	setSystemTicks(ms)
}

// Elapsed returns the milliseconds from since to now, correct across a wrap
func Elapsed(now, since uint32) uint32 {
	return now - since
}

// TimeReached reports whether now is at or after wake, correct across a wrap
// as long as the two are less than half the clock range apart.
func TimeReached(now, wake uint32) bool {
	return int32(now-wake) >= 0
}

// timeBefore orders two wake times
func timeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
