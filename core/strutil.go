package core

// itoa converts an integer to a string without the fmt package
func itoa(n int) string {
	var buf [20]byte
	return string(appendInt(buf[:0], n))
}

// appendInt appends the decimal form of n to dst
func appendInt(dst []byte, n int) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var tmp [20]byte
	pos := len(tmp)
	u := uint64(n)
	if n < 0 {
		u = uint64(-int64(n))
	}
	for u > 0 {
		pos--
		tmp[pos] = byte('0' + u%10)
		u /= 10
	}
	if n < 0 {
		pos--
		tmp[pos] = '-'
	}
	return append(dst, tmp[pos:]...)
}

// onOff renders a toggle suffix for menu labels
func onOff(on bool) string {
	if on {
		return "[ON]"
	}
	return "[OFF]"
}

// clampInt limits v to [lo, hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sign returns -1, 0 or 1
func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
