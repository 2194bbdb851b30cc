package sim

// Quadrature state order for forward rotation, as (A<<1 | B)
var forwardCycle = [4]uint8{0b11, 0b01, 0b00, 0b10}

// EncoderLevels is one A/B sample of a quadrature encoder
type EncoderLevels struct {
	A, B bool
}

func (l EncoderLevels) code() uint8 {
	var c uint8
	if l.A {
		c |= 0b10
	}
	if l.B {
		c |= 0b01
	}
	return c
}

func levelsOf(code uint8) EncoderLevels {
	return EncoderLevels{A: code&0b10 != 0, B: code&0b01 != 0}
}

// EncoderSteps returns the A/B levels produced by turning an encoder
// from levels from by n transitions. Positive n turns forward.
func EncoderSteps(from EncoderLevels, n int) []EncoderLevels {
	pos := 0
	for i, c := range forwardCycle {
		if c == from.code() {
			pos = i
			break
		}
	}

	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	out := make([]EncoderLevels, n)
	for i := range out {
		pos = (pos + dir + len(forwardCycle)) % len(forwardCycle)
		out[i] = levelsOf(forwardCycle[pos])
	}
	return out
}
