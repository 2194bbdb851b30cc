package protocol

// FifoBuffer is a circular byte buffer that accumulates serial input until
// a complete line is available.
type FifoBuffer struct {
	buf     []byte
	read    int
	write   int
	size    int
	dropped bool // a line overflowed and is being discarded up to its '\n'
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data and returns the number of bytes stored.
// Bytes that do not fit are discarded.
func (f *FifoBuffer) Write(data []byte) int {
	n := 0
	for _, b := range data {
		next := (f.write + 1) % f.size
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		n++
	}
	return n
}

// Available returns the number of buffered bytes
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes that can still be written
func (f *FifoBuffer) Free() int {
	return f.size - f.Available() - 1
}

// IsEmpty reports whether nothing is buffered
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
	f.dropped = false
}

// ReadLine copies the next complete line, without its '\n', into dst and
// returns it. ok is false when no full line is buffered yet.
//
// A line longer than dst, or one that fills the whole buffer, is discarded
// through its terminating newline so that the stream resynchronizes.
func (f *FifoBuffer) ReadLine(dst []byte) (line []byte, ok bool) {
	for {
		end := -1
		for i, p := 0, f.read; p != f.write; i, p = i+1, (p+1)%f.size {
			if f.buf[p] == '\n' {
				end = i
				break
			}
		}

		if end < 0 {
			if f.Free() == 0 {
				// No terminator and no room left: drop what we have
				f.read = f.write
				f.dropped = true
			}
			return nil, false
		}

		discard := f.dropped || end > len(dst)
		if !discard {
			for i := 0; i < end; i++ {
				dst[i] = f.buf[(f.read+i)%f.size]
			}
		}
		f.read = (f.read + end + 1) % f.size
		if discard {
			f.dropped = false
			continue
		}
		return dst[:end], true
	}
}
