// Package ringbuf holds the EKG sample window and the animation state that
// feeds it.
package ringbuf

// Buffer is a fixed-size sliding window of samples. Pushing a sample evicts
// the oldest one, so Len never changes.
type Buffer struct {
	buf []float64
	idx int
}

// New returns a buffer of n samples, all set to fill. n is raised to 1.
func New(n int, fill float64) *Buffer {
	if n < 1 {
		n = 1
	}
	b := &Buffer{buf: make([]float64, n)}
	for i := range b.buf {
		b.buf[i] = fill
	}
	return b
}

// Len is the fixed capacity of the window.
func (b *Buffer) Len() int { return len(b.buf) }

// Push appends v at the tail and evicts the head.
func (b *Buffer) Push(v float64) {
	b.buf[b.idx] = v
	b.idx++
	if b.idx >= len(b.buf) {
		b.idx = 0
	}
}

// At returns the i-th sample counting from the oldest.
func (b *Buffer) At(i int) float64 {
	return b.buf[(b.idx+i)%len(b.buf)]
}

// Head is the oldest sample.
func (b *Buffer) Head() float64 { return b.At(0) }

// Tail is the newest sample.
func (b *Buffer) Tail() float64 { return b.At(len(b.buf) - 1) }

// Snapshot copies the window into dst, oldest first, growing dst if needed.
func (b *Buffer) Snapshot(dst []float64) []float64 {
	if cap(dst) < len(b.buf) {
		dst = make([]float64, len(b.buf))
	}
	dst = dst[:len(b.buf)]
	n := copy(dst, b.buf[b.idx:])
	copy(dst[n:], b.buf[:b.idx])
	return dst
}
