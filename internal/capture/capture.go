// Package capture provides a bounded buffer for child process output.
// The monitoring service only accepts a limited body, so the buffer
// retains at most Limit bytes of whatever the child writes.
package capture

import "sync"

// Limit is the maximum number of bytes retained, matching the body size
// the monitoring endpoint accepts.
const Limit = 10240

// Mode selects which window of the output stream is retained.
type Mode int

const (
	// Tail keeps the most recent Limit bytes (default).
	Tail Mode = iota
	// Head keeps the first Limit bytes and drops the rest.
	Head
	// None retains nothing; writes are consumed and discarded.
	None
)

func (m Mode) String() string {
	switch m {
	case Head:
		return "head"
	case None:
		return "none"
	default:
		return "tail"
	}
}

// Buffer accumulates process output under the mode and capacity rules.
// Writes never fail; bytes beyond capacity are evicted (Tail) or dropped
// (Head, None). Safe for the drain goroutine to write while other
// goroutines snapshot.
type Buffer struct {
	mu      sync.Mutex
	mode    Mode
	buf     []byte
	start   int // ring read offset, Tail mode only
	total   int64
	dropped bool
}

func New(mode Mode) *Buffer { return &Buffer{mode: mode} }

// Write implements io.Writer. It always reports len(p) consumed so the
// pipe feeding it is fully drained regardless of mode.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total += int64(len(p))
	switch b.mode {
	case None:
		b.dropped = b.dropped || len(p) > 0
	case Head:
		b.writeHead(p)
	default:
		b.writeTail(p)
		b.dropped = b.total > Limit
	}
	return len(p), nil
}

func (b *Buffer) writeHead(p []byte) {
	room := Limit - len(b.buf)
	if room <= 0 {
		b.dropped = b.dropped || len(p) > 0
		return
	}
	if len(p) > room {
		p = p[:room]
		b.dropped = true
	}
	b.buf = append(b.buf, p...)
}

func (b *Buffer) writeTail(p []byte) {
	if len(p) >= Limit {
		// Chunk alone fills the window; everything prior is evicted.
		b.buf = append(b.buf[:0], p[len(p)-Limit:]...)
		b.start = 0
		return
	}
	if len(b.buf) < Limit {
		room := Limit - len(b.buf)
		if len(p) <= room {
			b.buf = append(b.buf, p...)
			return
		}
		b.buf = append(b.buf, p[:room]...)
		p = p[room:]
	}
	// Full window: overwrite oldest bytes in ring order.
	for _, c := range p {
		b.buf[b.start] = c
		b.start = (b.start + 1) % Limit
	}
}

// Bytes returns a copy of the retained window in write order.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.buf) == 0 {
		return nil
	}
	out := make([]byte, len(b.buf))
	n := copy(out, b.buf[b.start:])
	copy(out[n:], b.buf[:b.start])
	return out
}

// Len reports the number of retained bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// Total reports how many bytes the child wrote in total.
func (b *Buffer) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Truncated reports whether any output was evicted or dropped.
func (b *Buffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Mode returns the capture mode the buffer was created with.
func (b *Buffer) Mode() Mode { return b.mode }
