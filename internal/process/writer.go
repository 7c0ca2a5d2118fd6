package process

import (
	"io"
	"sync"
)

// LockedWriter serializes writes to an underlying writer. A child's stdout
// and stderr are copied by separate goroutines, and worker mode runs several
// children at once, so live output always goes through one.
type LockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLockedWriter wraps w. Wrapping a LockedWriter returns it unchanged.
func NewLockedWriter(w io.Writer) *LockedWriter {
	if lw, ok := w.(*LockedWriter); ok {
		return lw
	}
	return &LockedWriter{w: w}
}

// Write writes p to the underlying writer while holding the lock.
func (l *LockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
