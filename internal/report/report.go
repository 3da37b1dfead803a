// Package report serializes per-item error output from a parallel copy.
// Failures are printed at the point of detection so the user sees them as
// they happen during a long job; only a boolean travels back up the tree.
package report

import (
	"fmt"
	"io"
	"sync"
)

// Sink writes one line per error. Writes are serialized so concurrently
// failing branches cannot interleave mid-line.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Error prints err on its own line. Safe for concurrent use. Joined errors
// print one line per wrapped error.
func (s *Sink) Error(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, err)
}

// Errorf formats and prints a single error line.
func (s *Sink) Errorf(format string, args ...any) {
	s.Error(fmt.Errorf(format, args...))
}
