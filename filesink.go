package easythreads

import (
	"fmt"
	"os"
	"sync"
)

// FileSink appends lines to a single file under a mutex, so writes
// from concurrent task bodies never interleave. The manager knows
// nothing about it; task callables use it as an opaque sink.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink returns a sink appending to path. The file is created on
// first write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Write appends data plus a trailing newline as one atomic line.
func (s *FileSink) Write(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("easythreads: open %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(data + "\n"); err != nil {
		return fmt.Errorf("easythreads: write %s: %w", s.path, err)
	}
	return nil
}
