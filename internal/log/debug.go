// Package log provides debug logging for the hook. Messages are
// buffered in memory until a destination is decided: configuration is
// read after logging may already have happened, so early messages are
// kept and flushed once SetFile is called.
package log

import (
	"log"
	"os"
	"sync"
)

type debugSink struct {
	mu      sync.Mutex
	file    *os.File
	pending []byte
	discard bool
}

var (
	sink      = &debugSink{}
	stdLogger = log.New(sink, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer. Output goes to the file when one is
// open, otherwise into the pending buffer.
func (s *debugSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}
	if s.file != nil {
		n, err := s.file.Write(p)
		_ = s.file.Sync()
		return n, err
	}
	s.pending = append(s.pending, append([]byte(nil), p...)...)
	return len(p), nil
}

// SetFile routes debug output to path, flushing anything buffered so
// far. An empty path drops the buffer and discards future messages.
func SetFile(path string) error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file != nil {
		_ = sink.file.Close()
		sink.file = nil
	}

	if path == "" {
		sink.discard = true
		sink.pending = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		sink.discard = true
		sink.pending = nil
		return err
	}

	sink.file = f
	sink.discard = false
	if len(sink.pending) > 0 {
		_, _ = f.Write(sink.pending)
		_ = f.Sync()
		sink.pending = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Close closes the debug log file if one is open.
func Close() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file == nil {
		return nil
	}
	err := sink.file.Close()
	sink.file = nil
	return err
}
