package main

import (
	"fmt"
	"io"
	"sync"

	"floppyprobe/hexdump"
)

// stderrSink prints probe diagnostics as LEVEL: message lines. Debug lines
// and dumps only appear with --debug.
type stderrSink struct {
	mu    sync.Mutex
	w     io.Writer
	debug bool
}

func newStderrSink(w io.Writer, debug bool) *stderrSink {
	return &stderrSink{w: w, debug: debug}
}

func (s *stderrSink) line(level, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s: %s\n", level, fmt.Sprintf(format, args...))
}

func (s *stderrSink) Debugf(format string, args ...any) {
	if s.debug {
		s.line("DEBUG", format, args...)
	}
}

func (s *stderrSink) Warnf(format string, args ...any) { s.line("WARNING", format, args...) }

func (s *stderrSink) Errorf(format string, args ...any) { s.line("ERROR", format, args...) }

func (s *stderrSink) Dump(data []byte, limit int) {
	if !s.debug {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = hexdump.Dump(s.w, data, limit)
}
