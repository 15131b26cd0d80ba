package probe

// Sink receives diagnostics from probes and track sources. None of it
// affects a verdict.
type Sink interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// Dump shows the first limit bytes of data; limit <= 0 means all of it.
	Dump(data []byte, limit int)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Debugf(string, ...any) {}
func (NopSink) Warnf(string, ...any) {}
func (NopSink) Errorf(string, ...any) {}
func (NopSink) Dump([]byte, int) {}
