package trace

// nopSink discards every event.
type nopSink struct{}

// Emit does nothing.
func (nopSink) Emit(*Event) {}

// Flush does nothing.
func (nopSink) Flush() error { return nil }

// Close does nothing.
func (nopSink) Close() error { return nil }

// Nop is the package-level singleton discarding sink.
var Nop Sink = nopSink{}
