package trace

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"scopetrace/internal/goid"
)

// Sink receives formatted-ready events from a Tracer.
type Sink interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// Counters determines how nesting depth is tracked.
type Counters uint8

const (
	// CountersSingle keeps one depth counter per goroutine.
	CountersSingle Counters = iota + 1
	// CountersDual keeps separate counters per goroutine for
	// function-style and other messages.
	CountersDual
)

// String returns the string representation of Counters.
func (c Counters) String() string {
	switch c {
	case CountersSingle:
		return "single"
	case CountersDual:
		return "dual"
	default:
		return "unknown"
	}
}

// ParseCounters converts a string to Counters.
func ParseCounters(s string) (Counters, error) {
	switch strings.ToLower(s) {
	case "single", "":
		return CountersSingle, nil
	case "dual":
		return CountersDual, nil
	default:
		return CountersSingle, fmt.Errorf("invalid counters mode: %q (expected: single|dual)", s)
	}
}

// Config holds tracer configuration.
type Config struct {
	Sink     Sink     // nil writes plain lines to os.Stderr
	Counters Counters // zero means CountersSingle
	MaxWidth int      // message bound in display columns; 0 means DefaultMaxWidth, <0 unbounded
	Disabled bool     // start with output switched off
}

// depths holds one goroutine's counters, indexed by Class.
type depths [2]int

// Tracer opens scopes and writes their enter and exit lines.
// It is safe for concurrent use; depth is tracked per goroutine.
type Tracer struct {
	sink     Sink
	counters Counters
	maxWidth int
	enabled  atomic.Bool

	mu     sync.Mutex
	depths map[uint64]*depths
}

// New creates a Tracer based on Config. Output starts enabled unless
// cfg.Disabled is set.
func New(cfg Config) *Tracer {
	if cfg.Sink == nil {
		cfg.Sink = NewStreamSink(nil, false)
	}
	if cfg.Counters == 0 {
		cfg.Counters = CountersSingle
	}
	if cfg.MaxWidth == 0 {
		cfg.MaxWidth = DefaultMaxWidth
	}

	t := &Tracer{
		sink:     cfg.Sink,
		counters: cfg.Counters,
		maxWidth: cfg.MaxWidth,
		depths:   make(map[uint64]*depths),
	}
	t.enabled.Store(!cfg.Disabled)
	return t
}

// Enable switches output on. Depth counters are left untouched.
func (t *Tracer) Enable() { t.enabled.Store(true) }

// Disable switches output off. Scopes still claim and release depth so the
// indentation stays correct when output comes back.
func (t *Tracer) Disable() { t.enabled.Store(false) }

// Enabled reports whether the tracer writes output.
func (t *Tracer) Enabled() bool { return t.enabled.Load() }

// Counters returns the configured counter mode.
func (t *Tracer) Counters() Counters { return t.counters }

// Sink returns the sink events are written to.
func (t *Tracer) Sink() Sink { return t.sink }

// Flush flushes the underlying sink.
func (t *Tracer) Flush() error { return t.sink.Flush() }

// Close closes the underlying sink.
func (t *Tracer) Close() error { return t.sink.Close() }

// Depth returns the calling goroutine's current depth on the counter used
// by class. In single-counter mode every class reports the same counter.
func (t *Tracer) Depth(class Class) int {
	return t.depthOf(goid.Current(), class)
}

func (t *Tracer) depthOf(gid uint64, class Class) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.depths[gid]
	if d == nil {
		return 0
	}
	return d[t.slot(class)]
}

// slot maps a class onto the counter it moves.
func (t *Tracer) slot(class Class) Class {
	if t.counters == CountersDual {
		return class
	}
	return ClassOther
}

// claim returns the current depth for class on gid and increments it.
func (t *Tracer) claim(gid uint64, class Class) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	d := t.depths[gid]
	if d == nil {
		d = new(depths)
		t.depths[gid] = d
	}
	slot := t.slot(class)
	v := d[slot]
	d[slot]++
	return v
}

// release decrements the counter claim incremented. Goroutines whose
// counters are all back at zero are forgotten.
func (t *Tracer) release(gid uint64, class Class) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d := t.depths[gid]
	if d == nil {
		d = new(depths)
		t.depths[gid] = d
	}
	d[t.slot(class)]--
	if *d == (depths{}) {
		delete(t.depths, gid)
	}
}

// active returns how many goroutines currently hold depth state.
func (t *Tracer) active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.depths)
}

var defaultTracer atomic.Pointer[Tracer]

func init() {
	defaultTracer.Store(New(Config{}))
}

// Default returns the process-wide tracer. It writes to os.Stderr and
// starts enabled.
func Default() *Tracer {
	return defaultTracer.Load()
}

// SetDefault replaces the process-wide tracer and returns the previous one.
// A nil t is ignored.
func SetDefault(t *Tracer) *Tracer {
	if t == nil {
		return Default()
	}
	return defaultTracer.Swap(t)
}

// Enable switches output of the default tracer on.
func Enable() { Default().Enable() }

// Disable switches output of the default tracer off.
func Disable() { Default().Disable() }

// Enabled reports whether the default tracer writes output.
func Enabled() bool { return Default().Enabled() }
