package trace

import (
	"io"
	"sync"
)

// DefaultRingSize is the capacity used when NewRingSink gets a size <= 0.
const DefaultRingSize = 4096

// RingSink keeps the last N events in memory (circular buffer).
type RingSink struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRingSink creates a new RingSink with specified capacity.
func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}

	return &RingSink{
		events:   make([]Event, capacity),
		capacity: capacity,
	}
}

// Emit adds an event to the ring buffer.
func (r *RingSink) Emit(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.head] = *ev
	r.head = (r.head + 1) % r.capacity

	if r.head == 0 {
		r.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (r *RingSink) Snapshot() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		result := make([]Event, r.head)
		copy(result, r.events[:r.head])
		return result
	}

	// Wrapped - return [head:capacity] + [0:head]
	result := make([]Event, r.capacity)
	copy(result, r.events[r.head:])
	copy(result[r.capacity-r.head:], r.events[:r.head])
	return result
}

// Lines returns the stored events rendered as plain output lines.
func (r *RingSink) Lines() []string {
	events := r.Snapshot()
	lines := make([]string, len(events))
	for i := range events {
		line := FormatEvent(&events[i])
		lines[i] = string(line[:len(line)-1])
	}
	return lines
}

// Dump writes all events to the provided writer as plain text.
func (r *RingSink) Dump(w io.Writer) error {
	events := r.Snapshot()

	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i])); err != nil {
			return err
		}
	}

	return nil
}

// Reset drops all stored events.
func (r *RingSink) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.events)
	r.head = 0
	r.full = false
}

// Flush is a no-op for RingSink since everything is in memory.
func (r *RingSink) Flush() error {
	return nil
}

// Close is a no-op for RingSink.
func (r *RingSink) Close() error {
	return nil
}
