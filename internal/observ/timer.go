// Package observ measures how long top-level traced calls take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Entry records the duration and outcome of one timed call.
type Entry struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of a sequence of calls.
// It is not safe for concurrent use.
type Timer struct {
	entries []Entry
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{entries: make([]Entry, 0, 8)} }

// Begin starts timing a call and returns its index.
func (t *Timer) Begin(name string) int {
	t.entries = append(t.entries, Entry{Name: name, Start: time.Now()})
	return len(t.entries) - 1
}

// End finishes a call by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.entries) {
		return
	}
	e := &t.entries[idx]
	e.Dur = time.Since(e.Start)
	e.Note = note
}

// Entries returns a copy of the recorded entries.
func (t *Timer) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Total returns the sum of all recorded durations.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, e := range t.entries {
		total += e.Dur
	}
	return total
}

// Summary returns a human-readable table of the recorded calls.
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, e := range t.entries {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", e.Name, durationToMillis(e.Dur))
		if e.Note != "" {
			sb.WriteString("  // " + e.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", durationToMillis(t.Total()))
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
