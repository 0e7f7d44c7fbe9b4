package trace

import (
	"io"
	"os"
	"sync"
)

// StreamSink writes each event to an io.Writer as soon as it arrives.
type StreamSink struct {
	mu     sync.Mutex
	w      io.Writer
	colors palette
}

// NewStreamSink creates a StreamSink. A nil writer means os.Stderr.
// When colored is set the markers are wrapped in ANSI colour codes.
func NewStreamSink(w io.Writer, colored bool) *StreamSink {
	if w == nil {
		w = os.Stderr
	}
	s := &StreamSink{w: w}
	if colored {
		s.colors = newPalette()
	}
	return s
}

// Emit writes an event to the output.
func (s *StreamSink) Emit(ev *Event) {
	data := formatEvent(ev, s.colors)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The diagnostic stream is treated as always succeeding.
	_, _ = s.w.Write(data) //nolint:errcheck
}

// Flush calls the writer's Flush method when it has one.
func (s *StreamSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flusher, ok := s.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes the writer. Standard streams are never closed.
func (s *StreamSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.w == os.Stderr || s.w == os.Stdout {
		return nil
	}
	if closer, ok := s.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
