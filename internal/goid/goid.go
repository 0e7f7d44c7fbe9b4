// Package goid identifies goroutines and maps their runtime ids to small
// sequential numbers that read well in trace output.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Current extracts the running goroutine's id using runtime.Stack.
// It returns 0 if the stack header cannot be parsed.
func Current() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	// Stack format: "goroutine 123 [running]:\n..."
	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}

	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}

	gid, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Labeler hands out short ids in the order goroutines first ask for one.
// The zero value is ready to use.
type Labeler struct {
	mu  sync.Mutex
	ids map[uint64]int
}

// NewLabeler creates an empty Labeler.
func NewLabeler() *Labeler {
	return &Labeler{ids: make(map[uint64]int)}
}

// ShortID returns the calling goroutine's short id, assigning the next
// free one on first call.
func (l *Labeler) ShortID() int {
	return l.label(Current())
}

// label does the check-then-insert under the lock.
func (l *Labeler) label(gid uint64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ids == nil {
		l.ids = make(map[uint64]int)
	}
	id, ok := l.ids[gid]
	if !ok {
		id = len(l.ids)
		l.ids[gid] = id
	}
	return id
}

// Lookup reports the short id already assigned to gid, if any.
func (l *Labeler) Lookup(gid uint64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.ids[gid]
	return id, ok
}

// Len returns how many goroutines have been labeled.
func (l *Labeler) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}

var global Labeler

// ShortID returns the calling goroutine's id from the process-wide labeler.
func ShortID() int {
	return global.ShortID()
}
