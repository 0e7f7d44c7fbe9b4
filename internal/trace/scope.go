package trace

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"scopetrace/internal/goid"
)

// Scope is one traced region. Open it with Enter, Func or Finally and
// release it with a deferred Exit:
//
//	defer t.Enter("load(%q)", path).Exit()
//
// A Scope belongs to the frame that opened it and must not be shared.
type Scope struct {
	tracer  *Tracer
	msg     string
	note    string
	finally func()
	depth   int
	class   Class
	gid     uint64
	started time.Time
	done    bool
}

// Enter formats a message, claims a depth and, when enabled, writes the
// enter line. Messages wider than the tracer's bound are truncated.
func (t *Tracer) Enter(format string, args ...any) *Scope {
	if t == nil {
		return &Scope{done: true}
	}
	return t.open(truncate(fmt.Sprintf(format, args...), t.maxWidth), nil)
}

// Finally claims a depth like Enter but prints nothing. Exit runs fn
// instead of writing an exit line, whether or not output is enabled.
func (t *Tracer) Finally(fn func()) *Scope {
	if t == nil {
		return &Scope{done: true}
	}
	if fn == nil {
		fn = func() {}
	}
	return t.open("", fn)
}

// Func opens a scope named after the calling function, with args
// rendered inside the parentheses: "pkg.Name(a, b)".
func (t *Tracer) Func(args ...any) *Scope {
	if t == nil {
		return &Scope{done: true}
	}
	return t.open(truncate(callerMessage(2, args), t.maxWidth), nil)
}

func (t *Tracer) open(msg string, fn func()) *Scope {
	gid := goid.Current()
	class := Classify(msg)
	s := &Scope{
		tracer:  t,
		msg:     msg,
		finally: fn,
		depth:   t.claim(gid, class),
		class:   class,
		gid:     gid,
		started: time.Now(),
	}
	if fn == nil && t.Enabled() {
		s.emit(KindEnter, msg, "")
	}
	return s
}

// Note records an annotation written after the exit message, separated by
// " // ". A later call replaces an earlier one. The text is only formatted
// while output is enabled; otherwise any previous note is dropped.
func (s *Scope) Note(format string, args ...any) {
	if s == nil || s.tracer == nil || s.done {
		return
	}
	if !s.tracer.Enabled() {
		s.note = ""
		return
	}
	s.note = truncate(fmt.Sprintf(format, args...), s.tracer.maxWidth)
}

// Print writes a mid-scope line at the scope's depth when enabled.
func (s *Scope) Print(format string, args ...any) {
	if s == nil || s.tracer == nil || s.done || !s.tracer.Enabled() {
		return
	}
	s.emit(KindPoint, truncate(fmt.Sprintf(format, args...), s.tracer.maxWidth), "")
}

// Exit closes the scope and returns the time spent inside it. It runs the
// closing action if one was given, otherwise writes the exit line when
// enabled, then releases the claimed depth. Only the first call has any
// effect.
func (s *Scope) Exit() time.Duration {
	if s == nil || s.tracer == nil || s.done {
		return 0
	}
	s.done = true
	defer s.tracer.release(s.gid, s.class)

	dur := time.Since(s.started)
	if s.finally != nil {
		s.finally()
	} else if s.tracer.Enabled() {
		s.emit(KindExit, s.msg, s.note)
	}
	return dur
}

func (s *Scope) emit(kind Kind, msg, note string) {
	s.tracer.sink.Emit(&Event{
		Time:    time.Now(),
		Kind:    kind,
		Depth:   s.depth,
		GID:     s.gid,
		Message: msg,
		Note:    note,
	})
}

// Message returns the formatted enter message.
func (s *Scope) Message() string {
	if s == nil {
		return ""
	}
	return s.msg
}

// Depth returns the depth claimed when the scope was opened.
func (s *Scope) Depth() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// Class returns the counter class the scope was assigned.
func (s *Scope) Class() Class {
	if s == nil {
		return ClassOther
	}
	return s.class
}

// callerMessage renders "pkg.Func(args)" for the frame skip levels above
// its own caller.
func callerMessage(skip int, args []any) string {
	name := "???"
	if pc, _, _, ok := runtime.Caller(skip); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			name = fn.Name()
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
		}
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// Enter opens a scope on the default tracer.
func Enter(format string, args ...any) *Scope {
	return Default().Enter(format, args...)
}

// Finally opens a closing-action scope on the default tracer.
func Finally(fn func()) *Scope {
	return Default().Finally(fn)
}

// Func opens a scope named after the calling function on the default tracer.
func Func(args ...any) *Scope {
	t := Default()
	return t.open(truncate(callerMessage(2, args), t.maxWidth), nil)
}
