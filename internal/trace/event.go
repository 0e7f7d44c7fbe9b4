package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindEnter marks the start of a scope.
	KindEnter Kind = iota + 1
	// KindExit marks the end of a scope.
	KindExit
	// KindPoint is a mid-scope line written by Scope.Print.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindExit:
		return "exit"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Marker returns the leading character written before the message.
func (k Kind) Marker() byte {
	switch k {
	case KindEnter:
		return '>'
	case KindExit:
		return '<'
	case KindPoint:
		return '-'
	default:
		return '?'
	}
}

// Class selects which depth counter a scope moves in dual-counter mode.
type Class uint8

const (
	ClassOther Class = iota // constructor-style or free-form labels
	ClassFunc               // call traces, message ends with ')'
)

// String returns the string representation of Class.
func (c Class) String() string {
	if c == ClassFunc {
		return "func"
	}
	return "other"
}

// Classify reports ClassFunc for messages whose last byte is ')'.
// The empty message is ClassOther.
func Classify(msg string) Class {
	if msg != "" && msg[len(msg)-1] == ')' {
		return ClassFunc
	}
	return ClassOther
}

// Event is a single line of trace output before formatting.
type Event struct {
	Time    time.Time // wall-clock timestamp
	Kind    Kind      // enter, exit or point
	Depth   int       // depth claimed by the scope
	GID     uint64    // goroutine that owns the scope
	Message string    // formatted message
	Note    string    // exit annotation, without the separator
}
