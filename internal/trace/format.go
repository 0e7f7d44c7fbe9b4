package trace

import (
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// NoteSeparator sits between an exit message and its annotation.
const NoteSeparator = " // "

// DefaultMaxWidth bounds formatted messages, in display columns.
const DefaultMaxWidth = 999

// palette colours the marker of each kind. A nil palette means plain text.
type palette map[Kind]*color.Color

func newPalette() palette {
	p := palette{
		KindEnter: color.New(color.FgGreen, color.Bold),
		KindExit:  color.New(color.FgBlue, color.Bold),
		KindPoint: color.New(color.FgYellow),
	}
	// Forced on: the caller already decided the output wants colour.
	for _, c := range p {
		c.EnableColor()
	}
	return p
}

// indentWidth turns a depth into a number of spaces.
// Negative depths only come from unbalanced scopes and get no indentation.
func indentWidth(depth int) int {
	w, err := safecast.Conv[uint](depth)
	if err != nil {
		return 0
	}
	return int(w)
}

// FormatEvent renders ev as one plain output line, newline included.
// Format: <indent><marker> <message>[ // <note>]
func FormatEvent(ev *Event) []byte {
	return formatEvent(ev, nil)
}

func formatEvent(ev *Event, p palette) []byte {
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", indentWidth(ev.Depth)))

	marker := string(ev.Kind.Marker())
	if c, ok := p[ev.Kind]; ok {
		marker = c.Sprint(marker)
	}
	sb.WriteString(marker)
	sb.WriteByte(' ')
	sb.WriteString(ev.Message)

	if ev.Kind == KindExit && ev.Note != "" {
		sb.WriteString(NoteSeparator)
		sb.WriteString(ev.Note)
	}

	sb.WriteByte('\n')
	return []byte(sb.String())
}

// truncate bounds s to width display columns. A width <= 0 disables the bound.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
