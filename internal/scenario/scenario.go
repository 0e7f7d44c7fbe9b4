// Package scenario replays call trees described in TOML through a tracer.
//
// A scenario file looks like:
//
//	[[call]]
//	name = "serve"
//	args = ["8080"]
//	print = ["listening"]
//	note = "clean shutdown"
//
//	  [[call.children]]
//	  name = "Conn"
//
//	  [[call.children]]
//	  finally = "socket closed"
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// MaxDepth bounds how deeply calls may nest in one scenario.
const MaxDepth = 64

// ErrScriptedPanic is wrapped by Play when a call asks to panic.
var ErrScriptedPanic = errors.New("scripted panic")

// Call is one node of the traced tree.
type Call struct {
	Name     string   `toml:"name"`
	Args     []string `toml:"args"`    // when set, the message is name(args...)
	Print    []string `toml:"print"`   // mid-scope lines
	Note     string   `toml:"note"`    // exit annotation
	Finally  string   `toml:"finally"` // closing action printed through the parent scope
	Panic    string   `toml:"panic"`   // panic with this value after the children ran
	Children []Call   `toml:"children"`
}

// Message returns the text the call's scope is opened with.
func (c *Call) Message() string {
	if c.Args == nil {
		return c.Name
	}
	return c.Name + "(" + strings.Join(c.Args, ", ") + ")"
}

// Script is a decoded scenario file.
type Script struct {
	Calls []Call `toml:"call"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Script, error) {
	var s Script
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := check(&s, meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Parse decodes and validates scenario text.
func Parse(data string) (*Script, error) {
	var s Script
	meta, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := check(&s, meta); err != nil {
		return nil, err
	}
	return &s, nil
}

func check(s *Script, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(s.Calls) == 0 {
		return errors.New("scenario has no calls")
	}
	for i := range s.Calls {
		if err := validate(&s.Calls[i], fmt.Sprintf("call[%d]", i), 1, false); err != nil {
			return err
		}
	}
	return nil
}

func validate(c *Call, path string, depth int, nested bool) error {
	if depth > MaxDepth {
		return fmt.Errorf("%s: nesting deeper than %d", path, MaxDepth)
	}
	if c.Finally != "" {
		if !nested {
			return fmt.Errorf("%s: finally needs an enclosing call", path)
		}
		if c.Name != "" || c.Args != nil || len(c.Print) > 0 || c.Note != "" {
			return fmt.Errorf("%s: finally cannot be combined with name, args, print or note", path)
		}
	} else if c.Name == "" {
		return fmt.Errorf("%s: missing name", path)
	}
	for i := range c.Children {
		child := fmt.Sprintf("%s.children[%d]", path, i)
		if err := validate(&c.Children[i], child, depth+1, true); err != nil {
			return err
		}
	}
	return nil
}
