// Package trace prints indented enter/exit lines around scopes to show
// call and construction nesting in diagnostic output.
//
// # Usage
//
// Open a scope and release it with defer, so the exit line is written on
// every path out of the function, panics included:
//
//	func load(path string) error {
//		sc := trace.Enter("load(%q)", path)
//		defer sc.Exit()
//
//		sc.Print("opening")
//		...
//		sc.Note("%d bytes", n)
//		return nil
//	}
//
// which prints, one space of indentation per nesting level:
//
//	> load("a.toml")
//	- opening
//	< load("a.toml") // 120 bytes
//
// Finally opens a scope whose Exit runs a closing action instead of
// printing, and Func names the scope after the calling function.
//
// # Counters
//
// Depth is tracked per goroutine. With CountersSingle every scope moves
// one counter. With CountersDual, messages ending in ')' (function-style)
// and everything else (constructor-style labels) indent independently.
//
// # Switch
//
// Enable and Disable turn output on and off. Depth bookkeeping continues
// while disabled, so indentation is right again once output returns.
//
// # Sinks
//
//   - StreamSink: Immediate write to an io.Writer (stderr by default)
//   - RingSink: Last N events in memory, for dumps and tests
//   - MultiSink: Combines multiple sinks
//   - Nop: Discards everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
package trace
