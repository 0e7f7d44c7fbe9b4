package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scopetrace/internal/goid"
	"scopetrace/internal/trace"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Trace a small built-in program",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := trace.FromContext(cmd.Context())
		total := runDemo(t)
		fmt.Fprintf(cmd.OutOrStdout(), "checksum %d\n", total)
		return nil
	},
}

type widget struct {
	name  string
	scope *trace.Scope
}

// newWidget traces a constructor-style lifetime: the scope stays open until
// close is called.
func newWidget(t *trace.Tracer, name string) *widget {
	return &widget{name: name, scope: t.Enter("Widget %s", name)}
}

func (w *widget) close() {
	w.scope.Note("released")
	w.scope.Exit()
}

func fib(t *trace.Tracer, n int) int {
	sc := t.Func(n)
	defer sc.Exit()

	if n < 2 {
		return n
	}
	v := fib(t, n-1) + fib(t, n-2)
	sc.Note("= %d", v)
	return v
}

func risky(t *trace.Tracer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	defer t.Enter("risky()").Exit()
	sc := t.Enter("Buffer")
	defer sc.Exit()
	sc.Print("about to fail")
	panic("out of space")
}

func runDemo(t *trace.Tracer) int {
	top := t.Enter("demo[%d]", goid.ShortID())
	defer top.Exit()

	w := newWidget(t, "root")
	defer w.close()

	total := fib(t, 4)
	defer t.Finally(func() { top.Print("teardown after %d calls", total) }).Exit()

	if err := risky(t); err != nil {
		top.Print("%v", err)
	}
	return total
}
