package scenario

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"scopetrace/internal/goid"
	"scopetrace/internal/observ"
	"scopetrace/internal/trace"
)

// Play walks the script on the calling goroutine, opening one scope per
// call. A scripted panic unwinds through the open scopes and is returned
// as an error wrapping ErrScriptedPanic.
func Play(ctx context.Context, t *trace.Tracer, s *Script) error {
	return PlayTimed(ctx, t, s, nil)
}

// PlayTimed is Play that also records each top-level call in timer.
// A nil timer records nothing.
func PlayTimed(ctx context.Context, t *trace.Tracer, s *Script, timer *observ.Timer) error {
	for i := range s.Calls {
		c := &s.Calls[i]
		idx := -1
		if timer != nil {
			idx = timer.Begin(c.Message())
		}
		err := playTop(ctx, t, c)
		if timer != nil {
			note := c.Note
			if err != nil {
				note = err.Error()
			}
			timer.End(idx, note)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func playTop(ctx context.Context, t *trace.Tracer, c *Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w in %q: %v", ErrScriptedPanic, c.Message(), r)
		}
	}()
	return play(ctx, t, c)
}

func play(ctx context.Context, t *trace.Tracer, c *Call) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sc := t.Enter("%s", c.Message())
	defer sc.Exit()

	for _, line := range c.Print {
		sc.Print("%s", line)
	}
	for i := range c.Children {
		child := &c.Children[i]
		// Closing actions belong to the end of the enclosing call.
		if child.Finally != "" {
			text := child.Finally
			defer t.Finally(func() { sc.Print("%s", text) }).Exit()
			continue
		}
		if err := play(ctx, t, child); err != nil {
			return err
		}
	}
	if c.Note != "" {
		sc.Note("%s", c.Note)
	}
	if c.Panic != "" {
		panic(c.Panic)
	}
	return nil
}

// PlayConcurrent replays the script on workers goroutines at once. Each
// worker runs inside a "worker[n]" scope, n being its short id for this
// run.
func PlayConcurrent(ctx context.Context, t *trace.Tracer, s *Script, workers int) error {
	if workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	labels := goid.NewLabeler()
	g, gctx := errgroup.WithContext(ctx)
	for n := 0; n < workers; n++ {
		g.Go(func() error {
			sc := t.Enter("worker[%d]", labels.ShortID())
			defer sc.Exit()
			return Play(gctx, t, s)
		})
	}
	return g.Wait()
}
