package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scopetrace/internal/trace"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// shouldColor resolves mode against w, the writer the sink will use. In auto
// mode only a terminal file gets colour.
func shouldColor(mode colorMode, w io.Writer) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	colorFlag, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}

	quiet, err := root.PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	countersStr, err := root.PersistentFlags().GetString("counters")
	if err != nil {
		return nil, fmt.Errorf("failed to get counters flag: %w", err)
	}

	maxWidth, err := root.PersistentFlags().GetInt("max-width")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-width flag: %w", err)
	}

	mode, err := readColorMode(colorFlag)
	if err != nil {
		return nil, err
	}

	counters, err := trace.ParseCounters(countersStr)
	if err != nil {
		return nil, fmt.Errorf("invalid counters: %w", err)
	}

	out := cmd.ErrOrStderr()
	tracer := trace.New(trace.Config{
		Sink:     trace.NewStreamSink(out, shouldColor(mode, out)),
		Counters: counters,
		MaxWidth: maxWidth,
		Disabled: quiet,
	})
	trace.SetDefault(tracer)

	// Attach tracer to context
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}

	return cleanup, nil
}
