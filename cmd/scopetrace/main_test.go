package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"scopetrace/internal/trace"
)

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		input string
		want  colorMode
	}{
		{"", colorAuto},
		{"auto", colorAuto},
		{" ON ", colorOn},
		{"off", colorOff},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.input)
		if err != nil {
			t.Fatalf("readColorMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readColorMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Fatalf("expected error for unknown color mode")
	}
}

func TestShouldColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()

	cases := []struct {
		name string
		mode colorMode
		w    io.Writer
		want bool
	}{
		{"on buffer", colorOn, &bytes.Buffer{}, true},
		{"off buffer", colorOff, &bytes.Buffer{}, false},
		{"auto buffer", colorAuto, &bytes.Buffer{}, false},
		{"auto regular file", colorAuto, f, false},
	}
	for _, tc := range cases {
		if got := shouldColor(tc.mode, tc.w); got != tc.want {
			t.Fatalf("%s: shouldColor = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRunDemo(t *testing.T) {
	ring := trace.NewRingSink(512)
	tr := trace.New(trace.Config{Sink: ring})

	if got := runDemo(tr); got != 3 {
		t.Fatalf("runDemo = %d, want 3", got)
	}

	lines := ring.Lines()
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "> demo[") {
		t.Fatalf("first line = %q, want demo scope", lines)
	}
	// The linker names package main by its import path under go test.
	fibName := runtime.FuncForPC(reflect.ValueOf(fib).Pointer()).Name()
	if i := strings.LastIndexByte(fibName, '/'); i >= 0 {
		fibName = fibName[i+1:]
	}

	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		" > Widget root",
		"  > " + fibName + "(4)",
		"  < " + fibName + "(4) // = 3",
		"   > risky()",
		"    > Buffer",
		"    - about to fail",
		"    < Buffer",
		"   < risky()",
	} {
		if !strings.Contains(joined, want+"\n") {
			t.Errorf("missing line %q in:\n%s", want, joined)
		}
	}

	tail := lines[len(lines)-4:]
	wantTail := []string{
		"- recovered: out of space",
		"- teardown after 3 calls",
		" < Widget root // released",
		"< " + strings.TrimPrefix(lines[0], "> "),
	}
	for i := range wantTail {
		if tail[i] != wantTail[i] {
			t.Errorf("tail line %d = %q, want %q", i, tail[i], wantTail[i])
		}
	}
	if d := tr.Depth(trace.ClassOther); d != 0 {
		t.Fatalf("depth after demo = %d, want 0", d)
	}
}

// newDemoCmd returns a fresh demo command; cobra caches parent flags on a
// command, so each test root needs its own children.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{Use: "demo", RunE: demoCmd.RunE}
}

func newTestRoot(t *testing.T, sub *cobra.Command) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := trace.Default()
	t.Cleanup(func() { trace.SetDefault(prev) })

	root := &cobra.Command{
		Use: "scopetrace",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			t.Cleanup(cleanup)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addTraceFlags(root)
	root.AddCommand(sub)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return root, &stdout, &stderr
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	data := `
[[call]]
name = "open"
args = ["a.txt"]

  [[call.children]]
  name = "Reader"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	sub := &cobra.Command{Use: "run", Args: cobra.ExactArgs(1), RunE: runScenario}
	sub.Flags().Bool("allow-panic", false, "")
	sub.Flags().Bool("timings", false, "")
	root, stdout, stderr := newTestRoot(t, sub)
	root.SetArgs([]string{"--color=off", "--counters=dual", "run", "--timings", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := "> open(a.txt)\n> Reader\n< Reader\n< open(a.txt)\n"
	if stderr.String() != want {
		t.Fatalf("stderr = %q, want %q", stderr.String(), want)
	}
	if !strings.Contains(stdout.String(), "open(a.txt)") || !strings.Contains(stdout.String(), "total") {
		t.Fatalf("timings summary missing from stdout: %q", stdout.String())
	}
}

func TestQuietFlagSilences(t *testing.T) {
	root, stdout, stderr := newTestRoot(t, newDemoCmd())
	root.SetArgs([]string{"--quiet", "demo"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("quiet run wrote trace output: %q", stderr.String())
	}
	if stdout.String() != "checksum 3\n" {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestInvalidCountersFlag(t *testing.T) {
	root, _, _ := newTestRoot(t, newDemoCmd())
	root.SetArgs([]string{"--counters=triple", "demo"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error for invalid counters")
	}
}
