package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "scopetrace",
	Short: "Scoped enter/exit tracing demo",
	Long:  `Replays call trees through the scope tracer and prints indented enter/exit lines to stderr`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if traceCleanup != nil {
			traceCleanup()
		}
	},
	SilenceUsage: true,
}

var traceCleanup func()

// main registers subcommands and persistent flags, then executes the root
// command. If command execution returns an error, the process exits with
// status code 1.
func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(workersCmd)
	rootCmd.AddCommand(versionCmd)

	addTraceFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addTraceFlags registers the global flags read by setupTracing.
func addTraceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize markers (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress trace output (depth is still tracked)")
	cmd.PersistentFlags().String("counters", "single", "depth counters (single|dual)")
	cmd.PersistentFlags().Int("max-width", 0, "truncate messages to this many columns (0 = default, <0 = unbounded)")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
