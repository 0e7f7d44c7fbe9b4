package main

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"scopetrace/internal/observ"
	"scopetrace/internal/scenario"
	"scopetrace/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <scenario.toml>",
	Short: "Replay a scenario file through the tracer",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

var workersCmd = &cobra.Command{
	Use:   "workers [flags] <scenario.toml>",
	Short: "Replay a scenario on several goroutines at once",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkers,
}

func init() {
	runCmd.Flags().Bool("allow-panic", false, "treat a scripted panic as success")
	runCmd.Flags().Bool("timings", false, "print how long each top-level call took")
	workersCmd.Flags().Uint("workers", 4, "number of goroutines replaying the scenario")
}

func runScenario(cmd *cobra.Command, args []string) error {
	allowPanic, err := cmd.Flags().GetBool("allow-panic")
	if err != nil {
		return fmt.Errorf("failed to get allow-panic flag: %w", err)
	}

	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	script, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(cmd.OutOrStdout(), timer.Summary()) }()
	}

	err = scenario.PlayTimed(cmd.Context(), trace.FromContext(cmd.Context()), script, timer)
	if allowPanic && errors.Is(err, scenario.ErrScriptedPanic) {
		fmt.Fprintf(cmd.OutOrStdout(), "recovered: %v\n", err)
		return nil
	}
	return err
}

func runWorkers(cmd *cobra.Command, args []string) error {
	n, err := cmd.Flags().GetUint("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers flag: %w", err)
	}
	workers, err := safecast.Conv[int](n)
	if err != nil {
		return fmt.Errorf("invalid workers value: %w", err)
	}

	script, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	return scenario.PlayConcurrent(cmd.Context(), trace.FromContext(cmd.Context()), script, workers)
}
