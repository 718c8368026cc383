package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"ixtza/ajk/pagesim/engine"
	"ixtza/ajk/pagesim/report"
	"ixtza/ajk/pagesim/simulator"
	"ixtza/ajk/pagesim/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <trace-file> <frame-count> <strategy>",
	Short: "Simulate one replacement strategy (FIFO, LRU or OPT).",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := parseFrameCount(args[1])
		if err != nil {
			return err
		}
		policy, err := simulator.ParsePolicy(args[2])
		if err != nil {
			return err
		}

		stream := trace.NewLoader(cfg.PageSize).Load(args[0])
		e := newEngine(frames)

		res, err := e.Measure(cmd.Context(), stream, policy)
		if err != nil {
			return fmt.Errorf("%s simulation: %w", policy, err)
		}

		summary := publish(res)
		if err := report.Render(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
		logResourceUsage()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// parseFrameCount rejects non-numeric and non-positive frame counts.
func parseFrameCount(arg string) (int, error) {
	frames, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("frame count %q: %w", arg, err)
	}
	if frames < 1 {
		return 0, fmt.Errorf("%w: got %d", simulator.ErrInvalidFrameCount, frames)
	}
	return frames, nil
}

func newEngine(frames int) *engine.Engine {
	return engine.MakeBuilder().
		WithFrameCount(frames).
		WithProgressCadence(cfg.ProgressCadence).
		WithProgressObserver(simulator.ProgressFunc(logProgress)).
		Build()
}

func logProgress(done, total int) {
	if total == 0 {
		return
	}
	slog.Info("simulating",
		"percent", fmt.Sprintf("%.1f", float64(done)/float64(total)*100),
		"done", done,
		"total", total,
	)
}

// publish derives the summary of a run and hands it to the recorder.
func publish(res engine.Result) report.Summary {
	summary := report.Derive(res.Policy, res.Frames, res.Stats, res.Elapsed, report.Timing{
		MemoryAccess: cfg.MemoryAccessTime,
		DiskAccess:   cfg.DiskAccessTime,
	})
	if recorder != nil {
		recorder.Record(summary)
	}
	return summary
}
