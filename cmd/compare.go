package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ixtza/ajk/pagesim/report"
	"ixtza/ajk/pagesim/simulator"
	"ixtza/ajk/pagesim/trace"
)

var compareCmd = &cobra.Command{
	Use:   "compare <trace-file> <frame-count>",
	Short: "Simulate FIFO, LRU and OPT side by side on one trace.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := parseFrameCount(args[1])
		if err != nil {
			return err
		}

		stream := trace.NewLoader(cfg.PageSize).Load(args[0])
		results, err := newEngine(frames).RunAll(cmd.Context(), stream, simulator.Policies...)
		if err != nil {
			return fmt.Errorf("comparison: %w", err)
		}

		out := cmd.OutOrStdout()
		summaries := make([]report.Summary, 0, len(results))
		for _, res := range results {
			summary := publish(res)
			if err := report.Render(out, summary); err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}

		if err := report.RenderComparison(out, summaries); err != nil {
			return err
		}
		logResourceUsage()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
