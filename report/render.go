package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

const rule = "=================================================="

// Render writes the human-readable report of one run.
func Render(w io.Writer, s Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n========== MEMORY MANAGEMENT STATISTICS ==========\n")
	fmt.Fprintf(&b, "Run: %s\n", s.RunID)
	fmt.Fprintf(&b, "Algorithm: %s\n", s.Policy)
	fmt.Fprintf(&b, "Frame Count: %s\n", humanize.Comma(int64(s.Frames)))
	fmt.Fprintf(&b, "Total Memory Accesses: %s\n", humanize.Comma(int64(s.Stats.TotalAccesses)))
	fmt.Fprintf(&b, "Page Faults: %s\n", humanize.Comma(int64(s.Stats.PageFaults)))
	fmt.Fprintf(&b, "Replacements: %s\n", humanize.Comma(int64(s.Stats.Replacements)))
	fmt.Fprintf(&b, "Disk Writes: %s\n", humanize.Comma(int64(s.Stats.DiskWrites)))

	if s.Stats.TotalAccesses > 0 {
		fmt.Fprintf(&b, "Hit Rate: %.2f%% (%s hits)\n",
			s.HitRate*100, humanize.Comma(int64(s.Stats.Hits())))
		fmt.Fprintf(&b, "Miss Rate: %.2f%% (%s misses)\n",
			s.MissRate*100, humanize.Comma(int64(s.Stats.PageFaults)))
		fmt.Fprintf(&b, "Effective Access Time: %.2f ns\n", s.EffectiveAccessTime)
		fmt.Fprintf(&b, "Running Time: %d ms\n", s.Elapsed.Milliseconds())
	}

	fmt.Fprintf(&b, "%s\n\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderComparison writes one row per run, in the given order.
func RenderComparison(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tFRAMES\tACCESSES\tFAULTS\tREPLACEMENTS\tDISK WRITES\tHIT RATE\tEAT (ns)")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%.2f%%\t%.2f\n",
			s.Policy,
			s.Frames,
			humanize.Comma(int64(s.Stats.TotalAccesses)),
			humanize.Comma(int64(s.Stats.PageFaults)),
			humanize.Comma(int64(s.Stats.Replacements)),
			humanize.Comma(int64(s.Stats.DiskWrites)),
			s.HitRate*100,
			s.EffectiveAccessTime,
		)
	}
	return tw.Flush()
}
