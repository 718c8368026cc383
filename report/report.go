// Package report derives hit and miss rates and the effective access time
// from the raw counters of a run, renders them as text and optionally
// records them.
package report

import (
	"time"

	"github.com/rs/xid"

	"ixtza/ajk/pagesim/simulator"
)

const (
	// DefaultMemoryAccessTime is the cost of a resident access.
	DefaultMemoryAccessTime = 100 * time.Nanosecond
	// DefaultDiskAccessTime is the cost of servicing a fault from disk.
	DefaultDiskAccessTime = 10 * time.Millisecond
)

// Timing holds the access costs used for the effective access time.
type Timing struct {
	MemoryAccess time.Duration
	DiskAccess   time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		MemoryAccess: DefaultMemoryAccessTime,
		DiskAccess:   DefaultDiskAccessTime,
	}
}

// Summary is the report of one run.
type Summary struct {
	RunID   string
	Policy  simulator.Policy
	Frames  int
	Stats   simulator.Statistics
	Elapsed time.Duration

	HitRate  float64
	MissRate float64
	// EffectiveAccessTime is in nanoseconds.
	EffectiveAccessTime float64
}

// Derive computes the rates of a run. A run with no accesses has all rates
// and the effective access time at zero.
func Derive(
	policy simulator.Policy,
	frames int,
	stats simulator.Statistics,
	elapsed time.Duration,
	timing Timing,
) Summary {
	s := Summary{
		RunID:   xid.New().String(),
		Policy:  policy,
		Frames:  frames,
		Stats:   stats,
		Elapsed: elapsed,
	}
	if stats.TotalAccesses == 0 {
		return s
	}

	s.MissRate = float64(stats.PageFaults) / float64(stats.TotalAccesses)
	s.HitRate = 1 - s.MissRate
	s.EffectiveAccessTime = float64(timing.MemoryAccess.Nanoseconds()) +
		s.MissRate*float64(timing.DiskAccess.Nanoseconds())
	return s
}
