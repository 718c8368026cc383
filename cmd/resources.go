package cmd

import (
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/process"
)

// logResourceUsage logs the resident memory of the process. Failures to
// read it are only logged.
func logResourceUsage() {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		slog.Debug("process info unavailable", "err", err)
		return
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		slog.Debug("memory info unavailable", "err", err)
		return
	}

	slog.Info("resource usage", "rss", humanize.Bytes(mem.RSS))
}
