// Package trace turns address trace files into reference streams and
// generates synthetic traces.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"ixtza/ajk/pagesim/simulator"
)

// DefaultPageSize is the page size in bytes.
const DefaultPageSize = 4096

// Loader parses trace lines of the form "<hex-address> <R|W>".
//
// Loading is lenient: malformed lines are skipped and a missing file gives
// an empty stream. Problems are logged, never returned.
type Loader struct {
	pageSize uint64
}

// NewLoader creates a loader. A page size of zero selects DefaultPageSize.
func NewLoader(pageSize uint64) *Loader {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{pageSize: pageSize}
}

// PageOf maps an address to its page identifier.
func PageOf(address, pageSize uint64) simulator.Page {
	return simulator.Page(fmt.Sprintf("%08x", address/pageSize))
}

// Load reads the trace at path.
func (l *Loader) Load(path string) simulator.Stream {
	rc, err := Open(path)
	if err != nil {
		slog.Warn("trace file not readable, using an empty stream",
			"path", path, "err", err)
		return simulator.Stream{}
	}
	defer rc.Close()

	stream := l.Parse(rc)
	slog.Debug("trace loaded", "path", path, "references", len(stream))
	return stream
}

// Parse reads references from r until EOF or the first read error.
func (l *Loader) Parse(r io.Reader) simulator.Stream {
	var (
		stream  = simulator.Stream{}
		scanner = bufio.NewScanner(r)
		lineNo  int
		unknown int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ref, known, ok := l.parseLine(lineNo, line)
		if !ok {
			continue
		}
		if !known {
			unknown++
		}
		stream = append(stream, ref)
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("trace read stopped early", "line", lineNo, "err", err)
	}
	if unknown > 0 {
		slog.Warn("access kinds other than R or W were read as R", "count", unknown)
	}

	return stream
}

// parseLine reports whether the line parsed and whether its access kind was
// one of R or W.
func (l *Loader) parseLine(lineNo int, line string) (ref simulator.Reference, known, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		slog.Warn("invalid line format", "line", lineNo, "text", line)
		return ref, false, false
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(fields[0], "0x"), "0X")
	address, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		slog.Warn("invalid address", "line", lineNo, "text", line, "err", err)
		return ref, false, false
	}

	ref = simulator.Reference{
		Page: PageOf(address, l.pageSize),
		Kind: simulator.KindOf(fields[1]),
	}
	known = fields[1][0] == 'R' || fields[1][0] == 'W'
	return ref, known, true
}
