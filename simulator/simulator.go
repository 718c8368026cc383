// Package simulator holds the types shared by every replacement algorithm:
// the reference stream, the per-run statistics and the simulator contracts.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFrameCount is returned when a run is requested with fewer
	// than one frame.
	ErrInvalidFrameCount = errors.New("frame count must be at least 1")

	// ErrUnknownPolicy is returned for a policy name other than FIFO, LRU
	// or OPT.
	ErrUnknownPolicy = errors.New("unknown replacement policy")

	// ErrResidentOverflow signals a logic defect: the resident set grew
	// past the frame count after an admission.
	ErrResidentOverflow = errors.New("resident set exceeded frame count")
)

type (
	// Kind is the access kind of a reference.
	Kind uint8

	// Page is the 8-digit lowercase hexadecimal page number.
	Page string

	// Reference is a single trace line after page mapping.
	Reference struct {
		Page Page
		Kind Kind
	}

	// Stream is the ordered reference sequence. The index of a reference
	// is its simulated time. A Stream is never mutated after ingestion.
	Stream []Reference
)

const (
	Read Kind = iota
	Write
)

// KindOf maps an access-kind token to a Kind. Only a token starting with
// the exact byte 'W' is a write; anything else reads.
func KindOf(token string) Kind {
	if len(token) > 0 && token[0] == 'W' {
		return Write
	}
	return Read
}

func (k Kind) String() string {
	if k == Write {
		return "W"
	}
	return "R"
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %s", r.Page, r.Kind)
}

// Pages returns the number of distinct pages in the stream.
func (s Stream) Pages() int {
	seen := make(map[Page]struct{})
	for _, ref := range s {
		seen[ref.Page] = struct{}{}
	}
	return len(seen)
}

// Statistics are the raw counters of one run.
type Statistics struct {
	PageFaults    int
	Replacements  int
	DiskWrites    int
	TotalAccesses int
}

// Hits is the number of accesses that found their page resident.
func (s Statistics) Hits() int {
	return s.TotalAccesses - s.PageFaults
}

// Policy selects a replacement strategy.
type Policy string

const (
	FIFO Policy = "FIFO"
	LRU  Policy = "LRU"
	OPT  Policy = "OPT"
)

// Policies lists every supported policy in report order.
var Policies = []Policy{FIFO, LRU, OPT}

// ParsePolicy accepts a policy name in any letter case.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToUpper(strings.TrimSpace(name)))
	switch p {
	case FIFO, LRU, OPT:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// CancelCheckInterval is how many references a replay loop processes
// between context checks.
const CancelCheckInterval = 4096

// Simulator is an incremental replacement algorithm that consumes one
// reference at a time.
type Simulator interface {
	Get(ref Reference) error
	Stats() Statistics
}

// BatchSimulator replays a whole stream at once. OPT needs the future of
// the stream and so can only be driven this way.
type BatchSimulator interface {
	Run(ctx context.Context, stream Stream) (Statistics, error)
}

// CheckResident returns ErrResidentOverflow when size exceeds frames.
func CheckResident(size, frames int) error {
	if size > frames {
		return fmt.Errorf("%w: %d resident pages, %d frames",
			ErrResidentOverflow, size, frames)
	}
	return nil
}
