package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"

	"ixtza/ajk/pagesim/simulator"
)

// ErrEmptyAddressPool is returned when a generator has no addresses to
// draw references from.
var ErrEmptyAddressPool = errors.New("generator needs at least one distinct address")

// ErrNegativeReferences is returned when a generator is asked for a
// negative number of references.
var ErrNegativeReferences = errors.New("generator needs a non-negative reference count")

// Record is one generated trace line before page mapping.
type Record struct {
	Address uint32
	Kind    simulator.Kind
}

func (r Record) String() string {
	return fmt.Sprintf("%08x %s", r.Address, r.Kind)
}

// Generator produces synthetic traces with strong locality: references pick
// from a pool of random addresses with a normal distribution centered on the
// middle of the pool.
type Generator struct {
	distinct   int
	references int
	stdDev     float64
	writeRatio float64
	rng        *rand.Rand
}

// GeneratorBuilder can build generators.
type GeneratorBuilder struct {
	distinct   int
	references int
	stdDev     float64
	writeRatio float64
	seed       uint64
}

// MakeGeneratorBuilder creates a builder with a standard deviation of 2
// addresses and one write in ten references.
func MakeGeneratorBuilder() GeneratorBuilder {
	return GeneratorBuilder{
		distinct:   10,
		references: 100,
		stdDev:     2.0,
		writeRatio: 0.1,
		seed:       1,
	}
}

// WithDistinct sets the size of the address pool.
func (b GeneratorBuilder) WithDistinct(distinct int) GeneratorBuilder {
	b.distinct = distinct
	return b
}

// WithReferences sets the number of trace lines.
func (b GeneratorBuilder) WithReferences(references int) GeneratorBuilder {
	b.references = references
	return b
}

// WithStdDev sets the spread, in pool positions, of the address choice.
func (b GeneratorBuilder) WithStdDev(stdDev float64) GeneratorBuilder {
	b.stdDev = stdDev
	return b
}

// WithWriteRatio sets the probability that a reference is a write.
func (b GeneratorBuilder) WithWriteRatio(ratio float64) GeneratorBuilder {
	b.writeRatio = ratio
	return b
}

// WithSeed sets the random seed.
func (b GeneratorBuilder) WithSeed(seed uint64) GeneratorBuilder {
	b.seed = seed
	return b
}

// Build builds a generator.
func (b GeneratorBuilder) Build() *Generator {
	return &Generator{
		distinct:   b.distinct,
		references: b.references,
		stdDev:     b.stdDev,
		writeRatio: b.writeRatio,
		rng:        rand.New(rand.NewPCG(b.seed, b.seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) validate() error {
	if g.distinct < 1 {
		return ErrEmptyAddressPool
	}
	if g.references < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeReferences, g.references)
	}
	return nil
}

// Records draws the trace.
func (g *Generator) Records() ([]Record, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	pool := make([]uint32, g.distinct)
	for i := range pool {
		pool[i] = g.rng.Uint32()
	}

	mean := float64(g.distinct / 2)
	records := make([]Record, 0, g.references)
	for range g.references {
		index := -1
		for index < 0 || index >= g.distinct {
			index = int(g.rng.NormFloat64()*g.stdDev + mean)
		}

		kind := simulator.Read
		if g.rng.Float64() < g.writeRatio {
			kind = simulator.Write
		}
		records = append(records, Record{Address: pool[index], Kind: kind})
	}

	return records, nil
}

// Generate writes the trace to w, one record per line.
func (g *Generator) Generate(w io.Writer) ([]Record, error) {
	records, err := g.Records()
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := fmt.Fprintln(bw, r); err != nil {
			return nil, err
		}
	}
	return records, bw.Flush()
}

// WriteFile generates a trace into path, compressed according to its
// extension.
func WriteFile(path string, g *Generator) ([]Record, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	wc, err := Create(path)
	if err != nil {
		return nil, err
	}

	records, err := g.Generate(wc)
	if err != nil {
		wc.Close()
		return nil, err
	}
	if err := wc.Close(); err != nil {
		return nil, err
	}

	slog.Info("new trace file", "path", path, "references", len(records))
	return records, nil
}

// SortRecords orders records by address, then reads before writes.
func SortRecords(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Address != sorted[j].Address {
			return sorted[i].Address < sorted[j].Address
		}
		return sorted[i].Kind < sorted[j].Kind
	})
	return sorted
}
