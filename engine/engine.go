// Package engine replays a reference stream under a chosen replacement
// policy and returns the raw counters of the run.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ixtza/ajk/pagesim/algo/fifo"
	"ixtza/ajk/pagesim/algo/lru"
	"ixtza/ajk/pagesim/algo/opt"
	"ixtza/ajk/pagesim/simulator"
)

// Engine runs replacement policies with a fixed frame budget. An Engine
// holds no per-run state; each Run creates and discards its own.
type Engine struct {
	frames   int
	observer simulator.ProgressObserver
	every    int
}

// Result is the outcome of one policy run.
type Result struct {
	Policy  simulator.Policy
	Frames  int
	Stats   simulator.Statistics
	Elapsed time.Duration
}

// Run replays stream under policy.
func (e *Engine) Run(
	ctx context.Context,
	stream simulator.Stream,
	policy simulator.Policy,
) (simulator.Statistics, error) {
	if e.frames < 1 {
		return simulator.Statistics{}, fmt.Errorf("%w: got %d",
			simulator.ErrInvalidFrameCount, e.frames)
	}

	switch policy {
	case simulator.FIFO:
		return e.replay(ctx, fifo.NewFIFO(e.frames), stream)
	case simulator.LRU:
		return e.replay(ctx, lru.NewLRU(e.frames), stream)
	case simulator.OPT:
		return opt.New(e.frames).
			WithProgress(e.observer, e.every).
			Run(ctx, stream)
	default:
		return simulator.Statistics{}, fmt.Errorf("%w: %q",
			simulator.ErrUnknownPolicy, policy)
	}
}

// Measure runs policy and records how long the replay took.
func (e *Engine) Measure(
	ctx context.Context,
	stream simulator.Stream,
	policy simulator.Policy,
) (Result, error) {
	start := time.Now()
	stats, err := e.Run(ctx, stream, policy)
	return Result{
		Policy:  policy,
		Frames:  e.frames,
		Stats:   stats,
		Elapsed: time.Since(start),
	}, err
}

// RunAll runs every policy concurrently over the same stream. Results come
// back in the order the policies were given. The first failing run cancels
// the others.
func (e *Engine) RunAll(
	ctx context.Context,
	stream simulator.Stream,
	policies ...simulator.Policy,
) ([]Result, error) {
	results := make([]Result, len(policies))
	g, ctx := errgroup.WithContext(ctx)

	for i, policy := range policies {
		g.Go(func() error {
			res, err := e.Measure(ctx, stream, policy)
			if err != nil {
				return fmt.Errorf("%s: %w", policy, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) replay(
	ctx context.Context,
	sim simulator.Simulator,
	stream simulator.Stream,
) (simulator.Statistics, error) {
	ticker := simulator.NewTicker(e.observer, e.every, len(stream))

	for i, ref := range stream {
		if i%simulator.CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return sim.Stats(), err
			}
		}

		if err := sim.Get(ref); err != nil {
			slog.Error("replay aborted", "index", i, "page", ref.Page, "err", err)
			return sim.Stats(), err
		}
		ticker.Tick(i)
	}

	return sim.Stats(), nil
}
