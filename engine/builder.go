package engine

import "ixtza/ajk/pagesim/simulator"

// Builder can build engines.
type Builder struct {
	frames   int
	observer simulator.ProgressObserver
	every    int
}

// MakeBuilder creates a new builder with a single frame and no progress
// reporting.
func MakeBuilder() Builder {
	return Builder{
		frames: 1,
	}
}

// WithFrameCount sets the number of physical frames.
func (b Builder) WithFrameCount(frames int) Builder {
	b.frames = frames
	return b
}

// WithProgressObserver sets the observer notified during replay. RunAll
// calls it from several goroutines.
func (b Builder) WithProgressObserver(observer simulator.ProgressObserver) Builder {
	b.observer = observer
	return b
}

// WithProgressCadence sets how many references pass between progress
// notifications. Zero means ten notifications per run.
func (b Builder) WithProgressCadence(every int) Builder {
	b.every = every
	return b
}

// Build builds an engine.
func (b Builder) Build() *Engine {
	return &Engine{
		frames:   b.frames,
		observer: b.observer,
		every:    b.every,
	}
}
