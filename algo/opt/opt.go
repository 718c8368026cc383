package opt

import (
	"context"

	"ixtza/ajk/pagesim/simulator"

	"github.com/tidwall/btree"
)

type (
	// frame is a resident page with the index of its next reference.
	// seq is the admission order and breaks ties between pages that are
	// never referenced again: the earliest admitted goes first.
	frame struct {
		page simulator.Page
		next int
		seq  uint64
	}

	OPT struct {
		frames int
		stats  simulator.Statistics

		observer simulator.ProgressObserver
		every    int

		admitted uint64
		byNext   *btree.BTreeG[frame]
		resident map[simulator.Page]frame
		dirty    simulator.DirtySet
	}
)

var _ simulator.BatchSimulator = (*OPT)(nil)

// byNextUse orders frames so that the tree maximum is the victim.
func byNextUse(a, b frame) bool {
	if a.next != b.next {
		return a.next < b.next
	}
	return a.seq > b.seq
}

func New(frames int) *OPT {
	return &OPT{frames: frames}
}

// WithProgress sets the observer notified every `every` references. An
// every of zero reports ten times per run.
func (opt *OPT) WithProgress(observer simulator.ProgressObserver, every int) *OPT {
	opt.observer = observer
	opt.every = every
	return opt
}

func (opt *OPT) reset() {
	opt.stats = simulator.Statistics{}
	opt.admitted = 0
	opt.byNext = btree.NewBTreeG[frame](byNextUse)
	opt.resident = make(map[simulator.Page]frame)
	opt.dirty = simulator.NewDirtySet()
}

// Run replays the whole stream. Every call starts from empty frames and
// zeroed counters, so repeated runs over one stream agree.
func (opt *OPT) Run(ctx context.Context, stream simulator.Stream) (simulator.Statistics, error) {
	opt.reset()

	la := newLookahead(stream)
	ticker := simulator.NewTicker(opt.observer, opt.every, len(stream))

	for i, ref := range stream {
		if i%simulator.CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return opt.stats, err
			}
		}

		if err := opt.access(la, i, ref); err != nil {
			return opt.stats, err
		}
		ticker.Tick(i)
	}

	return opt.stats, nil
}

func (opt *OPT) access(la lookahead, i int, ref simulator.Reference) error {
	opt.stats.TotalAccesses++
	next := la.nextUse(ref.Page, i)

	if f, ok := opt.resident[ref.Page]; ok {
		opt.byNext.Delete(f)
		f.next = next
		opt.place(f)
		if ref.Kind == simulator.Write {
			opt.dirty.Mark(ref.Page)
		}
		return nil
	}

	opt.stats.PageFaults++

	if len(opt.resident) >= opt.frames {
		opt.evict()
	}

	opt.admitted++
	opt.place(frame{page: ref.Page, next: next, seq: opt.admitted})
	if ref.Kind == simulator.Write {
		opt.dirty.Mark(ref.Page)
	}

	return simulator.CheckResident(len(opt.resident), opt.frames)
}

func (opt *OPT) place(f frame) {
	opt.resident[f.page] = f
	opt.byNext.Set(f)
}

// evict removes the resident page referenced furthest in the future, or
// one never referenced again.
func (opt *OPT) evict() {
	victim, ok := opt.byNext.Max()
	if !ok {
		return
	}

	opt.stats.Replacements++
	if opt.dirty.Flush(victim.page) {
		opt.stats.DiskWrites++
	}
	opt.byNext.Delete(victim)
	delete(opt.resident, victim.page)
}

func (opt *OPT) Stats() simulator.Statistics {
	return opt.stats
}
