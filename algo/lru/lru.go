package lru

import (
	"ixtza/ajk/pagesim/simulator"

	"github.com/petar/GoLLRB/llrb"
)

type (
	// touch is a resident page keyed by the tick of its last access.
	// Ticks are unique, so the tree minimum is the least recently used page.
	touch struct {
		page simulator.Page
		tick uint64
	}

	LRU struct {
		frames int
		clock  uint64
		stats  simulator.Statistics

		recency  *llrb.LLRB
		resident map[simulator.Page]uint64
		dirty    simulator.DirtySet
	}
)

func (x *touch) Less(than llrb.Item) bool {
	return x.tick < than.(*touch).tick
}

var _ simulator.Simulator = (*LRU)(nil)

func NewLRU(frames int) *LRU {
	return &LRU{
		frames:   frames,
		recency:  llrb.New(),
		resident: make(map[simulator.Page]uint64),
		dirty:    simulator.NewDirtySet(),
	}
}

func (lru *LRU) Get(ref simulator.Reference) (err error) {
	lru.stats.TotalAccesses++

	if tick, ok := lru.resident[ref.Page]; ok {
		lru.recency.Delete(&touch{tick: tick})
		lru.touch(ref.Page)
		if ref.Kind == simulator.Write {
			lru.dirty.Mark(ref.Page)
		}
		return nil
	}

	lru.stats.PageFaults++

	if len(lru.resident) >= lru.frames {
		lru.evict()
	}

	lru.touch(ref.Page)
	if ref.Kind == simulator.Write {
		lru.dirty.Mark(ref.Page)
	}

	return simulator.CheckResident(len(lru.resident), lru.frames)
}

// touch moves page to the most recently used end.
func (lru *LRU) touch(page simulator.Page) {
	lru.clock++
	lru.resident[page] = lru.clock
	lru.recency.ReplaceOrInsert(&touch{page: page, tick: lru.clock})
}

func (lru *LRU) evict() {
	item := lru.recency.DeleteMin()
	if item == nil {
		return
	}
	victim := item.(*touch).page

	lru.stats.Replacements++
	if lru.dirty.Flush(victim) {
		lru.stats.DiskWrites++
	}
	delete(lru.resident, victim)
}

func (lru *LRU) Stats() simulator.Statistics {
	return lru.stats
}

// Resident returns the resident pages from least to most recently used.
func (lru *LRU) Resident() []simulator.Page {
	pages := make([]simulator.Page, 0, lru.recency.Len())
	lru.recency.AscendGreaterOrEqual(lru.recency.Min(), func(i llrb.Item) bool {
		pages = append(pages, i.(*touch).page)
		return true
	})
	return pages
}
