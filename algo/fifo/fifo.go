package fifo

import (
	"ixtza/ajk/pagesim/simulator"

	"github.com/secnot/orderedmap"
)

type (
	FIFO struct {
		frames int
		stats  simulator.Statistics

		// resident keeps admission order; hits never move a page.
		resident *orderedmap.OrderedMap
		dirty    simulator.DirtySet
	}
)

var _ simulator.Simulator = (*FIFO)(nil)

func NewFIFO(frames int) *FIFO {
	return &FIFO{
		frames:   frames,
		resident: orderedmap.NewOrderedMap(),
		dirty:    simulator.NewDirtySet(),
	}
}

func (fifo *FIFO) Get(ref simulator.Reference) (err error) {
	fifo.stats.TotalAccesses++

	if _, ok := fifo.resident.Get(ref.Page); ok {
		if ref.Kind == simulator.Write {
			fifo.dirty.Mark(ref.Page)
		}
		return nil
	}

	fifo.stats.PageFaults++

	if fifo.resident.Len() >= fifo.frames {
		fifo.evict()
	}

	fifo.resident.Set(ref.Page, struct{}{})
	if ref.Kind == simulator.Write {
		fifo.dirty.Mark(ref.Page)
	}

	return simulator.CheckResident(fifo.resident.Len(), fifo.frames)
}

// evict drops the page that has been resident longest.
func (fifo *FIFO) evict() {
	key, _, ok := fifo.resident.GetFirst()
	if !ok {
		return
	}
	victim := key.(simulator.Page)

	fifo.stats.Replacements++
	if fifo.dirty.Flush(victim) {
		fifo.stats.DiskWrites++
	}
	fifo.resident.Delete(victim)
}

func (fifo *FIFO) Stats() simulator.Statistics {
	return fifo.stats
}

// Resident returns the resident pages, oldest first.
func (fifo *FIFO) Resident() []simulator.Page {
	pages := make([]simulator.Page, 0, fifo.resident.Len())
	iter := fifo.resident.Iter()
	for key, _, ok := iter.Next(); ok; key, _, ok = iter.Next() {
		pages = append(pages, key.(simulator.Page))
	}
	return pages
}
