package simulator

// DirtySet tracks resident pages written since they were loaded. Each run
// owns its own set.
type DirtySet map[Page]struct{}

func NewDirtySet() DirtySet {
	return make(DirtySet)
}

// Mark records a write to page.
func (d DirtySet) Mark(page Page) {
	d[page] = struct{}{}
}

// Flush clears the page and reports whether it was dirty, i.e. whether
// evicting it costs a writeback.
func (d DirtySet) Flush(page Page) bool {
	if _, ok := d[page]; !ok {
		return false
	}
	delete(d, page)
	return true
}

func (d DirtySet) Contains(page Page) bool {
	_, ok := d[page]
	return ok
}
