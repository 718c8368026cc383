package opt

import (
	"math"
	"sort"

	"ixtza/ajk/pagesim/simulator"
)

// never is the next-use index of a page that does not occur again.
const never = math.MaxInt

// lookahead holds, per page, the ascending indices at which the page is
// referenced. It is built once per stream.
type lookahead map[simulator.Page][]int

func newLookahead(stream simulator.Stream) lookahead {
	la := make(lookahead)
	for i, ref := range stream {
		la[ref.Page] = append(la[ref.Page], i)
	}
	return la
}

// nextUse returns the first index strictly after i at which page is
// referenced, or never.
func (la lookahead) nextUse(page simulator.Page, i int) int {
	occurrences := la[page]
	n := sort.SearchInts(occurrences, i+1)
	if n == len(occurrences) {
		return never
	}
	return occurrences[n]
}
