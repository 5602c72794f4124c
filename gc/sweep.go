// ABOUTME: Sweep phase: removes unmarked objects from the heap and their regions
// ABOUTME: Defines the State handed from phase to phase

package gc

import (
	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/region"
)

// State is the mutable data of one collection cycle.
// A phase takes ownership of the State it is given and returns the updated
// State; callers must not keep using the value they passed in.
type State struct {
	Heap    *heap.Model
	Regions *region.Table
	Index   region.Index
}

// SweepStats summarises a sweep.
type SweepStats struct {
	Swept          int
	ReclaimedBytes int // region bytes released by swept objects
}

// Sweep removes every object live does not mark from the heap and from both
// regions recorded in its assignment. Marked objects are untouched.
func Sweep(st State, live *Liveness) (State, SweepStats) {
	var stats SweepStats

	for _, id := range live.Dead() {
		if !st.Heap.Remove(id) {
			continue
		}
		if a, ok := st.Index[id]; ok {
			stats.ReclaimedBytes += st.Regions.Release(id, a)
			delete(st.Index, id)
		}
		stats.Swept++
	}

	return st, stats
}
