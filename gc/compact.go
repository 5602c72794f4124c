// ABOUTME: Compaction phase: evacuates survivors into regions emptied by the sweep
// ABOUTME: First-fit placement over the empty regions, lowest index first

package gc

import (
	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/region"
)

// Relocation records an object that compaction moved.
type Relocation struct {
	ID   heap.ObjID
	From heap.Object
	To   heap.Object
}

// CompactStats summarises a compaction.
type CompactStats struct {
	Targets     []int // regions that were empty when compaction began
	Relocations []Relocation
	MovedBytes  int
}

// Compact relocates survivors into the regions that are empty when it starts.
//
// Objects are visited in ascending ID order. Each goes to the first target
// region, by index, whose free space fits its size, at the address right after
// the bytes already placed there; its old region charges are released. An
// object that fits nowhere keeps its address and its old charges. Regions that
// were only partly freed are never targets.
func Compact(st State) (State, CompactStats) {
	stats := CompactStats{Targets: st.Regions.EmptyRegions()}
	next := heap.NewModel()

	for _, obj := range st.Heap.Objects() {
		size := obj.Size()
		moved := false

		for _, idx := range stats.Targets {
			target := st.Regions.Region(idx)
			if target.Free < size {
				continue
			}

			start := target.NextAddress()
			target.Add(obj.ID, size)
			st.Regions.Release(obj.ID, st.Index[obj.ID])
			st.Index[obj.ID] = region.Assignment{Primary: idx, Secondary: region.None}

			dst := heap.Object{ID: obj.ID, Start: start, End: start + size - 1}
			next.Add(dst)
			stats.Relocations = append(stats.Relocations, Relocation{ID: obj.ID, From: obj, To: dst})
			stats.MovedBytes += size
			moved = true
			break
		}

		if !moved {
			next.Add(obj)
		}
	}

	st.Heap = next
	return st, stats
}
