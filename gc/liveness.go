// ABOUTME: Liveness map produced by the mark phase
// ABOUTME: Stores heap and marked object IDs as roaring bitmaps

package gc

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/prateek/g1sim/heap"
)

// Liveness records, for every object of a heap, whether marking reached it.
// Objects start unmarked; marking only ever adds.
type Liveness struct {
	known  *roaring64.Bitmap
	marked *roaring64.Bitmap
}

// NewLiveness creates a liveness map with every object of m unmarked.
func NewLiveness(m *heap.Model) *Liveness {
	known := roaring64.New()
	for _, id := range m.IDs() {
		known.Add(uint64(id))
	}
	return &Liveness{
		known:  known,
		marked: roaring64.New(),
	}
}

// Known reports whether id belongs to the heap the map was built for.
func (l *Liveness) Known(id heap.ObjID) bool {
	return l.known.Contains(uint64(id))
}

// IsLive reports whether id was reached from a root.
func (l *Liveness) IsLive(id heap.ObjID) bool {
	return l.marked.Contains(uint64(id))
}

// mark sets id live and reports whether it was unmarked before.
func (l *Liveness) mark(id heap.ObjID) bool {
	if l.marked.Contains(uint64(id)) {
		return false
	}
	l.marked.Add(uint64(id))
	return true
}

// Live returns the marked IDs in ascending order.
func (l *Liveness) Live() []heap.ObjID {
	return toIDs(l.marked.ToArray())
}

// Dead returns the unmarked IDs in ascending order.
func (l *Liveness) Dead() []heap.ObjID {
	return toIDs(roaring64.AndNot(l.known, l.marked).ToArray())
}

// LiveCount returns the number of marked objects.
func (l *Liveness) LiveCount() uint64 {
	return l.marked.GetCardinality()
}

// Map returns the liveness of every heap object as a plain map.
func (l *Liveness) Map() map[heap.ObjID]bool {
	out := make(map[heap.ObjID]bool, l.known.GetCardinality())
	for _, id := range l.known.ToArray() {
		out[heap.ObjID(id)] = l.marked.Contains(id)
	}
	return out
}

func toIDs(raw []uint64) []heap.ObjID {
	ids := make([]heap.ObjID, len(raw))
	for i, v := range raw {
		ids[i] = heap.ObjID(v)
	}
	return ids
}
