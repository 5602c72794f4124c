// ABOUTME: Fixed-capacity regions of the simulated address space
// ABOUTME: Tracks free bytes and per-object occupancy for each of the 16 regions

// Package region divides a simulated heap into a fixed number of equal
// regions and records which objects occupy them.
package region

import "github.com/prateek/g1sim/heap"

const (
	// Count is the number of regions every heap is divided into
	Count = 16

	// None marks an unused slot in an Assignment
	None = -1
)

// ObjectSize is the number of bytes an object occupies within one region
type ObjectSize struct {
	ID   heap.ObjID
	Size int
}

// Region is a contiguous slice of the address space.
// Free may drop below zero when partitioning over-subscribes a region.
type Region struct {
	Index int
	Total int
	Free  int

	objects []ObjectSize // insertion order
}

// New creates an empty region covering [index*capacity, (index+1)*capacity)
func New(index, capacity int) *Region {
	return &Region{
		Index: index,
		Total: capacity,
		Free:  capacity,
	}
}

// Empty reports whether no bytes of the region are charged
func (r *Region) Empty() bool {
	return r.Free == r.Total
}

// Used returns the number of charged bytes
func (r *Region) Used() int {
	return r.Total - r.Free
}

// Base returns the first address of the region
func (r *Region) Base() int {
	return r.Index * r.Total
}

// NextAddress returns the address right after the bytes already charged
func (r *Region) NextAddress() int {
	return r.Base() + r.Used()
}

// Add charges size bytes to the region on behalf of id
func (r *Region) Add(id heap.ObjID, size int) {
	r.objects = append(r.objects, ObjectSize{ID: id, Size: size})
	r.Free -= size
}

// Remove releases the bytes held by id and returns how many were freed.
// Removing an object that is not in the region frees nothing.
func (r *Region) Remove(id heap.ObjID) int {
	for i, o := range r.objects {
		if o.ID == id {
			r.objects = append(r.objects[:i], r.objects[i+1:]...)
			r.Free += o.Size
			return o.Size
		}
	}
	return 0
}

// Charge returns the bytes charged for id, if any
func (r *Region) Charge(id heap.ObjID) (int, bool) {
	for _, o := range r.objects {
		if o.ID == id {
			return o.Size, true
		}
	}
	return 0, false
}

// Objects returns a copy of the occupancy entries in insertion order
func (r *Region) Objects() []ObjectSize {
	out := make([]ObjectSize, len(r.objects))
	copy(out, r.objects)
	return out
}

// Table holds the regions of one heap
type Table struct {
	BlockSize int
	regions   []*Region
}

// NewTable creates Count empty regions of blockSize bytes each
func NewTable(blockSize int) *Table {
	t := &Table{
		BlockSize: blockSize,
		regions:   make([]*Region, Count),
	}
	for i := range t.regions {
		t.regions[i] = New(i, blockSize)
	}
	return t
}

// Region returns the region at index i
func (t *Table) Region(i int) *Region {
	return t.regions[i]
}

// Regions returns all regions in index order
func (t *Table) Regions() []*Region {
	return t.regions
}

// EmptyRegions returns the indices of all empty regions in ascending order
func (t *Table) EmptyRegions() []int {
	var out []int
	for _, r := range t.regions {
		if r.Empty() {
			out = append(out, r.Index)
		}
	}
	return out
}

// Used returns the bytes charged across all regions
func (t *Table) Used() int {
	used := 0
	for _, r := range t.regions {
		used += r.Used()
	}
	return used
}

// Release removes id from every region recorded in a and returns the bytes freed
func (t *Table) Release(id heap.ObjID, a Assignment) int {
	freed := t.regions[a.Primary].Remove(id)
	if a.Secondary != None {
		freed += t.regions[a.Secondary].Remove(id)
	}
	return freed
}

// Oversubscribed returns the regions whose charges exceed their capacity
func (t *Table) Oversubscribed() []*Region {
	var out []*Region
	for _, r := range t.regions {
		if r.Free < 0 {
			out = append(out, r)
		}
	}
	return out
}
