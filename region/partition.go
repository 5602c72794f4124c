// ABOUTME: Assigns heap objects to the regions their address ranges overlap
// ABOUTME: Builds the region table and the object-to-region index

package region

import (
	"errors"
	"fmt"

	"github.com/prateek/g1sim/heap"
)

var (
	// ErrHeapTooSmall is returned when the heap cannot be split into Count non-empty regions
	ErrHeapTooSmall = errors.New("heap too small to partition")

	// ErrOutOfRange is returned when an object starts beyond the last region
	ErrOutOfRange = errors.New("object outside addressable range")
)

// OutOfRangeError describes an object whose start address is past the last region
type OutOfRangeError struct {
	ID     heap.ObjID
	Start  int
	Region int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("object %d starts at %d in region %d, heap has %d regions", e.ID, e.Start, e.Region, Count)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// Assignment records the region an object starts in and, when the object
// crosses a region boundary, the neighbouring region it also occupies.
type Assignment struct {
	Primary   int
	Secondary int // None for single-region objects
}

// Spans reports whether the object occupies two regions
func (a Assignment) Spans() bool {
	return a.Secondary != None
}

// Index maps each object to its region assignment
type Index map[heap.ObjID]Assignment

// BlockSize returns the capacity of one region for a heap of heapSize bytes.
// Any remainder of heapSize/Count is left unaddressed.
func BlockSize(heapSize int) (int, error) {
	blockSize := heapSize / Count
	if blockSize <= 0 {
		return 0, fmt.Errorf("%w: %d bytes for %d regions", ErrHeapTooSmall, heapSize, Count)
	}
	return blockSize, nil
}

// Partition builds the region table for heapSize and charges every object to
// the region(s) it overlaps.
//
// An object inside one region is charged its full size. An object crossing a
// boundary charges its start region up to the boundary and its end region the
// remainder End-boundary; a zero remainder or an end region past the last one
// is not charged. An object reaching past the next region charges everything
// before the last boundary to its start region, and charges may exceed a
// region's capacity.
func Partition(heapSize int, m *heap.Model) (*Table, Index, error) {
	blockSize, err := BlockSize(heapSize)
	if err != nil {
		return nil, nil, err
	}

	table := NewTable(blockSize)
	index := make(Index, m.Len())

	for _, obj := range m.Objects() {
		startRegion := obj.Start / blockSize
		endRegion := obj.End / blockSize

		if startRegion >= Count {
			return nil, nil, &OutOfRangeError{ID: obj.ID, Start: obj.Start, Region: startRegion}
		}

		if startRegion == endRegion {
			table.regions[startRegion].Add(obj.ID, obj.Size())
			index[obj.ID] = Assignment{Primary: startRegion, Secondary: None}
			continue
		}

		boundary := endRegion * blockSize
		table.regions[startRegion].Add(obj.ID, boundary-obj.Start)

		secondary := None
		if rest := obj.End - boundary; rest != 0 && endRegion < Count {
			table.regions[endRegion].Add(obj.ID, rest)
			secondary = endRegion
		}
		index[obj.ID] = Assignment{Primary: startRegion, Secondary: secondary}
	}

	return table, index, nil
}
