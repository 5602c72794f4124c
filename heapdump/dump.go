// ABOUTME: Parsed heap description handed to the collector
// ABOUTME: Implements gc.HeapSource over plain slices

package heapdump

import "github.com/prateek/g1sim/heap"

// Dump is a parsed heap description: heap size, objects, pointers and roots.
// A Size of zero means the description did not state one.
type Dump struct {
	Size  int
	Heap  []heap.Object
	Edges []heap.PointerEdge
	Root  heap.Roots
}

// HeapSize returns the total heap size in bytes
func (d *Dump) HeapSize() int { return d.Size }

// Objects returns the object table
func (d *Dump) Objects() []heap.Object { return d.Heap }

// Pointers returns the directed pointer edges
func (d *Dump) Pointers() []heap.PointerEdge { return d.Edges }

// Roots returns the root set
func (d *Dump) Roots() heap.Roots { return d.Root }

// WithHeapSize returns a copy of d using size when size is positive.
func (d *Dump) WithHeapSize(size int) *Dump {
	c := *d
	if size > 0 {
		c.Size = size
	}
	return &c
}
