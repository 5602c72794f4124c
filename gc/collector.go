// ABOUTME: Collector orchestrating one full collection cycle
// ABOUTME: Runs partition, mark, sweep, and compact in fixed order

// Package gc simulates one cycle of a region-based mark-sweep-compact
// collector on a synthetic heap split into 16 equal regions.
package gc

import (
	"context"
	"fmt"

	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/region"
)

// HeapSource supplies the input of a collection cycle.
type HeapSource interface {
	// HeapSize returns the total heap size in bytes
	HeapSize() int

	// Objects returns the object table
	Objects() []heap.Object

	// Pointers returns the directed pointer edges
	Pointers() []heap.PointerEdge

	// Roots returns the root set
	Roots() heap.Roots
}

// Reporter consumes the outcome of a collection cycle.
type Reporter interface {
	Report(ctx context.Context, res *Result) error
}

// Stats summarises one collection cycle.
type Stats struct {
	Objects        int `json:"objects"`       // objects before collection
	Live           int `json:"live"`
	Swept          int `json:"swept"`
	ReclaimedBytes int `json:"reclaimed_bytes"`
	EmptyRegions   int `json:"empty_regions"` // regions eligible as compaction targets
	Moved          int `json:"moved"`
	MovedBytes     int `json:"moved_bytes"`
}

// Result is the outcome of one collection cycle.
type Result struct {
	HeapSize  int
	BlockSize int

	// Heap is the final object table
	Heap *heap.Model

	Liveness    *Liveness
	Regions     *region.Table
	Assignments region.Index
	Relocations []Relocation
	Stats       Stats
}

// Moved reports whether compaction relocated id, and where from.
func (r *Result) Moved(id heap.ObjID) (Relocation, bool) {
	for _, rel := range r.Relocations {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relocation{}, false
}

// Collector runs collection cycles. It holds only configuration, so one
// Collector may serve concurrent Collect calls; each call owns its own state.
type Collector struct {
	opts options
}

// New creates a Collector.
func New(optFns ...Option) *Collector {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Collector{opts: opts}
}

// Collect runs partition, mark, sweep and compact over src.
func (c *Collector) Collect(ctx context.Context, src HeapSource) (*Result, error) {
	heapSize := src.HeapSize()

	blockSize, err := region.BlockSize(heapSize)
	if err != nil {
		return nil, translateError(err)
	}
	log := c.opts.logger.WithHeap(heapSize, blockSize)

	m, err := heap.Load(src.Objects())
	if err != nil {
		return nil, translateError(err)
	}

	table, index, err := region.Partition(heapSize, m)
	if err != nil {
		log.LogPartition(ctx, m.Len(), 0, 0, err)
		return nil, translateError(err)
	}
	if err := c.checkCapacity(ctx, log, table); err != nil {
		log.LogPartition(ctx, m.Len(), 0, 0, err)
		return nil, err
	}
	log.LogPartition(ctx, m.Len(), countSpanning(index), len(table.EmptyRegions()), nil)

	stats := Stats{Objects: m.Len()}

	roots, edges := src.Roots(), src.Pointers()
	live, err := Trace(m, edges, roots)
	log.LogTrace(ctx, len(roots.IDs), len(edges), liveCount(live), err)
	if err != nil {
		return nil, err
	}

	st := State{Heap: m, Regions: table, Index: index}

	st, sweepStats := Sweep(st, live)
	log.LogSweep(ctx, sweepStats)

	st, compactStats := Compact(st)
	log.LogCompact(ctx, compactStats)

	stats.Live = int(live.LiveCount())
	stats.Swept = sweepStats.Swept
	stats.ReclaimedBytes = sweepStats.ReclaimedBytes
	stats.EmptyRegions = len(compactStats.Targets)
	stats.Moved = len(compactStats.Relocations)
	stats.MovedBytes = compactStats.MovedBytes
	log.LogCycle(ctx, stats)

	return &Result{
		HeapSize:    heapSize,
		BlockSize:   blockSize,
		Heap:        st.Heap,
		Liveness:    live,
		Regions:     st.Regions,
		Assignments: st.Index,
		Relocations: compactStats.Relocations,
		Stats:       stats,
	}, nil
}

func (c *Collector) checkCapacity(ctx context.Context, log *Logger, table *region.Table) error {
	for _, r := range table.Oversubscribed() {
		if c.opts.strictCapacity {
			return &CapacityError{Region: r.Index, Total: r.Total, Charged: r.Used()}
		}
		log.LogOversubscribed(ctx, r.Index, r.Total, r.Used())
	}
	return nil
}

// Run collects src and hands the result to rep.
func Run(ctx context.Context, src HeapSource, rep Reporter, optFns ...Option) error {
	res, err := New(optFns...).Collect(ctx, src)
	if err != nil {
		return err
	}
	if err := rep.Report(ctx, res); err != nil {
		return fmt.Errorf("failed to report heap: %w", err)
	}
	return nil
}

func countSpanning(index region.Index) int {
	n := 0
	for _, a := range index {
		if a.Spans() {
			n++
		}
	}
	return n
}

func liveCount(live *Liveness) uint64 {
	if live == nil {
		return 0
	}
	return live.LiveCount()
}
