// ABOUTME: Error values returned by a collection cycle
// ABOUTME: Sentinel errors plus typed errors that carry the offending object or region

package gc

import (
	"errors"
	"fmt"

	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/region"
)

var (
	// ErrInvalidHeapSize is returned when the heap cannot be split into 16 regions.
	ErrInvalidHeapSize = errors.New("invalid heap size")

	// ErrInvalidObject is returned for malformed or overlapping object ranges.
	ErrInvalidObject = errors.New("invalid object")

	// ErrUnknownObject is returned when a root or pointer names an object missing from the heap.
	ErrUnknownObject = errors.New("unknown object")

	// ErrCapacityExceeded is returned in strict capacity mode when partitioning
	// charges a region beyond its size.
	ErrCapacityExceeded = errors.New("region capacity exceeded")
)

// UnknownObjectError names the reference that points outside the heap.
type UnknownObjectError struct {
	ID   heap.ObjID
	Role string // "root", "pointer source" or "pointer target"
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("unknown object: %s %d is not in the heap", e.Role, e.ID)
}

func (e *UnknownObjectError) Unwrap() error { return ErrUnknownObject }

// CapacityError describes an over-subscribed region.
type CapacityError struct {
	Region  int
	Total   int
	Charged int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("region capacity exceeded: region %d charged %d of %d bytes", e.Region, e.Charged, e.Total)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// translateError maps errors from the heap and region packages onto the gc sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, region.ErrHeapTooSmall):
		return fmt.Errorf("%w: %w", ErrInvalidHeapSize, err)
	case errors.Is(err, region.ErrOutOfRange),
		errors.Is(err, heap.ErrDuplicateID),
		errors.Is(err, heap.ErrInvertedRange),
		errors.Is(err, heap.ErrNegativeAddress),
		errors.Is(err, heap.ErrOverlap):
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	return err
}
