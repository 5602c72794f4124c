// ABOUTME: Object table for the simulated heap
// ABOUTME: Indexes objects by identity and validates their address ranges

package heap

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID is returned when two objects share an ID
	ErrDuplicateID = errors.New("duplicate object id")

	// ErrInvertedRange is returned when an object ends before it starts
	ErrInvertedRange = errors.New("object ends before it starts")

	// ErrNegativeAddress is returned for addresses below zero
	ErrNegativeAddress = errors.New("negative address")

	// ErrOverlap is returned when two objects claim the same bytes
	ErrOverlap = errors.New("overlapping objects")
)

// Model is the object table (id -> address range).
// It is not safe for concurrent use; a collection cycle owns its model exclusively.
type Model struct {
	objects map[ObjID]Object
}

// NewModel creates an empty object table
func NewModel() *Model {
	return &Model{
		objects: make(map[ObjID]Object),
	}
}

// Load builds a model from objs and checks that every range is well formed
// and that no two ranges overlap.
func Load(objs []Object) (*Model, error) {
	m := &Model{objects: make(map[ObjID]Object, len(objs))}
	for _, obj := range objs {
		if obj.Start < 0 {
			return nil, fmt.Errorf("object %d: %w", obj.ID, ErrNegativeAddress)
		}
		if obj.Start > obj.End {
			return nil, fmt.Errorf("object %d [%d-%d]: %w", obj.ID, obj.Start, obj.End, ErrInvertedRange)
		}
		if _, exists := m.objects[obj.ID]; exists {
			return nil, fmt.Errorf("object %d: %w", obj.ID, ErrDuplicateID)
		}
		m.objects[obj.ID] = obj
	}

	// Sorted by start address, any overlap shows up between neighbours
	byStart := m.Objects()
	slices.SortFunc(byStart, func(a, b Object) int { return a.Start - b.Start })
	for i := 1; i < len(byStart); i++ {
		prev, cur := byStart[i-1], byStart[i]
		if prev.Overlaps(cur) {
			return nil, fmt.Errorf("objects %d [%d-%d] and %d [%d-%d]: %w",
				prev.ID, prev.Start, prev.End, cur.ID, cur.Start, cur.End, ErrOverlap)
		}
	}

	return m, nil
}

// Add inserts or replaces an object
func (m *Model) Add(obj Object) {
	m.objects[obj.ID] = obj
}

// Get retrieves an object by ID
func (m *Model) Get(id ObjID) (Object, bool) {
	obj, ok := m.objects[id]
	return obj, ok
}

// Has reports whether id is in the table
func (m *Model) Has(id ObjID) bool {
	_, ok := m.objects[id]
	return ok
}

// Remove deletes an object and reports whether it was present
func (m *Model) Remove(id ObjID) bool {
	if _, ok := m.objects[id]; !ok {
		return false
	}
	delete(m.objects, id)
	return true
}

// Len returns the total number of objects
func (m *Model) Len() int {
	return len(m.objects)
}

// IDs returns all object IDs in ascending order
func (m *Model) IDs() []ObjID {
	ids := make([]ObjID, 0, len(m.objects))
	for id := range m.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Objects returns all objects in ascending ID order
func (m *Model) Objects() []Object {
	objs := make([]Object, 0, len(m.objects))
	for _, id := range m.IDs() {
		objs = append(objs, m.objects[id])
	}
	return objs
}

// ForEachObject iterates over all objects in ascending ID order
func (m *Model) ForEachObject(fn func(Object)) {
	for _, obj := range m.Objects() {
		fn(obj)
	}
}

// Clone returns an independent copy of the table
func (m *Model) Clone() *Model {
	c := &Model{objects: make(map[ObjID]Object, len(m.objects))}
	for id, obj := range m.objects {
		c.objects[id] = obj
	}
	return c
}

// Equal reports whether both tables hold the same objects at the same addresses
func (m *Model) Equal(other *Model) bool {
	if m.Len() != other.Len() {
		return false
	}
	for id, obj := range m.objects {
		if o, ok := other.objects[id]; !ok || o != obj {
			return false
		}
	}
	return true
}
