// ABOUTME: Core data types for the simulated heap
// ABOUTME: Defines ObjID, Object, PointerEdge, and Roots structures

package heap

// ObjID is a unique identifier for a heap object
type ObjID uint64

// Object is the address range owned by a single heap object.
// End is inclusive, so an object always covers at least one byte.
type Object struct {
	ID    ObjID // Unique identifier
	Start int   // First address
	End   int   // Last address (inclusive)
}

// Size returns the number of bytes the object covers
func (o Object) Size() int {
	return o.End - o.Start + 1
}

// Overlaps reports whether the two address ranges share at least one byte
func (o Object) Overlaps(other Object) bool {
	return o.Start <= other.End && other.Start <= o.End
}

// PointerEdge records that Source holds a reference to Target
type PointerEdge struct {
	Source ObjID
	Target ObjID
}

// Roots represents the set of GC root objects
type Roots struct {
	IDs []ObjID // Object IDs that are roots
}
