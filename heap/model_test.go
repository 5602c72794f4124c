// ABOUTME: Tests for the object table and edge helpers
// ABOUTME: Validates loading, range checks, iteration order, and adjacency

package heap

import (
	"errors"
	"reflect"
	"testing"
)

func TestObjectSize(t *testing.T) {
	tests := []struct {
		obj  Object
		want int
	}{
		{Object{ID: 1, Start: 0, End: 0}, 1},
		{Object{ID: 2, Start: 0, End: 4}, 5},
		{Object{ID: 3, Start: 5, End: 14}, 10},
	}

	for _, tt := range tests {
		if got := tt.obj.Size(); got != tt.want {
			t.Errorf("Object %d Size() = %d, want %d", tt.obj.ID, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	m, err := Load([]Object{
		{ID: 2, Start: 5, End: 14},
		{ID: 1, Start: 0, End: 4},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Len() != 2 {
		t.Errorf("Expected 2 objects, got %d", m.Len())
	}

	obj, ok := m.Get(2)
	if !ok {
		t.Fatal("Object 2 not found")
	}
	if obj.Start != 5 || obj.End != 14 {
		t.Errorf("Expected [5-14], got [%d-%d]", obj.Start, obj.End)
	}

	if !reflect.DeepEqual(m.IDs(), []ObjID{1, 2}) {
		t.Errorf("Expected ascending IDs [1 2], got %v", m.IDs())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		objs []Object
		want error
	}{
		{
			name: "Inverted range",
			objs: []Object{{ID: 1, Start: 9, End: 3}},
			want: ErrInvertedRange,
		},
		{
			name: "Negative start",
			objs: []Object{{ID: 1, Start: -1, End: 3}},
			want: ErrNegativeAddress,
		},
		{
			name: "Duplicate id",
			objs: []Object{{ID: 1, Start: 0, End: 3}, {ID: 1, Start: 10, End: 12}},
			want: ErrDuplicateID,
		},
		{
			name: "Overlapping ranges",
			objs: []Object{{ID: 1, Start: 0, End: 5}, {ID: 2, Start: 5, End: 8}},
			want: ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.objs)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModelMutation(t *testing.T) {
	m := NewModel()
	m.Add(Object{ID: 7, Start: 0, End: 3})
	m.Add(Object{ID: 3, Start: 10, End: 11})

	clone := m.Clone()

	if !m.Remove(7) {
		t.Error("Expected Remove(7) to report true")
	}
	if m.Remove(7) {
		t.Error("Expected second Remove(7) to report false")
	}
	if m.Has(7) {
		t.Error("Object 7 should be gone")
	}

	// Clone is independent
	if !clone.Has(7) || clone.Len() != 2 {
		t.Errorf("Clone changed with original: %v", clone.IDs())
	}
	if clone.Equal(m) {
		t.Error("Clone should no longer equal the mutated model")
	}

	var visited []ObjID
	clone.ForEachObject(func(obj Object) {
		visited = append(visited, obj.ID)
	})
	if !reflect.DeepEqual(visited, []ObjID{3, 7}) {
		t.Errorf("Expected ascending iteration [3 7], got %v", visited)
	}
}

func TestAdjacency(t *testing.T) {
	edges := []PointerEdge{{1, 3}, {1, 2}, {2, 3}}

	adj := BuildAdjacency(edges)
	if !reflect.DeepEqual(adj[1], []ObjID{3, 2}) {
		t.Errorf("Expected edge order [3 2] for object 1, got %v", adj[1])
	}

	reverse := BuildReverseEdges(edges)
	if !reflect.DeepEqual(reverse[3], []ObjID{1, 2}) {
		t.Errorf("Expected referrers [1 2] for object 3, got %v", reverse[3])
	}
	if len(reverse[1]) != 0 {
		t.Errorf("Expected no referrers for object 1, got %v", reverse[1])
	}
}
