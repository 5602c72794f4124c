// ABOUTME: Mark phase: reachability analysis from the root set
// ABOUTME: Depth-first traversal over pointer edges with an explicit work stack

package gc

import "github.com/prateek/g1sim/heap"

// Trace marks every object reachable from roots by following pointer edges.
//
// Each object is expanded at most once, so cycles terminate. Edges leaving an
// object are followed in the order they appear in edges. A root or edge
// endpoint that is not in m yields an *UnknownObjectError.
func Trace(m *heap.Model, edges []heap.PointerEdge, roots heap.Roots) (*Liveness, error) {
	live := NewLiveness(m)

	for _, id := range roots.IDs {
		if !live.Known(id) {
			return nil, &UnknownObjectError{ID: id, Role: "root"}
		}
	}
	for _, e := range edges {
		if !live.Known(e.Source) {
			return nil, &UnknownObjectError{ID: e.Source, Role: "pointer source"}
		}
		if !live.Known(e.Target) {
			return nil, &UnknownObjectError{ID: e.Target, Role: "pointer target"}
		}
	}

	adj := heap.BuildAdjacency(edges)
	var stack []heap.ObjID

	for _, root := range roots.IDs {
		if !live.mark(root) {
			continue
		}
		stack = append(stack, root)

		for len(stack) > 0 {
			n := len(stack) - 1
			id := stack[n]
			stack = stack[:n]

			// Push in reverse so the first edge is expanded first
			targets := adj[id]
			for i := len(targets) - 1; i >= 0; i-- {
				if live.mark(targets[i]) {
					stack = append(stack, targets[i])
				}
			}
		}
	}

	return live, nil
}
