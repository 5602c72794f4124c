// ABOUTME: Builds forward and reverse adjacency from pointer edges
// ABOUTME: Forward edges drive marking, reverse edges drive paths-to-roots

package heap

// Adjacency maps each object to the objects it points to, in edge order
type Adjacency map[ObjID][]ObjID

// BuildAdjacency creates the forward edge map
func BuildAdjacency(edges []PointerEdge) Adjacency {
	adj := make(Adjacency)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// ReverseEdges maps each object to the objects that point to it
type ReverseEdges map[ObjID][]ObjID

// BuildReverseEdges creates a map of reverse edges
func BuildReverseEdges(edges []PointerEdge) ReverseEdges {
	reverse := make(ReverseEdges)
	for _, e := range edges {
		reverse[e.Target] = append(reverse[e.Target], e.Source)
	}
	return reverse
}
