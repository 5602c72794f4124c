// ABOUTME: BFS algorithm for finding paths from objects to GC roots
// ABOUTME: Explains why a surviving object was kept alive by the mark phase

package heap

// Path represents a path from an object to a root
type Path struct {
	IDs []ObjID // Sequence of object IDs from target to root
}

// PathsToRoots finds up to maxPaths shortest paths from an object back to a root
// by walking pointer edges in reverse. An unreachable object has no paths.
func PathsToRoots(edges []PointerEdge, roots Roots, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}

	reverse := BuildReverseEdges(edges)

	rootSet := make(map[ObjID]bool, len(roots.IDs))
	for _, id := range roots.IDs {
		rootSet[id] = true
	}

	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	type searchNode struct {
		id   ObjID
		path []ObjID
	}

	var result []Path
	queue := []searchNode{{id: from, path: []ObjID{from}}}

	for len(queue) > 0 && len(result) < maxPaths {
		node := queue[0]
		queue = queue[1:]

		for _, referrerID := range reverse[node.id] {
			// Avoid cycles within a single path
			inPath := false
			for _, id := range node.path {
				if id == referrerID {
					inPath = true
					break
				}
			}
			if inPath {
				continue
			}

			newPath := make([]ObjID, len(node.path)+1)
			copy(newPath, node.path)
			newPath[len(node.path)] = referrerID

			if rootSet[referrerID] {
				result = append(result, Path{IDs: newPath})
				if len(result) >= maxPaths {
					break
				}
			} else {
				queue = append(queue, searchNode{id: referrerID, path: newPath})
			}
		}
	}

	return result
}
