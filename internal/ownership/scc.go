package ownership

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// SCC is the strongly-connected-component partition of an ownership graph.
// Each component of size > 1 (or with a self-edge) is a programmer-declared
// mutual-ownership cluster and is validated as a single unit.
//
// Components are emitted in reverse topological order: for every edge
// u -> v across components, CompOf[v] < CompOf[u]. The reachability closure
// relies on this.
type SCC struct {
	CompOf []int32    // node -> component, always assigned
	Comps  [][]NodeID // component -> sorted members
}

// ComputeSCC runs Tarjan's algorithm (iterative, explicit stack) over the
// adjacency lists.
func ComputeSCC(edges [][]NodeID) SCC {
	n := len(edges)
	const unvisited = int32(-1)

	index := make([]int32, n)
	low := make([]int32, n)
	compOf := make([]int32, n)
	onStack := make([]bool, n)
	for i := range n {
		index[i] = unvisited
		compOf[i] = unvisited
	}

	var (
		next  int32
		stack []NodeID
		comps [][]NodeID
	)

	type frame struct {
		v  NodeID
		ei int
	}
	frames := make([]frame, 0, 16)

	for root := range n {
		if index[root] != unvisited {
			continue
		}
		rootID, err := safecast.Conv[NodeID](root)
		if err != nil {
			panic(fmt.Errorf("node id overflow: %w", err))
		}
		index[root] = next
		low[root] = next
		next++
		stack = append(stack, rootID)
		onStack[root] = true
		frames = append(frames, frame{v: rootID})

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := int(f.v)

			if f.ei < len(edges[v]) {
				w := edges[v][f.ei]
				f.ei++
				if index[int(w)] == unvisited {
					index[int(w)] = next
					low[int(w)] = next
					next++
					stack = append(stack, w)
					onStack[int(w)] = true
					frames = append(frames, frame{v: w})
				} else if onStack[int(w)] && index[int(w)] < low[v] {
					low[v] = index[int(w)]
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := int(frames[len(frames)-1].v)
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
			if low[v] != index[v] {
				continue
			}

			// v is a component root; pop the stack down to it.
			compID, err := safecast.Conv[int32](len(comps))
			if err != nil {
				panic(fmt.Errorf("component id overflow: %w", err))
			}
			var comp []NodeID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[int(w)] = false
				compOf[int(w)] = compID
				comp = append(comp, w)
				if int(w) == v {
					break
				}
			}
			slices.Sort(comp)
			comps = append(comps, comp)
		}
	}

	return SCC{CompOf: compOf, Comps: comps}
}

// Verify checks that the partition is well formed: every node belongs to
// exactly one component and every component lists exactly its nodes. A
// failure here is an internal invariant violation, not a user diagnostic.
func (s SCC) Verify(nodeCount int) error {
	if len(s.CompOf) != nodeCount {
		return fmt.Errorf("scc: partition covers %d nodes, graph has %d", len(s.CompOf), nodeCount)
	}
	seen := make([]bool, nodeCount)
	total := 0
	for ci, comp := range s.Comps {
		for _, v := range comp {
			if int(v) >= nodeCount {
				return fmt.Errorf("scc: component %d lists unknown node %d", ci, v)
			}
			if seen[int(v)] {
				return fmt.Errorf("scc: node %d assigned to more than one component", v)
			}
			seen[int(v)] = true
			if s.CompOf[int(v)] != int32(ci) {
				return fmt.Errorf("scc: node %d listed in component %d but mapped to %d", v, ci, s.CompOf[int(v)])
			}
			total++
		}
	}
	if total != nodeCount {
		return fmt.Errorf("scc: components cover %d of %d nodes", total, nodeCount)
	}
	return nil
}
