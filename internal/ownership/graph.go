package ownership

import (
	"fmt"
	"slices"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
)

// Graph is the directed ownership graph of one validation run. An edge
// A -> B means "A's owns-list permits holding B", with value-type entries
// already flattened to the references they carry.
type Graph struct {
	Idx       Index
	Edges     [][]NodeID // Edges[from] = []to, sorted, deduplicated
	Annotated []bool     // node carries an explicit owns annotation
}

// BuildGraph constructs edges from every annotated reference declaration's
// owns-list. Entries naming unknown types are reported and dropped; entries
// naming value types contribute edges to each reference the value type
// carries.
func BuildGraph(decls []decl.Decl, idx Index, byName map[string]*decl.Decl, flat *flattener, reporter diag.Reporter) Graph {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Idx:       idx,
		Edges:     make([][]NodeID, nodeCount),
		Annotated: make([]bool, nodeCount),
	}

	for i := range decls {
		d := &decls[i]
		if !d.IsReference() || !d.Annotated {
			continue
		}
		from, ok := idx.NameToID[d.Name]
		if !ok {
			// index is built over the same declarations, must not happen
			continue
		}
		g.Annotated[int(from)] = true

		for _, entry := range d.Owns {
			target, known := byName[entry]
			if !known {
				diag.ReportError(reporter, diag.OwnUnknownType, d.Name,
					fmt.Sprintf("owns-list of %q names unknown type %q", d.Name, entry)).
					WithRelated(entry).
					Emit()
				continue
			}
			if target.IsReference() {
				if to, ok := idx.NameToID[target.Name]; ok {
					g.Edges[int(from)] = append(g.Edges[int(from)], to)
				}
				continue
			}

			res := flat.flatten(target)
			if res.tooDeep {
				diag.ReportError(reporter, diag.OwnValueChainTooDeep, d.Name,
					fmt.Sprintf("owns-list entry %q of %q nests value types beyond depth %d", entry, d.Name, flat.maxDepth)).
					WithRelated(entry).
					Emit()
			}
			if res.unannotated {
				diag.ReportWarning(reporter, diag.OwnUnannotated, d.Name,
					fmt.Sprintf("owns-list entry %q of %q is an unannotated value type; references carried through it are unchecked", entry, d.Name)).
					WithRelated(entry).
					Emit()
			}
			g.Edges[int(from)] = append(g.Edges[int(from)], res.refs...)
		}

		if len(g.Edges[int(from)]) > 1 {
			slices.Sort(g.Edges[int(from)])
			g.Edges[int(from)] = slices.Compact(g.Edges[int(from)])
		}
	}

	return g
}

// HasEdge reports a direct (post-flattening) edge from -> to.
func (g *Graph) HasEdge(from, to NodeID) bool {
	_, found := slices.BinarySearch(g.Edges[int(from)], to)
	return found
}
