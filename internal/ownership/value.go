package ownership

import (
	"fmt"
	"slices"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
)

// DefaultMaxValueDepth bounds value-type owns-chain flattening. The source
// annotations give no nesting bound, so flattening stops here and reports
// instead of recursing forever on pathological input.
const DefaultMaxValueDepth = 32

// flatResult is the reference surface of one value type: every reference
// node reachable through its owns-chain, plus flags for chains the flattener
// could not fully resolve.
type flatResult struct {
	refs        []NodeID
	height      int  // value-type frames the chain occupies, this type included
	unannotated bool // an unannotated value type was crossed
	tooDeep     bool // depth cap hit or value-type cycle
}

// flattener expands value-type owns-chains eagerly, memoizing fully
// resolved chains and emitting unknown-entry diagnostics exactly once per
// offending entry.
type flattener struct {
	byName   map[string]*decl.Decl
	idx      Index
	reporter diag.Reporter
	maxDepth int
	memo     map[string]flatResult
	visiting map[string]bool
	reported map[string]bool // "type\x00entry" pairs already diagnosed
}

func newFlattener(byName map[string]*decl.Decl, idx Index, reporter diag.Reporter, maxDepth int) *flattener {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxValueDepth
	}
	return &flattener{
		byName:   byName,
		idx:      idx,
		reporter: reporter,
		maxDepth: maxDepth,
		memo:     make(map[string]flatResult),
		visiting: make(map[string]bool),
		reported: make(map[string]bool),
	}
}

// flatten resolves the reference types carried by value type v.
func (f *flattener) flatten(v *decl.Decl) flatResult {
	return f.flattenAt(v, 0)
}

func (f *flattener) flattenAt(v *decl.Decl, depth int) flatResult {
	if res, ok := f.memo[v.Name]; ok {
		// A cached chain still overflows when entered this deep.
		if depth+res.height > f.maxDepth {
			return flatResult{tooDeep: true}
		}
		return res
	}
	if depth >= f.maxDepth || f.visiting[v.Name] {
		// Cycles between value types never terminate; treat them like an
		// overly deep chain and let the owner report it.
		return flatResult{tooDeep: true}
	}
	if !v.Annotated {
		// An unannotated value type may carry any reference type; the
		// outermost reference owner downgrades this to a warning.
		res := flatResult{unannotated: true, height: 1}
		f.memo[v.Name] = res
		return res
	}

	f.visiting[v.Name] = true
	var res flatResult
	for _, entry := range v.Owns {
		target, ok := f.byName[entry]
		if !ok {
			if key := v.Name + "\x00" + entry; !f.reported[key] {
				f.reported[key] = true
				diag.ReportError(f.reporter, diag.OwnUnknownType, v.Name,
					fmt.Sprintf("owns-list of value type %q names unknown type %q", v.Name, entry)).
					WithRelated(entry).
					Emit()
			}
			continue
		}
		if target.IsReference() {
			if id, ok := f.idx.NameToID[target.Name]; ok {
				res.refs = append(res.refs, id)
			}
			continue
		}
		sub := f.flattenAt(target, depth+1)
		res.refs = append(res.refs, sub.refs...)
		res.unannotated = res.unannotated || sub.unannotated
		res.tooDeep = res.tooDeep || sub.tooDeep
		if sub.height > res.height {
			res.height = sub.height
		}
	}
	delete(f.visiting, v.Name)
	res.height++

	slices.Sort(res.refs)
	res.refs = slices.Compact(res.refs)
	if !res.tooDeep {
		// An overflow depends on where the walk started; caching it would
		// mark the type too deep for owners whose chain through it is
		// well under the cap. Only fully resolved chains are reusable.
		f.memo[v.Name] = res
	}
	return res
}
