package ownership

// bitset is a fixed-size bit vector over component IDs.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int32) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) has(i int32) bool {
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}

func (b bitset) or(other bitset) {
	for i := range b {
		b[i] |= other[i]
	}
}

func (b bitset) intersects(other bitset) bool {
	for i := range b {
		if b[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Reach is the per-component reachability closure of the collapsed
// ownership graph. Ownership is transitive and inherited, so every
// membership check reduces to one closure lookup.
type Reach struct {
	scc   SCC
	reach []bitset // reach[c] = components reachable from c, c excluded
}

// BuildReach computes the closure in one pass. Tarjan emits components in
// reverse topological order, so every cross-component edge points at an
// already-finished component.
func BuildReach(g *Graph, scc SCC) Reach {
	nc := len(scc.Comps)
	r := Reach{
		scc:   scc,
		reach: make([]bitset, nc),
	}
	for c := range nc {
		rc := newBitset(nc)
		for _, v := range scc.Comps[c] {
			for _, w := range g.Edges[int(v)] {
				d := scc.CompOf[int(w)]
				if int(d) == c {
					continue
				}
				rc.set(d)
				rc.or(r.reach[d])
			}
		}
		r.reach[c] = rc
	}
	return r
}

// Owns reports whether a owns b: same component (mutual-ownership cluster,
// self-ownership included) or b's component reachable from a's.
func (r *Reach) Owns(a, b NodeID) bool {
	ca, cb := r.scc.CompOf[int(a)], r.scc.CompOf[int(b)]
	if ca == cb {
		return true
	}
	return r.reach[ca].has(cb)
}

// Related reports whether any ownership relation connects a and b at all:
// their closures (selves included) overlap in either direction. When false,
// the two types are disjoint in the ownership graph.
func (r *Reach) Related(a, b NodeID) bool {
	ca, cb := r.scc.CompOf[int(a)], r.scc.CompOf[int(b)]
	if ca == cb || r.reach[ca].has(cb) || r.reach[cb].has(ca) {
		return true
	}
	return r.reach[ca].intersects(r.reach[cb])
}
