package ownership

import (
	"fmt"
	"strings"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
)

type validator struct {
	decls    []decl.Decl
	byName   map[string]*decl.Decl
	g        *Graph
	scc      SCC
	reach    *Reach
	flat     *flattener
	reporter diag.Reporter

	// badComps maps an unsanctioned cyclic component to the owns-list
	// entries its members are missing.
	badComps map[int32][]cyclePair
	// outerBlame maps an unsanctioned component to the first declaration
	// outside it (input order) that stores a member of the component,
	// together with the stored type. Cycle violations are attributed there
	// when such a declaration exists.
	outerBlame map[int32]blameSite
}

type cyclePair struct {
	member  NodeID
	missing NodeID
}

type blameSite struct {
	declName   string
	storedType string
}

func (v *validator) run() {
	v.collectBadComps()
	v.checkMembers()
	v.reportCycleViolations()
}

// collectBadComps finds mutual-ownership clusters whose members do not all
// sanction the cycle. A cycle is sanctioned when every member's owns-list
// (after value flattening) spells out the whole cluster, itself included;
// `@owns(A,B) A` with `@owns(B,A) B` is valid, `@owns(B) A` with
// `@owns(A) B` is not.
func (v *validator) collectBadComps() {
	for ci, comp := range v.scc.Comps {
		if len(comp) < 2 {
			continue
		}
		var missing []cyclePair
		for _, m := range comp {
			for _, n := range comp {
				if !v.g.HasEdge(m, n) {
					missing = append(missing, cyclePair{member: m, missing: n})
				}
			}
		}
		if len(missing) > 0 {
			if v.badComps == nil {
				v.badComps = make(map[int32][]cyclePair)
			}
			v.badComps[int32(ci)] = missing
		}
	}
}

// checkMembers validates every stored member of every annotated reference
// declaration, in declaration order. Unannotated owners opted out of the
// check entirely; their members are only reachable through the warnings
// their own owners emit.
func (v *validator) checkMembers() {
	for i := range v.decls {
		d := &v.decls[i]
		if !d.IsReference() || !d.Annotated {
			continue
		}
		from, ok := v.g.Idx.NameToID[d.Name]
		if !ok {
			continue
		}
		for _, m := range d.Members {
			v.checkMember(d, from, m)
		}
	}
}

func (v *validator) checkMember(d *decl.Decl, from NodeID, m decl.Member) {
	target, ok := v.byName[m.Type]
	if !ok {
		diag.ReportError(v.reporter, diag.OwnUnknownType, d.Name,
			fmt.Sprintf("member %q of %q has undeclared type %q", m.Name, d.Name, m.Type)).
			WithRelated(m.Type).
			Emit()
		return
	}

	if target.IsValue() {
		res := v.flat.flatten(target)
		if res.tooDeep {
			diag.ReportError(v.reporter, diag.OwnValueChainTooDeep, d.Name,
				fmt.Sprintf("member %q of %q nests value types beyond depth %d", m.Name, d.Name, v.flat.maxDepth)).
				WithRelated(target.Name).
				Emit()
		}
		if res.unannotated {
			diag.ReportWarning(v.reporter, diag.OwnUnannotated, d.Name,
				fmt.Sprintf("member %q of %q goes through unannotated value type %q; references carried through it are unchecked", m.Name, d.Name, target.Name)).
				WithRelated(target.Name).
				Emit()
		}
		// The value type itself needs no owns-list entry, but every
		// reference it carries does.
		for _, r := range res.refs {
			carried := v.byName[v.g.Idx.IDToName[int(r)]]
			v.checkRefTarget(d, from, m, carried, true)
		}
		return
	}

	v.checkRefTarget(d, from, m, target, m.ViaValue)
}

func (v *validator) checkRefTarget(d *decl.Decl, from NodeID, m decl.Member, target *decl.Decl, viaValue bool) {
	to, ok := v.g.Idx.NameToID[target.Name]
	if !ok {
		return
	}

	v.noteOuterBlame(d, from, to, target.Name)

	if !target.Annotated {
		via := ""
		if viaValue {
			via = " (reached through a value type)"
		}
		diag.ReportWarning(v.reporter, diag.OwnUnannotated, d.Name,
			fmt.Sprintf("member %q of %q stores unannotated type %q%s; the dependency is unchecked", m.Name, d.Name, target.Name, via)).
			WithRelated(target.Name).
			Emit()
		return
	}

	if v.reach.Owns(from, to) {
		return
	}

	if v.reach.Related(from, to) {
		diag.ReportError(v.reporter, diag.OwnUnexpectedRef, d.Name,
			fmt.Sprintf("member %q of %q stores %q, which its owns-list does not cover", m.Name, d.Name, target.Name)).
			WithRelated(target.Name).
			Emit()
		return
	}
	diag.ReportError(v.reporter, diag.OwnDisjoint, d.Name,
		fmt.Sprintf("member %q of %q stores %q, which has no ownership relation to %q", m.Name, d.Name, target.Name, d.Name)).
		WithRelated(target.Name).
		Emit()
}

// noteOuterBlame records the first declaration outside an unsanctioned
// cluster that stores into it. Ties between several outer declarations go to
// the first one in input order.
func (v *validator) noteOuterBlame(d *decl.Decl, from, to NodeID, storedType string) {
	compTo := v.scc.CompOf[int(to)]
	if _, bad := v.badComps[compTo]; !bad {
		return
	}
	if v.scc.CompOf[int(from)] == compTo {
		return
	}
	if v.outerBlame == nil {
		v.outerBlame = make(map[int32]blameSite)
	}
	if _, seen := v.outerBlame[compTo]; !seen {
		v.outerBlame[compTo] = blameSite{declName: d.Name, storedType: storedType}
	}
}

// reportCycleViolations emits one finding per unsanctioned cluster, after
// the member pass so outer blame sites are known.
func (v *validator) reportCycleViolations() {
	for ci := range v.scc.Comps {
		missing, bad := v.badComps[int32(ci)]
		if !bad {
			continue
		}
		comp := v.scc.Comps[ci]

		names := make([]string, len(comp))
		for i, id := range comp {
			names[i] = v.g.Idx.IDToName[int(id)]
		}
		summary := strings.Join(names, " -> ")

		subject := v.g.Idx.IDToName[int(missing[0].member)]
		related := otherMember(names, subject)
		if site, ok := v.outerBlame[int32(ci)]; ok {
			subject = site.declName
			related = site.storedType
		}

		b := diag.ReportError(v.reporter, diag.OwnRetainCycle, subject,
			fmt.Sprintf("retain cycle %s is only partially declared", summary)).
			WithRelated(related)
		for _, name := range names {
			entries := v.missingEntries(missing, name)
			if len(entries) > 0 {
				b.WithNote(name, fmt.Sprintf("owns-list of %q is missing: %s", name, strings.Join(entries, ", ")))
			}
		}
		b.Emit()
	}
}

func (v *validator) missingEntries(missing []cyclePair, member string) []string {
	var out []string
	for _, p := range missing {
		if v.g.Idx.IDToName[int(p.member)] == member {
			out = append(out, v.g.Idx.IDToName[int(p.missing)])
		}
	}
	return out
}

func otherMember(names []string, subject string) string {
	for _, n := range names {
		if n != subject {
			return n
		}
	}
	return subject
}
