package ownership

import (
	"fmt"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
)

// Options configure one validation run.
type Options struct {
	// Reporter receives every finding. Nil discards them, which is only
	// useful when the caller cares about Result alone.
	Reporter diag.Reporter
	// MaxValueDepth caps value-type owns-chain flattening; 0 means
	// DefaultMaxValueDepth.
	MaxValueDepth int
}

// Result carries the artefacts of one run for callers that want to inspect
// the graph (the CLI graph command, tests). Diagnostics travel through the
// Reporter, never through Result.
type Result struct {
	// Decls are the declarations retained after duplicate filtering,
	// in input order.
	Decls []decl.Decl
	Graph Graph
	SCC   SCC
	Reach Reach
}

// Check validates a declaration set against its ownership annotations.
//
// The run is a pure function of its input: it builds the ownership graph,
// collapses strongly connected components, computes the reachability
// closure and validates every stored member, emitting findings through
// opts.Reporter. Malformed input (duplicate names, unknown types, cyclic
// annotations) is always converted into diagnostics; the returned error is
// reserved for internal invariant violations and means the run's output
// must not be trusted.
func Check(decls []decl.Decl, opts Options) (Result, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	retained := filterDuplicates(decls, reporter)

	byName := make(map[string]*decl.Decl, len(retained))
	for i := range retained {
		byName[retained[i].Name] = &retained[i]
	}

	idx := BuildIndex(retained)
	flat := newFlattener(byName, idx, reporter, opts.MaxValueDepth)
	g := BuildGraph(retained, idx, byName, flat, reporter)

	scc := ComputeSCC(g.Edges)
	if err := scc.Verify(len(idx.IDToName)); err != nil {
		return Result{}, fmt.Errorf("ownership: %w", err)
	}
	reach := BuildReach(&g, scc)

	v := &validator{
		decls:    retained,
		byName:   byName,
		g:        &g,
		scc:      scc,
		reach:    &reach,
		flat:     flat,
		reporter: reporter,
	}
	v.run()

	return Result{
		Decls: retained,
		Graph: g,
		SCC:   scc,
		Reach: reach,
	}, nil
}

// filterDuplicates keeps the first declaration per name and reports the rest.
// Later analysis only ever sees the retained set.
func filterDuplicates(decls []decl.Decl, reporter diag.Reporter) []decl.Decl {
	retained := make([]decl.Decl, 0, len(decls))
	first := make(map[string]*decl.Decl, len(decls))
	for i := range decls {
		d := decls[i]
		if prev, dup := first[d.Name]; dup {
			b := diag.ReportError(reporter, diag.OwnDuplicateDecl, d.Name,
				fmt.Sprintf("duplicate declaration of %q", d.Name))
			if prev.Origin.Doc != "" {
				b.WithNote(prev.Name, fmt.Sprintf("first declared in %s (entry %d)", prev.Origin.Doc, prev.Origin.Index))
			} else {
				b.WithNote(prev.Name, "first declaration wins")
			}
			b.Emit()
			continue
		}
		retained = append(retained, d)
		first[d.Name] = &retained[len(retained)-1]
	}
	return retained
}
