// Package ownership validates ownership annotations over an extracted
// declaration set.
//
// The model: reference types may hold strong references only to the types
// their @owns annotation permits. Ownership is transitive (owning B means
// owning everything B owns) and mutual-ownership cycles are legal only when
// every participant spells the whole cluster out. Value types are not owners
// themselves; they forward the requirements of whatever references they
// carry to the reference type that stores them.
//
// One run of Check is a pure function of its input:
//
//  1. duplicate declarations are filtered (first one wins);
//  2. the directed ownership graph is built from owns-lists, flattening
//     value-type entries and dropping edges to unknown types;
//  3. strongly connected components collapse declared cycles into single
//     validation units and a reachability closure is computed over the
//     condensation;
//  4. every stored member of every annotated reference declaration is
//     checked against the closure; half-declared cycles are reported once
//     per cluster, attributed to the outermost declaration storing into the
//     cluster when one exists.
//
// All irregularities in the input surface as diag.Diagnostic values through
// the configured Reporter; Check returns an error only for internal
// invariant violations. Runs keep no state, so independent calls may run
// concurrently without coordination.
package ownership
