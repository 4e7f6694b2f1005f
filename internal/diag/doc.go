// Package diag defines the core diagnostic model shared by the ownership
// validator and the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the ownership analysis.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// orchestration in internal/driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Subject – the declared type the finding is attributed to.
//   - Related – optional second type involved in the finding.
//   - Notes – optional secondary subjects/messages for additional context.
//
// The validator consumes an already-extracted declaration set and therefore
// carries no source positions; Subject/Related names are the attribution the
// core provides, and whatever front end produced the declaration documents is
// responsible for mapping them back to source locations.
//
// Notes should be used sparingly: each note must add new context (e.g. "first
// declared in decls.yaml") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Passes should use a diag.Reporter to decouple emission from storage. The
// validator constructs a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo) and chains WithRelated /
// WithNote before calling Emit.
//
// When no additional metadata is needed, passes may call Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a
// Bag, which supports sorting, deduplication and merging.
//
// Keep the data model deterministic: any new fields should avoid side effects,
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
