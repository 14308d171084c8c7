// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, parser and lowering passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with a stable string
//     form and a Class() mapping onto the user-facing error families
//     (SyntaxError, TokenMissingError, ScopeError, CompileError, Deprecation).
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span: the canonical source.Span pointing to the issue.
//   - Notes: optional secondary spans/messages for additional context.
//   - Fixes: optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "value
// bound here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// lowering pass, for example, constructs a ReportBuilder via NewReportBuilder
// (or the helper functions ReportError/ReportWarning/ReportInfo) and chains
// WithNote before calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a
// Bag, which supports sorting, deduplication and merging.
//
// Deprecation notices are ordinary SevWarning diagnostics; only SevError
// aborts the translation unit.
//
// # Consumers
//
//   - internal/diagfmt: renders diagnostics into pretty/json/short formats.
//   - internal/driver: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should avoid side effects,
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
