// Package diag defines the diagnostic model shared by loading, detection and
// parsing of configuration dumps.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced while a dump is loaded, its dialect detected and its lines parsed.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt;
// orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the offending line.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "scope
// opened here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers accept a diag.Reporter to decouple emission from storage. The
// line parsers call Reporter.Report directly; diag.BagReporter aggregates
// diagnostics into a Bag, which supports sorting, merging and severity
// queries. Callers that only want the tree pass a nil Reporter.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/json forms.
//   - internal/driver: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should honour the package's
// layering constraints and avoid side effects, so the CLI and future tooling can
// safely serialise diagnostics for caching and testing.
package diag
