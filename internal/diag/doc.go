// Package diag defines the diagnostic model shared by the lowering and
// borrow-checking passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture the
//     findings a pass produces (primarily borrow-check errors).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity — tri-level enum (Info, Warning, Error), see severity.go.
//   - Code — compact numeric identifier (see codes.go) with a stable string form.
//   - Message — human oriented text; keep it short and actionable.
//   - Primary span — the canonical source.Span pointing to the issue.
//   - Notes — optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "moved
// here") rather than repeat the diagnostic message.
//
// # Emitting diagnostics
//
// Passes use a diag.Reporter to decouple emission from storage: construct a
// ReportBuilder via NewReportBuilder (or the ReportError/ReportWarning/ReportInfo
// shortcuts), chain WithNote, and call Emit. diag.BagReporter adapts a Reporter
// onto a Bag, which supports sorting, deduplication, and filtering.
//
// # Consumers
//
//   - internal/borrowck/diagbridge.go renders BorrowError into Diagnostic for
//     the CLI only; the core borrow-checking API never returns Diagnostic.
//   - cmd/wispc prints each Diagnostic's code ID and message directly; it
//     does not call FormatGoldenDiagnostics/FormatShortDiagnostics, which
//     render stable single-line-per-entry output.
package diag
