// Package classify implements the filing reconciliation and status
// classification engine for permit applications.
//
// The package is a pure library: every function is total and stateless, and
// every invocation re-derives its output from its input. Records come from the
// permit store already filtered by property; the caller owns search and status
// filter state and threads it through as plain arguments.
//
// Three layers, in dependency order:
//   - status decoding: raw agency code or free-text label -> display label
//   - filing-number parsing: application number -> (prefix, suffix) family key
//   - display selection: filtered records -> deduplicated top-level rows plus
//     per-row related filings
package classify

import "time"

// Source identifies which filing track produced a record. Status codes are
// only meaningful in combination with the source.
type Source string

const (
	// SourceLegacyLedger is the legacy tracking system; statuses are one or
	// two letter codes decoded through a fixed table.
	SourceLegacyLedger Source = "legacy-ledger"
	// SourceModernFiling is the current filing system; statuses are free-text
	// labels that only need light normalization.
	SourceModernFiling Source = "modern-filing-system"
)

// Record is the slice of an application the classifier needs. Descriptive
// fields (cost, applicant, description) are passengers the caller keeps on its
// own types; the classifier never sees them.
type Record struct {
	ID         string
	Number     string
	Source     Source
	RawStatus  string
	FilingDate *time.Time
}
