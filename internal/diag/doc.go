// Package diag defines user-facing diagnostics: severities, stable codes,
// the Bag that collects them and the Reporter contract every phase reports
// through.
//
// Codes are grouped by phase:
//
//	LEX1xxx  lexical errors
//	SYN2xxx  syntax errors
//	SEM3xxx  name resolution and type inference
//	IO4xxx   file system
//	PRJ5xxx  project manifest
//	OBS6xxx  observability (timings)
package diag
