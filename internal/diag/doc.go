// Package diag holds the translator-scoped error sink.
//
// Every backend stage reports failure as a boolean result and appends a
// human-readable description to the sink. The sink is ordered, append-only
// and never reset for the lifetime of a translator instance; callers read
// it after a failed stage to decide whether to retry, abort or fall back
// to another backend.
package diag
