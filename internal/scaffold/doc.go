// Package scaffold plans and applies the idempotent parts of the pipeline
// that only create things: the project directory skeleton derived from the
// blueprint, and the Stage A templates seeded by start. Existing targets
// are reported as skipped and never modified.
package scaffold
