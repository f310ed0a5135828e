// Package config holds the small set of process-wide knobs the type
// algebra and its consumers read. Mirrors funvibe/funxy's
// internal/config: package-level vars for mode flags plus a handful of
// named constants, nothing heavier.
package config

// IsTestMode normalizes volatile, auto-generated identifiers in
// String() output (type variable names render as "T?") so golden tests
// stay deterministic across runs. Set once at process startup by a
// test harness.
var IsTestMode = false

// IsLSPMode normalizes output for a hover/tooltip-style consumer the
// same way as IsTestMode (type variable names render as "T?"). Set
// once at startup by a language-server-style consumer.
var IsLSPMode = false

// RecursionDepthLimit bounds the recursive transformer (C4): above
// this depth it returns its input unchanged rather than recurse
// further, per spec.md §4.3 and §7 (recursion-budget-exhausted is a
// recoverable failure, not an invariant violation). The
// requiresSpecialization predicate (C4.5) uses its own bound of twice
// this value, past which it reports false (no specialization needed).
const RecursionDepthLimit = 64

// DefaultObjectClassName and DefaultTypeClassName identify the two
// metaclass roots every MRO implicitly terminates at or passes
// through, mirroring CPython's `object` and `type`.
const (
	DefaultObjectClassName = "object"
	DefaultTypeClassName   = "type"
)
