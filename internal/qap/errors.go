package qap

import "errors"

// Sentinel errors of the QAP core. Callers match them with errors.Is;
// every failure path wraps one of these with positional context.
var (
	// ErrMalformedInstance — flow/distance matrices missing, non-square,
	// of mismatched dimension, or carrying negative entries.
	ErrMalformedInstance = errors.New("malformed instance")

	// ErrIndexOutOfRange — a position outside [0, n) passed to an operator.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStaleFitness — fitness read after a mutating operation and before
	// EvaluateFitness. A usage defect, never silently recomputed.
	ErrStaleFitness = errors.New("stale fitness")

	// ErrInvalidPermutation — an assignment that is not a permutation of
	// [0, n). Unreachable through the defined operators; if detected it is
	// an operator bug and must fail loudly, not be repaired.
	ErrInvalidPermutation = errors.New("invalid permutation")
)
