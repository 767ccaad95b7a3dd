// Package engine implements the charge-and-spin machine behind the slot games:
// a held lever charges a power level, the captured power sets how long the
// reels run, and the final outcome is reported once when the run ends.
//
// The package is single-threaded and tick-driven. Time comes from an injected
// core.Clock, so every transition can be driven by a manual clock in tests.
package engine

import "errors"

// Sentinel errors. Callers wrap them with context and match with errors.Is.
var (
	// ErrInvalidIndex is returned when a center index is outside the symbol set.
	ErrInvalidIndex = errors.New("engine: invalid index")

	// ErrInvalidTransition is returned when an operation is not allowed in the
	// current state (e.g. BeginCharge while a run is in progress).
	ErrInvalidTransition = errors.New("engine: invalid transition")

	// ErrInvalidConfig is returned for unusable machine parameters.
	ErrInvalidConfig = errors.New("engine: invalid config")
)
