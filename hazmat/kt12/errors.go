package kt12

import "errors"

// ErrWrongPhase is returned when Update, Final, or Squeeze is called in a
// phase that forbids it: Update/Final after the instance has left
// ABSORBING, or Squeeze outside SQUEEZING (including after a fixed-length
// Final, which has already written its output).
var ErrWrongPhase = errors.New("kt12: operation not valid in current phase")

// ErrCapabilityRace is returned when the process-wide capability tuple in
// hazmat/keccak changed generation since this Instance was created.
// Mutating the tuple concurrently with a live Instance is undefined
// behavior; this is a best-effort tripwire, not a guarantee, and the
// caller still owns the exclusion.
var ErrCapabilityRace = errors.New("kt12: capability flags changed while this instance was live")
