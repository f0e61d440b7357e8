package keccak

import (
	"runtime"
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
)

// The dispatch layer is a process-wide, lazily-initialized capability
// tuple. It is read by the tree driver to decide how wide a leaf batch it
// can hand to P1600x2/x4/x8, and it can be narrowed by a caller (for
// testing, or to dodge a thermal/frequency throttle on wide vector
// instructions) and later restored with EnableAll.
//
// Mutating these flags while a kt12.Instance is live is undefined
// behavior; the caller owns the exclusion. generation exists so a caller
// that forgot to synchronize can at least be told "you did", rather than
// silently mixing batch widths mid-computation. See kt12.ErrCapabilityRace.
var (
	detectedAVX512 bool
	detectedAVX2   bool
	detectedSSSE3  bool

	enabledAVX512 atomic.Bool
	enabledAVX2   atomic.Bool
	enabledSSSE3  atomic.Bool

	generation atomic.Uint64
)

func init() {
	switch runtime.GOARCH {
	case "amd64":
		detectedAVX512 = cpuid.CPU.Has(cpuid.AVX512F) && cpuid.CPU.Has(cpuid.AVX512VL)
		detectedAVX2 = cpuid.CPU.Has(cpuid.AVX2)
		detectedSSSE3 = cpuid.CPU.Has(cpuid.SSSE3)
	case "arm64":
		// No 8-wide kernel is defined for NEON/FEAT_SHA3 in this build;
		// SHA3 availability gates the 2-wide and 4-wide paths only.
		detectedAVX512 = false
		detectedAVX2 = cpuid.CPU.Has(cpuid.SHA3)
		detectedSSSE3 = cpuid.CPU.Has(cpuid.SHA3)
	}
	enabledAVX512.Store(true)
	enabledAVX2.Store(true)
	enabledSSSE3.Store(true)
}

// HasTimes8 reports whether an 8-wide batch (P1600x8) should be preferred.
func HasTimes8() bool {
	return detectedAVX512 && enabledAVX512.Load()
}

// HasTimes4 reports whether a 4-wide batch (P1600x4) should be preferred.
func HasTimes4() bool {
	return HasTimes8() || (detectedAVX2 && enabledAVX2.Load())
}

// HasTimes2 reports whether a 2-wide batch (P1600x2) should be preferred.
func HasTimes2() bool {
	return HasTimes4() || (detectedSSSE3 && enabledSSSE3.Load())
}

// DisableAVX512 narrows the capability tuple to stop offering 8-wide
// batches. Returns true if this changed the tuple.
func DisableAVX512() bool {
	if enabledAVX512.CompareAndSwap(true, false) {
		generation.Add(1)
		return true
	}
	return false
}

// DisableAVX2 clears the AVX2 flag. 4-wide batches are still offered while
// HasTimes8 reports true, so this stops them only once DisableAVX512 has
// also been called. Returns true if this changed the tuple.
func DisableAVX2() bool {
	if enabledAVX2.CompareAndSwap(true, false) {
		generation.Add(1)
		return true
	}
	return false
}

// DisableSSSE3 clears the SSSE3 flag. 2-wide batches are still offered
// while HasTimes4 reports true. Returns true if this changed the tuple.
func DisableSSSE3() bool {
	if enabledSSSE3.CompareAndSwap(true, false) {
		generation.Add(1)
		return true
	}
	return false
}

// EnableAll restores the capability tuple to "everything this host
// supports". Returns true if this changed the tuple.
func EnableAll() bool {
	changed := false
	if enabledAVX512.CompareAndSwap(false, true) {
		changed = true
	}
	if enabledAVX2.CompareAndSwap(false, true) {
		changed = true
	}
	if enabledSSSE3.CompareAndSwap(false, true) {
		changed = true
	}
	if changed {
		generation.Add(1)
	}
	return changed
}

// Generation returns the current capability-tuple generation counter. It
// increments every time Disable*/EnableAll actually changes the tuple.
// Callers that snapshot it at the start of an operation can detect a
// concurrent capability mutation by noticing the value has moved.
func Generation() uint64 {
	return generation.Load()
}
