// Package k12 implements KangarooTwelve, an arbitrary-output-length hash
// function built from the Keccak-p[1600,12] permutation and a leaf-parallel
// tree construction. It is a straight extendable-output function: for any
// message and customization string it produces as many output bytes as
// the caller asks for, either all at once or streamed.
//
// The tree construction lets large messages be hashed with SIMD-width
// Keccak permutations (hazmat/keccak's P1600x2/x4/x8) instead of one state
// at a time; hazmat/kt12 is the state machine that drives it.
package k12

import (
	"errors"
	"slices"

	"github.com/zeebo/k12/hazmat/kt12"
)

// Size is the default digest size in bytes.
const Size = 32

// BlockSize is the chunk size the tree construction splits messages into.
const BlockSize = kt12.ChunkSize

// ErrZeroLengthOutput is returned by Sum when asked for zero output bytes,
// which is ambiguous between "empty output" and "switch to streaming".
// Callers that want to stream should use NewCustom and Read instead.
var ErrZeroLengthOutput = errors.New("k12: zero-length one-shot output is ambiguous")

// Sum computes K12(message, customization) and returns exactly outputLen
// bytes. It is the one-shot entry point; Hasher is the streaming one.
func Sum(message, customization []byte, outputLen int) ([]byte, error) {
	if outputLen == 0 {
		return nil, ErrZeroLengthOutput
	}

	inst := kt12.New(uint64(outputLen))
	if err := inst.Update(message); err != nil {
		return nil, err
	}
	return inst.Final(customization)
}

// Hasher is an incremental K12 instance. It implements io.Writer for
// absorbing message bytes and io.Reader for squeezing output: Write
// until the first Read, then only Read. Sum instead takes a
// non-destructive snapshot, leaving the Hasher able to accept more
// Writes afterward.
type Hasher struct {
	custom    []byte
	inst      *kt12.Instance
	finalized bool
}

// New returns a Hasher with an empty customization string.
func New() *Hasher {
	return NewCustom(nil)
}

// NewCustom returns a Hasher that will apply the given customization
// string at finalization.
func NewCustom(customization []byte) *Hasher {
	return &Hasher{
		custom: slices.Clone(customization),
		inst:   kt12.New(0),
	}
}

// Write absorbs p. It panics if called after Read, or if the process-wide
// capability flags (hazmat/keccak) were mutated while this Hasher was
// live. Both are programmer errors, not recoverable I/O failures, so
// Write never returns a non-nil error.
func (h *Hasher) Write(p []byte) (int, error) {
	if err := h.inst.Update(p); err != nil {
		panic("k12: " + err.Error())
	}
	return len(p), nil
}

// Read squeezes output. On the first call it finalizes absorption;
// subsequent calls continue squeezing from where the last call left off.
func (h *Hasher) Read(p []byte) (int, error) {
	if !h.finalized {
		if _, err := h.inst.Final(h.custom); err != nil {
			panic("k12: " + err.Error())
		}
		h.finalized = true
	}

	out, err := h.inst.Squeeze(len(p))
	if err != nil {
		panic("k12: " + err.Error())
	}
	copy(p, out)
	return len(p), nil
}

// Sum appends Size bytes of digest to b without disturbing h: a clone of
// h's unfinalized state is finalized instead, so h can still accept
// further Writes afterward. This mirrors hash.Hash.Sum, which Hasher
// otherwise satisfies except for the unbounded output length Read offers.
func (h *Hasher) Sum(b []byte) []byte {
	clone := *h.inst
	if _, err := clone.Final(h.custom); err != nil {
		panic("k12: " + err.Error())
	}
	out, err := clone.Squeeze(Size)
	if err != nil {
		panic("k12: " + err.Error())
	}
	return append(b, out...)
}

// Reset reinitializes h, retaining its customization string.
func (h *Hasher) Reset() {
	h.inst = kt12.New(0)
	h.finalized = false
}

// Size returns the default digest size in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the tree construction's chunk size.
func (h *Hasher) BlockSize() int { return BlockSize }
