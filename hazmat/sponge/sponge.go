// Package sponge implements the rate-168/capacity-32 Keccak-p[1600,12]
// sponge that KangarooTwelve builds every leaf and the final node on top
// of. It keeps the lower-level byteIOIndex/phase state machine across
// calls, so the tree driver can leave a partial chunk in its queue node
// between Updates, and it offers AdvanceToLaneBoundary for the tree-mode
// transition.
package sponge

import (
	"github.com/zeebo/k12/hazmat/keccak"
	"github.com/zeebo/k12/internal/mem"
)

// Rate is the number of bytes of the 200-byte state used for input/output
// per block. Capacity is the remaining 2*security bits (32 bytes) held back.
const (
	Rate     = 168
	Capacity = 200 - Rate
)

// Phase is the one-way direction of a Sponge: ABSORBING until AbsorbLast
// is called, then SQUEEZING forever after.
type Phase int

const (
	Absorbing Phase = iota
	Squeezing
)

// Sponge holds a single Keccak-p[1600,12] state plus the bookkeeping the
// spec's data model requires: byteIOIndex is the next free byte offset
// within the rate window, and phase tracks the one-way ABSORBING ->
// SQUEEZING transition. The zero value is a freshly initialized sponge,
// ready to absorb.
type Sponge struct {
	state       [200]byte
	byteIOIndex int
	phase       Phase
}

// Reset returns s to a freshly initialized, ABSORBING state.
func (s *Sponge) Reset() {
	clear(s.state[:])
	s.byteIOIndex = 0
	s.phase = Absorbing
}

// Phase reports whether s is still absorbing or now squeezing.
func (s *Sponge) Phase() Phase {
	return s.phase
}

// Absorb XORs data into the rate window, permuting the state whenever the
// window fills, until data is exhausted; whole blocks starting at offset 0
// go through absorbFastLoop. It panics if s is
// not ABSORBING. The sponge itself has no notion of a recoverable
// "wrong phase" error; that belongs to the tree driver, which always
// calls Absorb only while its own state machine says ABSORBING.
func (s *Sponge) Absorb(data []byte) {
	if s.phase != Absorbing {
		panic("sponge: Absorb called while SQUEEZING")
	}

	for len(data) > 0 {
		if s.byteIOIndex == 0 && len(data) >= Rate {
			n := s.absorbFastLoop(data)
			data = data[n:]
			continue
		}

		n := min(Rate-s.byteIOIndex, len(data))
		mem.XORInPlace(s.state[s.byteIOIndex:s.byteIOIndex+n], data[:n])
		s.byteIOIndex += n
		data = data[n:]
		if s.byteIOIndex == Rate {
			keccak.P1600(&s.state)
			s.byteIOIndex = 0
		}
	}
}

// absorbFastLoop XORs whole rate-sized blocks directly out of data and
// permutes after each, returning the number of bytes consumed (always a
// multiple of Rate). It requires byteIOIndex == 0 on entry. This is the
// batched-absorb primitive, grounded on KeccakP1600_12rounds_FastLoop_Absorb in
// KeccakP-1600-AVX512-plainC.c: the byte-by-byte path above would produce
// identical output, just slower.
func (s *Sponge) absorbFastLoop(data []byte) int {
	n := 0
	for len(data)-n >= Rate {
		block := data[n : n+Rate]
		mem.XORInPlace(s.state[:Rate], block)
		keccak.P1600(&s.state)
		n += Rate
	}
	return n
}

// AdvanceToLaneBoundary advances byteIOIndex to the next multiple of 8
// without touching any state bytes, so that whatever is absorbed next
// lands on a 64-bit lane boundary. KangarooTwelve uses this exactly once,
// between the first-chunk separator and the first chaining value, during
// its tree-mode transition. It panics if not ABSORBING.
func (s *Sponge) AdvanceToLaneBoundary() {
	if s.phase != Absorbing {
		panic("sponge: AdvanceToLaneBoundary called while SQUEEZING")
	}
	s.byteIOIndex = (s.byteIOIndex + 7) &^ 7
}

// AbsorbLast XORs the domain-separation/padding delimiter d (a nonzero
// byte) at the current offset, completes the multi-rate padding, and
// transitions the sponge to SQUEEZING. d must be nonzero.
func (s *Sponge) AbsorbLast(d byte) {
	if s.phase != Absorbing {
		panic("sponge: AbsorbLast called while SQUEEZING")
	}
	if d == 0 {
		panic("sponge: AbsorbLast delimiter must be nonzero")
	}

	s.state[s.byteIOIndex] ^= d
	if d >= 0x80 && s.byteIOIndex == Rate-1 {
		keccak.P1600(&s.state)
	}
	s.state[Rate-1] ^= 0x80
	keccak.P1600(&s.state)
	s.byteIOIndex = 0
	s.phase = Squeezing
}

// Squeeze fills out by extracting sequentially from the rate window,
// permuting whenever the window is exhausted. It panics if s is still
// ABSORBING. Callers that might reach Squeeze without having finalized
// must call AbsorbLast(0x01) first (the generic SHA3-style pad), which
// the tree driver never needs since it always finalizes explicitly.
func (s *Sponge) Squeeze(out []byte) {
	if s.phase != Squeezing {
		panic("sponge: Squeeze called while ABSORBING")
	}

	for len(out) > 0 {
		if s.byteIOIndex == Rate {
			keccak.P1600(&s.state)
			s.byteIOIndex = 0
		}
		n := copy(out, s.state[s.byteIOIndex:Rate])
		s.byteIOIndex += n
		out = out[n:]
	}
}
