// Package kt12 implements the KangarooTwelve tree driver: the state
// machine that chunks a message into ChunkSize leaves, hashes each leaf to
// a 32-byte chaining value on the Keccak-p[1600,12] sponge, and absorbs
// those chaining values into a final node alongside the length-encoded
// tree trailer.
package kt12

import (
	"github.com/zeebo/k12/hazmat/keccak"
	"github.com/zeebo/k12/hazmat/sponge"
)

// ChunkSize is the number of message bytes hashed into each leaf node
// before it is folded into a 32-byte chaining value.
const ChunkSize = 8192

const cvSize = 32

// Domain-separation bytes. firstChunkSeparator marks the end of the
// direct-absorption first chunk once a second chunk exists. suffixLeaf
// finalizes every non-final leaf. finalSuffixSingleNode finalizes a
// message that never grew past one chunk; finalSuffixTree finalizes one
// that did.
const (
	firstChunkSeparator   = 0x03
	suffixLeaf            = 0x0B
	finalSuffixSingleNode = 0x07
	finalSuffixTree       = 0x06
)

type phase int

const (
	absorbing phase = iota
	final
	squeezing
)

// Instance is a single KangarooTwelve computation in progress. The zero
// value is not valid; construct one with New.
type Instance struct {
	finalNode sponge.Sponge
	queueNode sponge.Sponge

	fixedOutputLength uint64
	blockNumber       uint64
	queueAbsorbedLen  int
	phase             phase

	capGeneration uint64
}

// New returns an Instance ready to absorb message bytes. outputLength is
// the number of bytes Final will produce directly; pass 0 to instead
// leave the instance in arbitrary-length SQUEEZING mode after Final, to
// be drained by repeated calls to Squeeze.
func New(outputLength uint64) *Instance {
	return &Instance{
		fixedOutputLength: outputLength,
		capGeneration:     keccak.Generation(),
	}
}

func (i *Instance) checkGeneration() error {
	if keccak.Generation() != i.capGeneration {
		return ErrCapabilityRace
	}
	return nil
}

// Update absorbs more message bytes. It may be called any number of times
// while the instance is ABSORBING.
func (i *Instance) Update(data []byte) error {
	if i.phase != absorbing {
		return ErrWrongPhase
	}
	if err := i.checkGeneration(); err != nil {
		return err
	}
	i.absorb(data)
	return nil
}

// absorb runs the shared chunking state machine used by both Update and
// Final (for the customization string). It assumes the phase/generation
// checks have already happened.
func (i *Instance) absorb(input []byte) {
	// Still inside the first chunk: feed finalNode directly. Only once a
	// second chunk is known to exist (more input remains once the first
	// chunk is full) do we pay for the separator and the tree-mode switch.
	if i.blockNumber == 0 {
		n := min(ChunkSize-i.queueAbsorbedLen, len(input))
		i.finalNode.Absorb(input[:n])
		input = input[n:]
		i.queueAbsorbedLen += n

		if i.queueAbsorbedLen == ChunkSize && len(input) != 0 {
			i.queueAbsorbedLen = 0
			i.blockNumber = 1
			i.finalNode.Absorb([]byte{firstChunkSeparator})
			i.finalNode.AdvanceToLaneBoundary()
		}
	} else if i.queueAbsorbedLen != 0 {
		// A partial leaf is sitting in the queue node from a prior call;
		// top it off before considering wide batches.
		n := min(ChunkSize-i.queueAbsorbedLen, len(input))
		i.queueNode.Absorb(input[:n])
		input = input[n:]
		i.queueAbsorbedLen += n

		if i.queueAbsorbedLen == ChunkSize {
			i.queueAbsorbedLen = 0
			i.finishLeaf()
		}
	}

	// Drain whole leaves widest-first: each loop exhausts every batch of
	// that width before falling back to the next, so a message that's
	// exactly aligned on the hardware's natural width never touches a
	// narrower path.
	for keccak.HasTimes8() && len(input) >= 8*ChunkSize {
		i.processBatch(8, input[:8*ChunkSize])
		input = input[8*ChunkSize:]
	}
	for keccak.HasTimes4() && len(input) >= 4*ChunkSize {
		i.processBatch(4, input[:4*ChunkSize])
		input = input[4*ChunkSize:]
	}
	for keccak.HasTimes2() && len(input) >= 2*ChunkSize {
		i.processBatch(2, input[:2*ChunkSize])
		input = input[2*ChunkSize:]
	}

	for len(input) > 0 {
		n := min(ChunkSize, len(input))
		i.queueNode.Reset()
		i.queueNode.Absorb(input[:n])
		input = input[n:]

		if n == ChunkSize {
			i.finishLeaf()
		} else {
			i.queueAbsorbedLen = n
		}
	}
}

// finishLeaf finalizes the queue node's completed leaf, squeezes its
// chaining value, absorbs it into the final node, and counts the leaf.
func (i *Instance) finishLeaf() {
	var cv [cvSize]byte
	i.queueNode.AbsorbLast(suffixLeaf)
	i.queueNode.Squeeze(cv[:])
	i.finalNode.Absorb(cv[:])
	i.blockNumber++
}

// processBatch hashes n whole leaves (n*ChunkSize bytes of data) in
// lockstep on the matching parallel permutation, absorbs all n chaining
// values into the final node, and advances blockNumber by n.
func (i *Instance) processBatch(n int, data []byte) {
	cvs := make([]byte, n*cvSize)
	switch n {
	case 8:
		computeLeafCVsX8(data, cvs)
	case 4:
		computeLeafCVsX4(data, cvs)
	case 2:
		computeLeafCVsX2(data, cvs)
	default:
		panic("kt12: unsupported batch width")
	}
	i.finalNode.Absorb(cvs)
	i.blockNumber += uint64(n)
}

// Final absorbs the customization string and its length encoding,
// finalizes the tree, and either returns the fixed-length output directly
// (when New was given a nonzero outputLength) or leaves the instance in
// SQUEEZING mode for Squeeze to drain.
func (i *Instance) Final(customization []byte) ([]byte, error) {
	if i.phase != absorbing {
		return nil, ErrWrongPhase
	}
	if err := i.checkGeneration(); err != nil {
		return nil, err
	}

	if len(customization) != 0 {
		i.absorb(customization)
	}
	i.absorb(rightEncode(uint64(len(customization))))

	var suffix byte
	if i.blockNumber == 0 {
		suffix = finalSuffixSingleNode
	} else {
		if i.queueAbsorbedLen != 0 {
			i.finishLeaf()
			i.queueAbsorbedLen = 0
		}
		i.blockNumber--
		trailer := rightEncode(i.blockNumber)
		trailer = append(trailer, 0xFF, 0xFF)
		i.finalNode.Absorb(trailer)
		suffix = finalSuffixTree
	}
	i.finalNode.AbsorbLast(suffix)

	if i.fixedOutputLength != 0 {
		i.phase = final
		out := make([]byte, i.fixedOutputLength)
		i.finalNode.Squeeze(out)
		return out, nil
	}

	i.phase = squeezing
	return nil, nil
}

// Squeeze extracts n more bytes of arbitrary-length output. It is only
// valid after a Final call made with outputLength == 0.
func (i *Instance) Squeeze(n int) ([]byte, error) {
	if i.phase != squeezing {
		return nil, ErrWrongPhase
	}
	if err := i.checkGeneration(); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	i.finalNode.Squeeze(out)
	return out, nil
}

// rightEncode returns the minimal big-endian encoding of v followed by its
// own length in bytes: right_encode(0) is {0x00}; otherwise v's shortest
// byte string (no leading zero) followed by that string's length.
func rightEncode(v uint64) []byte {
	var b [9]byte
	n := 0
	for x := v; x > 0; x >>= 8 {
		n++
	}
	for k := 0; k < n; k++ {
		b[n-1-k] = byte(v >> (8 * k))
	}
	b[n] = byte(n)
	return b[:n+1]
}
