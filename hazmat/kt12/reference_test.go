package kt12

import "github.com/zeebo/k12/hazmat/sponge"

// referenceK12 is a second, independent implementation of the tree
// construction, used only by tests. It processes the whole input in one
// pass, slicing S = M || C || right_encode(|C|) into ChunkSize leaves
// directly, with no byteIOIndex/queueAbsorbedLen bookkeeping and no
// batching. Ported from KangarooTwelve_Update/_Final's control flow in
// the reference C sources, not from Instance.absorb, so a bug in the
// streaming state machine's chunk accounting has to reproduce itself
// independently here to go undetected.
func referenceK12(msg, custom []byte, outLen int) []byte {
	s := append(append([]byte{}, msg...), custom...)
	s = append(s, rightEncode(uint64(len(custom)))...)

	if len(s) <= ChunkSize {
		var node sponge.Sponge
		node.Absorb(s)
		node.AbsorbLast(finalSuffixSingleNode)
		out := make([]byte, outLen)
		node.Squeeze(out)
		return out
	}

	var final sponge.Sponge
	final.Absorb(s[:ChunkSize])
	final.Absorb([]byte{firstChunkSeparator})
	final.AdvanceToLaneBoundary()

	var numCVs uint64
	for rest := s[ChunkSize:]; len(rest) > 0; {
		n := min(ChunkSize, len(rest))

		var leaf sponge.Sponge
		leaf.Absorb(rest[:n])
		leaf.AbsorbLast(suffixLeaf)

		var cv [cvSize]byte
		leaf.Squeeze(cv[:])
		final.Absorb(cv[:])
		numCVs++

		rest = rest[n:]
	}

	trailer := append(rightEncode(numCVs), 0xFF, 0xFF)
	final.Absorb(trailer)
	final.AbsorbLast(finalSuffixTree)

	out := make([]byte, outLen)
	final.Squeeze(out)
	return out
}
