package kt12

import (
	"github.com/zeebo/k12/hazmat/keccak"
	"github.com/zeebo/k12/hazmat/sponge"
	"github.com/zeebo/k12/internal/mem"
)

// computeLeafCVsX2 absorbs two full ChunkSize leaves out of data in
// lockstep on the P1600x2 kernel, finalizes each with the leaf suffix, and
// writes their 32-byte chaining values to out (2*cvSize bytes).
func computeLeafCVsX2(data []byte, out []byte) {
	var s0, s1 [200]byte
	pos := 0
	for off := 0; off < ChunkSize; {
		n := min(sponge.Rate-pos, ChunkSize-off)
		mem.XORInPlace(s0[pos:pos+n], data[0*ChunkSize+off:0*ChunkSize+off+n])
		mem.XORInPlace(s1[pos:pos+n], data[1*ChunkSize+off:1*ChunkSize+off+n])
		pos += n
		off += n
		if pos == sponge.Rate {
			keccak.P1600x2(&s0, &s1)
			pos = 0
		}
	}

	s0[pos] ^= suffixLeaf
	s1[pos] ^= suffixLeaf
	s0[sponge.Rate-1] ^= 0x80
	s1[sponge.Rate-1] ^= 0x80
	keccak.P1600x2(&s0, &s1)

	copy(out[0*cvSize:1*cvSize], s0[:cvSize])
	copy(out[1*cvSize:2*cvSize], s1[:cvSize])
}

// computeLeafCVsX4 is computeLeafCVsX2 widened to four lanes on P1600x4.
func computeLeafCVsX4(data []byte, out []byte) {
	var s [4][200]byte
	pos := 0
	for off := 0; off < ChunkSize; {
		n := min(sponge.Rate-pos, ChunkSize-off)
		for lane := 0; lane < 4; lane++ {
			mem.XORInPlace(s[lane][pos:pos+n], data[lane*ChunkSize+off:lane*ChunkSize+off+n])
		}
		pos += n
		off += n
		if pos == sponge.Rate {
			keccak.P1600x4(&s[0], &s[1], &s[2], &s[3])
			pos = 0
		}
	}

	for lane := 0; lane < 4; lane++ {
		s[lane][pos] ^= suffixLeaf
		s[lane][sponge.Rate-1] ^= 0x80
	}
	keccak.P1600x4(&s[0], &s[1], &s[2], &s[3])

	for lane := 0; lane < 4; lane++ {
		copy(out[lane*cvSize:(lane+1)*cvSize], s[lane][:cvSize])
	}
}

// computeLeafCVsX8 is computeLeafCVsX2 widened to eight lanes on P1600x8.
func computeLeafCVsX8(data []byte, out []byte) {
	var s [8][200]byte
	var ptrs [8]*[200]byte
	for lane := range s {
		ptrs[lane] = &s[lane]
	}

	pos := 0
	for off := 0; off < ChunkSize; {
		n := min(sponge.Rate-pos, ChunkSize-off)
		for lane := 0; lane < 8; lane++ {
			mem.XORInPlace(s[lane][pos:pos+n], data[lane*ChunkSize+off:lane*ChunkSize+off+n])
		}
		pos += n
		off += n
		if pos == sponge.Rate {
			keccak.P1600x8(&ptrs)
			pos = 0
		}
	}

	for lane := 0; lane < 8; lane++ {
		s[lane][pos] ^= suffixLeaf
		s[lane][sponge.Rate-1] ^= 0x80
	}
	keccak.P1600x8(&ptrs)

	for lane := 0; lane < 8; lane++ {
		copy(out[lane*cvSize:(lane+1)*cvSize], s[lane][:cvSize])
	}
}
