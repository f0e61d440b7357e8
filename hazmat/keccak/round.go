package keccak

import "encoding/binary"

// roundConstants holds all 24 Keccak-f[1600] round constants. Keccak-p[1600,
// 12] uses only the last 12 (indices 12..23); the 24-round form is kept
// around because the generic round function is also exercised at 24 rounds
// in tests, as a differential check against independent implementations.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets[x][y] gives the ρ-step rotation amount for lane (x, y).
var rotationOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

func rotl64(v uint64, n uint) uint64 {
	return v<<n | v>>(64-n)
}

// permute applies `rounds` Keccak-f[1600] rounds to state in place, starting
// from round constant index 24-rounds (so rounds=12 uses RC[12..23], the
// Keccak-p[1600,12] instance; rounds=24 is the full Keccak-f[1600]).
func permute(state *[200]byte, rounds int) {
	var a [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] = binary.LittleEndian.Uint64(state[8*(x+5*y):])
		}
	}

	var c [5]uint64
	var d [5]uint64
	var b [5][5]uint64

	first := 24 - rounds
	for round := first; round < 24; round++ {
		// θ
		for x := 0; x < 5; x++ {
			c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] ^= d[x]
			}
		}

		// ρ and π combined: B[y][2x+3y mod 5] = rotl(A[x][y], r[x][y])
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y][(2*x+3*y)%5] = rotl64(a[x][y], rotationOffsets[x][y])
			}
		}

		// χ
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
			}
		}

		// ι
		a[0][0] ^= roundConstants[round]
	}

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			binary.LittleEndian.PutUint64(state[8*(x+5*y):], a[x][y])
		}
	}
}
