package k12

import "github.com/zeebo/k12/hazmat/keccak"

// DisableAVX512 narrows the process-wide capability tuple so the 8-wide
// parallel permutation is no longer used, reporting whether that changed
// anything. See hazmat/keccak for the exclusion requirements: mutating
// this while any Hasher or in-flight Sum exists is undefined.
func DisableAVX512() bool { return keccak.DisableAVX512() }

// DisableAVX2 clears the AVX2 flag of the tuple. The 8-wide permutation is
// unaffected, and the 4-wide one stays in use while the 8-wide one is; after
// DisableAVX512 as well, neither is used.
func DisableAVX2() bool { return keccak.DisableAVX2() }

// DisableSSSE3 clears the SSSE3 flag of the tuple. The 2-wide permutation
// stays in use while a wider one is; after DisableAVX512 and DisableAVX2 as
// well, no parallel width (2, 4, or 8) is used and only the scalar
// permutation remains.
func DisableSSSE3() bool { return keccak.DisableSSSE3() }

// EnableAll restores every capability the hardware actually supports,
// undoing any prior Disable* calls.
func EnableAll() bool { return keccak.EnableAll() }
