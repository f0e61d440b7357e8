// Package mem provides small byte-slice primitives shared by the sponge
// and tree-driver packages. No architecture-specific kernels are wired
// into this build (see DESIGN.md), so every primitive here is the
// portable Go fallback, always selected.
package mem

// XORInPlace sets dst[i] ^= src[i] for each i < len(dst). src must be at
// least as long as dst.
func XORInPlace(dst, src []byte) {
	for i, s := range src[:len(dst)] {
		dst[i] ^= s
	}
}
