package keccak

import (
	"bytes"
	"crypto/sha3"
	"encoding/hex"
	"runtime"
	"testing"

	"golang.org/x/sys/cpu"
)

func TestP1600ZeroState(t *testing.T) {
	var state [200]byte
	P1600(&state)

	want := "1786a7b938545e8e1ed059f2506acdd9351fa952c6e7b887c5e0e4cd67e09310455ad9f290ab33b0451adda8722fa7e09c2f6714aa8037c51d075100f547dd3ecc8a170c311da3b3a0aa5792a586b5799bf9b1b33d7c4abc93678ae66340876866250e2e33036c5cda30f0b90212aa9c9f7acf2b789a3b5f2379ae61e0c136e5ec873cb718b6e96dc28a9170f1d1be2ab724edda53bdab6a5ae12e2c6a41c1bfaf5209b936e0cfc6d76070dc17365045e47a9fc2b21156627a64302cdb7136d41ca02c22760dfdcf"
	if got := hex.EncodeToString(state[:]); got != want {
		t.Errorf("P1600(0*200) = %s, want %s", got, want)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seed := func(b byte) [200]byte {
		var s [200]byte
		for i := range s {
			s[i] = b + byte(i)
		}
		return s
	}

	t.Run("x2", func(t *testing.T) {
		s0, s1 := seed(1), seed(2)
		want0, want1 := s0, s1
		permute(&want0, 12)
		permute(&want1, 12)

		P1600x2(&s0, &s1)
		if s0 != want0 || s1 != want1 {
			t.Fatal("P1600x2 diverged from two sequential P1600 calls")
		}
	})

	t.Run("x4", func(t *testing.T) {
		states := [4][200]byte{seed(1), seed(2), seed(3), seed(4)}
		want := states
		for i := range want {
			permute(&want[i], 12)
		}

		P1600x4(&states[0], &states[1], &states[2], &states[3])
		if states != want {
			t.Fatal("P1600x4 diverged from four sequential P1600 calls")
		}
	})

	t.Run("x8", func(t *testing.T) {
		states := [8][200]byte{seed(1), seed(2), seed(3), seed(4), seed(5), seed(6), seed(7), seed(8)}
		want := states
		for i := range want {
			permute(&want[i], 12)
		}

		ptrs := [8]*[200]byte{}
		for i := range ptrs {
			ptrs[i] = &states[i]
		}
		P1600x8(&ptrs)
		if states != want {
			t.Fatal("P1600x8 diverged from eight sequential P1600 calls")
		}
	})
}

// TestPermute24RoundsAgainstSHAKE128 builds a minimal SHAKE128 sponge (rate
// 168, 24-round Keccak-f[1600], 0x1F domain separator) directly on top of
// permute(..., 24) and checks it against the standard library's crypto/sha3,
// an independently maintained implementation. This exercises θ/ρ/π/χ/ι at
// full round count, not just the 12-round K12 instance.
func TestPermute24RoundsAgainstSHAKE128(t *testing.T) {
	const rate = 168

	shake := func(msg []byte, outLen int) []byte {
		var state [200]byte
		pos := 0
		for len(msg) > 0 {
			n := min(rate-pos, len(msg))
			for i := 0; i < n; i++ {
				state[pos+i] ^= msg[i]
			}
			msg = msg[n:]
			pos += n
			if pos == rate {
				permute(&state, 24)
				pos = 0
			}
		}
		state[pos] ^= 0x1F
		state[rate-1] ^= 0x80
		permute(&state, 24)

		out := make([]byte, 0, outLen)
		pos = 0
		for len(out) < outLen {
			if pos == rate {
				permute(&state, 24)
				pos = 0
			}
			n := min(rate-pos, outLen-len(out))
			out = append(out, state[pos:pos+n]...)
			pos += n
		}
		return out
	}

	for _, msg := range [][]byte{nil, []byte("abc"), bytes.Repeat([]byte{0x42}, 300)} {
		got := shake(msg, 64)

		h := sha3.NewSHAKE128()
		_, _ = h.Write(msg)
		want := make([]byte, 64)
		_, _ = h.Read(want)

		if !bytes.Equal(got, want) {
			t.Errorf("SHAKE128(%x) = %x, want %x", msg, got, want)
		}
	}
}

func TestCapabilityTuple(t *testing.T) {
	defer EnableAll()

	g0 := Generation()
	if changed := DisableAVX512(); HasTimes8() {
		t.Fatal("HasTimes8 still true after DisableAVX512")
	} else if changed && Generation() == g0 {
		t.Fatal("generation did not advance after a real change")
	}

	if !DisableAVX2() && HasTimes4() && !HasTimes8() {
		t.Fatal("DisableAVX2 reported no change but HasTimes4 is still true")
	}

	if !DisableSSSE3() && HasTimes2() && !HasTimes4() {
		t.Fatal("DisableSSSE3 reported no change but HasTimes2 is still true")
	}

	if HasTimes2() || HasTimes4() || HasTimes8() {
		t.Fatal("all widths disabled but a HasTimesN still reports true")
	}

	if !EnableAll() {
		t.Fatal("EnableAll reported no change after narrowing everything")
	}
}

func TestAVX2DetectionAgreesWithXSysCPU(t *testing.T) {
	if runtime.GOARCH != "amd64" {
		t.Skip("x/sys/cpu.X86 only populated on amd64")
	}
	if detectedAVX2 != cpu.X86.HasAVX2 {
		t.Errorf("cpuid reports AVX2=%v, x/sys/cpu reports %v", detectedAVX2, cpu.X86.HasAVX2)
	}
}
