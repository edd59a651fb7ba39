package vsa

import (
	"math/big"
	"math/bits"
)

// MaxBits is the widest machine integer this implementation represents.
// Bounds and strides live in a uint64, so that's the natural ceiling; a
// future width-agnostic version would swap to math/big throughout, but
// nothing in the retrieved corpus reaches for arbitrary-precision bitvector
// arithmetic (the one big.Int–shaped file in the pack, bford-go's
// src/math/big/nat.go, is the standard library's own internal type, not a
// separate importable module), so we stay on fixed 64-bit words like the
// teacher's `uint16`/`byte` register fields in nes/cpu.go.
const MaxBits = 64

// checkWidth validates a bit-width is in the representable range.
func checkWidth(w uint8) error {
	if w == 0 || w > MaxBits {
		return invalidSI("bit width must be in [1, 64]")
	}
	return nil
}

// mask returns the w-bit all-ones mask, 2^w - 1.
func mask(w uint8) uint64 {
	if w >= MaxBits {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// ToUnsigned reinterprets a signed value as its w-bit unsigned (two's
// complement) residue. This is the BitVec primitive the rest of the
// package uses so constructors can accept the same negative literals the
// source test fixtures do (e.g. lower_bound=-1).
func ToUnsigned(w uint8, v int64) uint64 {
	return uint64(v) & mask(w)
}

// ToSigned reinterprets a w-bit unsigned residue as its two's-complement
// signed value, sign-extended into an int64.
func ToSigned(w uint8, v uint64) int64 {
	v &= mask(w)
	signBit := uint64(1) << (w - 1)
	if v&signBit != 0 {
		return int64(v | ^mask(w))
	}
	return int64(v)
}

// complement returns the w-bit bitwise NOT of v.
func complement(w uint8, v uint64) uint64 {
	return (^v) & mask(w)
}

// addMod / subMod perform modular w-bit addition/subtraction.
func addMod(w uint8, a, b uint64) uint64 { return (a + b) & mask(w) }
func subMod(w uint8, a, b uint64) uint64 { return (a - b) & mask(w) }
func negMod(w uint8, a uint64) uint64    { return subMod(w, 0, a) }

// gcdU64 returns gcd(a, b) with the conventional gcd(0, x) = x.
func gcdU64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcmU64(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcdU64(a, b) * b
}

// trailingZerosOrWidth returns the number of trailing zero bits of stride,
// treating a stride of 0 (singleton SI) as "infinitely" aligned, i.e. w.
func trailingZerosOrWidth(w uint8, stride uint64) uint8 {
	if stride == 0 {
		return w
	}
	tz := bits.TrailingZeros64(stride)
	if tz > int(w) {
		return w
	}
	return uint8(tz)
}

// isPowerOfTwo reports whether v has exactly one bit set.
func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// modulus2w returns 2^w as a big.Int, used only for the cardinality /
// overflow-to-Top comparisons where w=64 would overflow a uint64.
func modulus2w(w uint8) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(w))
}

// bigU64 is a small convenience wrapper.
func bigU64(v uint64) *big.Int { return new(big.Int).SetUint64(v) }
