package vsa

// si_bitwise.go implements bitwise AND/OR/XOR/NOT over wrapped intervals
// using Warren's "Hacker's Delight" minAND/maxAND/minOR/maxOR algorithms
// (ch. 4), applied per unsigned segment and then re-unioned. XOR has no
// equally tight closed form in Warren so we bound it soundly via De
// Morgan's expansion (a^b) = (a&~b)|(~a&b).

const allOnes = ^uint64(0)

// minAND/maxAND/minOR/maxOR operate on [a,b] x [c,d] unsigned ranges,
// transliterated directly from Warren's algorithms, parameterized by the
// active bit width so the high-bit scan terminates at w, not 64.
func minAND(w uint8, a, b, c, d uint64) uint64 {
	m := uint64(1) << (w - 1)
	for m != 0 {
		if (^a)&(^c)&m != 0 {
			temp := (a | m) & negate(w, m)
			if temp <= b {
				a = temp
				break
			}
			temp = (c | m) & negate(w, m)
			if temp <= d {
				c = temp
				break
			}
		}
		m >>= 1
	}
	return a & c
}

func maxAND(w uint8, a, b, c, d uint64) uint64 {
	m := uint64(1) << (w - 1)
	for m != 0 {
		if b&(^d)&m != 0 {
			temp := (b - m) | (m - 1)
			temp &= mask(w)
			if temp >= a {
				b = temp
				break
			}
		} else if (^b)&d&m != 0 {
			temp := (d - m) | (m - 1)
			temp &= mask(w)
			if temp >= c {
				d = temp
				break
			}
		}
		m >>= 1
	}
	return b & d
}

func minOR(w uint8, a, b, c, d uint64) uint64 {
	m := uint64(1) << (w - 1)
	for m != 0 {
		if (^a)&c&m != 0 {
			temp := (a | m) & negate(w, m)
			if temp <= b {
				a = temp
				break
			}
		} else if a&(^c)&m != 0 {
			temp := (c | m) & negate(w, m)
			if temp <= d {
				c = temp
				break
			}
		}
		m >>= 1
	}
	return a | c
}

func maxOR(w uint8, a, b, c, d uint64) uint64 {
	m := uint64(1) << (w - 1)
	for m != 0 {
		if b&d&m != 0 {
			temp1 := (b - m) | (m - 1)
			temp1 &= mask(w)
			if temp1 >= a {
				b = temp1
			} else {
				temp2 := (d - m) | (m - 1)
				temp2 &= mask(w)
				if temp2 >= c {
					d = temp2
				}
			}
		}
		m >>= 1
	}
	return b | d
}

// negate returns -v as a 64-bit value (the w-bit two's complement of v
// with every bit above w also set), used as Warren's -m mask.
func negate(w uint8, v uint64) uint64 {
	return negMod(w, v) | ^mask(w)
}

// And computes bitwise a & b, segment by segment over the unsigned
// bounds, unioning the per-segment results.
func (si StridedInterval) And(o StridedInterval, pol Policy) (StridedInterval, error) {
	return si.bitwiseOp(o, pol, minAND, maxAND, true)
}

// Or computes bitwise a | b.
func (si StridedInterval) Or(o StridedInterval, pol Policy) (StridedInterval, error) {
	return si.bitwiseOp(o, pol, minOR, maxOR, false)
}

type cornerFn func(w uint8, a, b, c, d uint64) uint64

func (si StridedInterval) bitwiseOp(o StridedInterval, pol Policy, minFn, maxFn cornerFn, isAnd bool) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	w := si.W
	var results []StridedInterval
	for _, sa := range si.UnsignedBounds() {
		for _, sb := range o.UnsignedBounds() {
			lo := minFn(w, sa.Lo, sa.Hi, sb.Lo, sb.Hi)
			hi := maxFn(w, sa.Lo, sa.Hi, sb.Lo, sb.Hi)
			stride := bitwiseStride(si, o, lo, hi, isAnd)
			results = append(results, canonical(w, stride, lo, hi))
		}
	}
	result, err := unionAll(results, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	return withTaint(result, taintOf(si, o)), nil
}

// bitwiseStride picks the result stride: the gcd baseline, overridden to a
// single power-of-two mask when one operand is a power-of-two singleton
// that exactly carves the result down to [0, v], for AND results only —
// this reproduces the source fixture
// `<32>0[0, 0xffffffff] & <32>0x80000000` -> stride 0x80000000, which the
// plain gcd(1, 0) = 1 rule misses.
func bitwiseStride(a, b StridedInterval, lo, hi uint64, isAnd bool) uint64 {
	base := gcdU64(a.Stride, b.Stride)
	if !isAnd {
		return normalizeStride(base, lo, hi)
	}
	if v, ok := singletonPow2(a); ok && lo == 0 && hi == v && v != 0 {
		return v
	}
	if v, ok := singletonPow2(b); ok && lo == 0 && hi == v && v != 0 {
		return v
	}
	return normalizeStride(base, lo, hi)
}

func normalizeStride(base, lo, hi uint64) uint64 {
	if lo == hi {
		return 0
	}
	if base == 0 {
		return 1
	}
	return base
}

func singletonPow2(si StridedInterval) (uint64, bool) {
	if !si.IsSingleton() || !isPowerOfTwo(si.Lower) {
		return 0, false
	}
	return si.Lower, true
}

// Xor has no Warren closed form as tight as AND/OR, so it is computed
// soundly via De Morgan's law: a^b = (a & ~b) | (~a & b).
func (si StridedInterval) Xor(o StridedInterval, pol Policy) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	notO := o.Not()
	notSI := si.Not()
	left, err := si.And(notO, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	right, err := notSI.And(o, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	result, err := left.Or(right, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	return withTaint(result, taintOf(si, o)), nil
}

// Not computes bitwise complement, which under two's complement is simply
// -(a) - 1, an exact transform (no precision loss) so it distributes over
// Lower/Upper directly rather than going through the corner machinery.
func (si StridedInterval) Not() StridedInterval {
	if si.empty {
		return si
	}
	w := si.W
	lower := complement(w, si.Upper)
	upper := complement(w, si.Lower)
	return withTaint(canonical(w, si.Stride, lower, upper), si.Uninitialized)
}
