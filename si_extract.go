package vsa

// si_extract.go implements bit-level slicing/widening: Extract, Concat,
// ZeroExtend, SignExtend, and the logical/arithmetic shifts that share
// their bit-twiddling flavor.

// Extract returns bits [hi:lo] (inclusive, 0-indexed from the LSB) as a
// new SI of width hi-lo+1. Two cases, derived from the source's byte- and
// sign-bit-extraction fixtures:
//
//   - Case A: the stride's trailing-zero count already covers every bit
//     of [hi:lo] (trailingZeros(stride) > hi), so every element shares
//     the same bits [hi:lo]: the result is the singleton taken from Lower.
//   - Case B: otherwise, extract [hi:lo] from Lower and Upper
//     independently with stride >>= lo, canonicalize, and collapse to
//     Top of the new width if the result's cardinality would reach the
//     new width's full 2^neww (this is what turns what would otherwise be
//     a bogus "wrapped" pair into the sound Top the source expects for,
//     e.g., extracting the sign bit of a full-range SI).
func (si StridedInterval) Extract(hi, lo uint8) (StridedInterval, error) {
	if si.empty {
		return Empty(hi - lo + 1), nil
	}
	if hi < lo || hi >= si.W {
		return StridedInterval{}, invalidSI("extract bit range out of bounds")
	}
	neww := hi - lo + 1
	tz := trailingZerosOrWidth(si.W, si.Stride)
	bitsOf := func(v uint64) uint64 {
		return (v >> lo) & mask(neww)
	}
	if uint8(tz) > hi {
		return withTaint(Singleton(neww, bitsOf(si.Lower)), si.Uninitialized), nil
	}
	newLower := bitsOf(si.Lower)
	newUpper := bitsOf(si.Upper)
	newStride := si.Stride >> lo
	if newStride == 0 && newLower != newUpper {
		newStride = 1
	}
	result := canonical(neww, newStride, newLower, newUpper)
	if result.cardinality().Cmp(modulus2w(neww)) >= 0 {
		return withTaint(Top(neww), si.Uninitialized), nil
	}
	return withTaint(result, si.Uninitialized), nil
}

// Concat joins hi:lo bitfields into a single wider SI, hi occupying the
// most-significant bits. The result stride is gcd(hi.Stride << lo.Width,
// lo.Stride): every step of lo's stride still moves the low field, and
// every step of hi's stride moves the high field by lo.Width bits.
func (hiSI StridedInterval) Concat(loSI StridedInterval) (StridedInterval, error) {
	if hiSI.empty || loSI.empty {
		return Empty(hiSI.W + loSI.W), nil
	}
	neww := hiSI.W + loSI.W
	shift := uint(loSI.W)
	lower := (hiSI.Lower << shift) | loSI.Lower
	upper := (hiSI.Upper << shift) | loSI.Upper
	stride := gcdU64(hiSI.Stride<<shift, loSI.Stride)
	return withTaint(canonical(neww, stride, lower, upper), taintOf(hiSI, loSI)), nil
}

// ZeroExtend widens the SI by n bits, padding with zero bits; the value
// set is unchanged, only reinterpreted at the wider width.
func (si StridedInterval) ZeroExtend(n uint8) (StridedInterval, error) {
	if si.empty {
		return Empty(si.W + n), nil
	}
	neww := si.W + n
	if err := checkWidth(neww); err != nil {
		return StridedInterval{}, err
	}
	if si.wrapsUnsigned() {
		result, err := si.splitThenExtend(neww, zeroExtendSegment)
		if err != nil {
			return StridedInterval{}, err
		}
		return withTaint(result, si.Uninitialized), nil
	}
	return withTaint(canonical(neww, si.Stride, si.Lower, si.Upper), si.Uninitialized), nil
}

// SignExtend widens the SI by n bits, sign-extending each element. A
// straddling SI (one whose signed bounds cross zero or whose unsigned
// bounds wrap) is first split via the signed-bound decomposition, each
// half sign-extended independently, then the halves are rejoined with
// Union. Whether the Union keeps them as one covering SI or, via a
// DSIS-aware caller, as two discrete pieces is left to the caller's
// Policy (spec.md §9's sign_extend-on-wrapped-SI open question): this
// layer always rejoins into one covering SI, the conservative default.
func (si StridedInterval) SignExtend(n uint8) (StridedInterval, error) {
	if si.empty {
		return Empty(si.W + n), nil
	}
	neww := si.W + n
	if err := checkWidth(neww); err != nil {
		return StridedInterval{}, err
	}
	segs := si.SignedBounds()
	if len(segs) <= 1 {
		result, err := si.splitThenExtend(neww, signExtendSegment)
		if err != nil {
			return StridedInterval{}, err
		}
		return withTaint(result, si.Uninitialized), nil
	}
	var pieces []StridedInterval
	for _, seg := range segs {
		sub := canonical(si.W, strideForSegment(si, seg), seg.Lo, seg.Hi)
		ext, err := sub.splitThenExtend(neww, signExtendSegment)
		if err != nil {
			return StridedInterval{}, err
		}
		pieces = append(pieces, ext)
	}
	result, err := unionAll(pieces, DefaultPolicy)
	if err != nil {
		return StridedInterval{}, err
	}
	return withTaint(result, si.Uninitialized), nil
}

func strideForSegment(si StridedInterval, seg Segment) uint64 {
	if seg.Lo == seg.Hi {
		return 0
	}
	return si.Stride
}

type segExtendFn func(w, neww uint8, v uint64) uint64

func zeroExtendSegment(w, neww uint8, v uint64) uint64 { return v & mask(w) }

func signExtendSegment(w, neww uint8, v uint64) uint64 {
	return ToUnsigned(neww, ToSigned(w, v))
}

// splitThenExtend applies fn to Lower and Upper independently (the SI is
// assumed already non-wrapping in the relevant sense) and canonicalizes
// at the new width.
func (si StridedInterval) splitThenExtend(neww uint8, fn segExtendFn) (StridedInterval, error) {
	lower := fn(si.W, neww, si.Lower)
	upper := fn(si.W, neww, si.Upper)
	return canonical(neww, si.Stride, lower, upper), nil
}

// Shl computes a logical left shift by a concrete shift amount (the
// shift-by-SI case widens to every value the shift amount could take,
// unioning the per-shift results, matching the source's "shift by
// strided interval" behavior when the shift amount isn't singleton).
func (si StridedInterval) Shl(amount StridedInterval, pol Policy) (StridedInterval, error) {
	return si.shiftBy(amount, pol, func(w uint8, v uint64, n uint64) uint64 {
		if n >= uint64(w) {
			return 0
		}
		return (v << n) & mask(w)
	})
}

// Lshr computes a logical right shift.
func (si StridedInterval) Lshr(amount StridedInterval, pol Policy) (StridedInterval, error) {
	return si.shiftBy(amount, pol, func(w uint8, v uint64, n uint64) uint64 {
		if n >= uint64(w) {
			return 0
		}
		return v >> n
	})
}

// Ashr computes an arithmetic right shift, sign-extending the vacated
// high bits.
func (si StridedInterval) Ashr(amount StridedInterval, pol Policy) (StridedInterval, error) {
	return si.shiftBy(amount, pol, func(w uint8, v uint64, n uint64) uint64 {
		s := ToSigned(w, v)
		if n >= uint64(w) {
			n = uint64(w) - 1
		}
		return ToUnsigned(w, s>>n)
	})
}

type shiftFn func(w uint8, v uint64, n uint64) uint64

// shiftBy enumerates the shift amount's concrete values and unions the
// per-amount results; at most 64 amounts are enumerated, and a shift
// amount with more values than that yields Top.
func (si StridedInterval) shiftBy(amount StridedInterval, pol Policy, fn shiftFn) (StridedInterval, error) {
	if si.empty || amount.empty {
		return Empty(si.W), nil
	}
	const enumCap = 64
	amounts := amount.Eval(enumCap + 1)
	if len(amounts) > enumCap {
		return Top(si.W), nil
	}
	var results []StridedInterval
	for _, n := range amounts {
		lower := fn(si.W, si.Lower, n)
		upper := fn(si.W, si.Upper, n)
		stride := si.Stride
		if stride != 0 {
			shifted := fn(si.W, stride, n)
			if shifted == 0 {
				stride = 1
			} else {
				stride = shifted
			}
		}
		results = append(results, canonical(si.W, stride, lower, upper))
	}
	result, err := unionAll(results, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	return withTaint(result, taintOf(si, amount)), nil
}
