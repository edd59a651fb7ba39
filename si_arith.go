package vsa

import "math/big"

// Add computes a + b with wrapped modular semantics (spec.md §4.1). Stride
// is gcd(sa, sb) unless one side is a singleton, in which case the other
// side's stride survives unchanged; bounds simply add modulo 2^w, and the
// result is Top_w once the two operands' spans together reach 2^w.
func (si StridedInterval) Add(o StridedInterval) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	w := si.W
	span := new(big.Int).Add(bigU64(subMod(w, si.Upper, si.Lower)), bigU64(subMod(w, o.Upper, o.Lower)))
	if span.Cmp(modulus2w(w)) >= 0 {
		return withTaint(Top(w), taintOf(si, o)), nil
	}
	lower := addMod(w, si.Lower, o.Lower)
	upper := addMod(w, si.Upper, o.Upper)
	stride := combineStrideAdd(si, o)
	result := widenIfOverflow(canonical(w, stride, lower, upper), si, o, w)
	return withTaint(result, taintOf(si, o)), nil
}

func combineStrideAdd(a, b StridedInterval) uint64 {
	switch {
	case a.Stride == 0 && b.Stride == 0:
		return 0
	case a.Stride == 0:
		return b.Stride
	case b.Stride == 0:
		return a.Stride
	default:
		return gcdU64(a.Stride, b.Stride)
	}
}

// widenIfOverflow degrades result to Top_w when it denotes more elements
// than the product of the operands' cardinalities, and normalizes a result
// whose cardinality already covers every representable value to Top_w
// (spec.md §7, PrecisionDegraded).
func widenIfOverflow(result, a, b StridedInterval, w uint8) StridedInterval {
	maxCard := new(big.Int).Mul(a.cardinality(), b.cardinality())
	resultCard := result.cardinality()
	if resultCard.Cmp(maxCard) > 0 {
		return Top(w)
	}
	// A result whose cardinality already covers every representable value
	// denotes the same set Top_w does, even if Lower/Upper don't happen to
	// be the canonical (0, 2^w-1) pair; normalize so IsTop reports true.
	if resultCard.Cmp(modulus2w(w)) >= 0 {
		return Top(w)
	}
	return result
}

// Sub computes a - b, i.e. a + (-b).
func (si StridedInterval) Sub(o StridedInterval) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	return si.Add(o.Neg())
}

// Neg computes the additive inverse -a, i.e. 0 - a, under wraparound.
func (si StridedInterval) Neg() StridedInterval {
	if si.empty {
		return si
	}
	w := si.W
	lower := negMod(w, si.Upper)
	upper := negMod(w, si.Lower)
	return withTaint(canonical(w, si.Stride, lower, upper), si.Uninitialized)
}

// Mul computes a * b. When one side is a concrete singleton v, the result
// stride scales by v (stride_a * v); when both sides are non-singleton the
// result stride is gcd(stride_a, stride_b), not the product — verified
// against the source fixture si_a(stride=2) * si_b(stride=2) -> stride 2.
func (si StridedInterval) Mul(o StridedInterval) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	w := si.W
	taint := taintOf(si, o)
	if si.IsSingleton() {
		return withTaint(mulBySingleton(o, si.Lower, w), taint), nil
	}
	if o.IsSingleton() {
		return withTaint(mulBySingleton(si, o.Lower, w), taint), nil
	}
	stride := gcdU64(si.Stride, o.Stride)
	lower, upper, err := mulBounds(si, o, w)
	if err != nil {
		return StridedInterval{}, err
	}
	result := canonical(w, stride, lower, upper)
	if result.cardinality().Cmp(modulus2w(w)) >= 0 {
		result = Top(w)
	}
	return withTaint(result, taint), nil
}

func mulBySingleton(si StridedInterval, v uint64, w uint8) StridedInterval {
	if v == 0 {
		return Singleton(w, 0)
	}
	stride := si.Stride * v
	lower := (si.Lower * v) & mask(w)
	upper := (si.Upper * v) & mask(w)
	if stride == 0 {
		return canonical(w, stride, lower, lower)
	}
	return widenIfOverflow(canonical(w, stride, lower, upper), si, Singleton(w, v), w)
}

// mulBounds picks the corner product with the widest unsigned span; full
// soundness for wrapped multiplication is intractable in general, so like
// the source implementation we evaluate corners of the unsigned bounds and
// take the covering min/max, falling back to Top on overflow.
func mulBounds(a, b StridedInterval, w uint8) (lower, upper uint64, err error) {
	var lo, hi *big.Int
	for _, sa := range a.UnsignedBounds() {
		for _, sb := range b.UnsignedBounds() {
			corners := []*big.Int{
				new(big.Int).Mul(bigU64(sa.Lo), bigU64(sb.Lo)),
				new(big.Int).Mul(bigU64(sa.Lo), bigU64(sb.Hi)),
				new(big.Int).Mul(bigU64(sa.Hi), bigU64(sb.Lo)),
				new(big.Int).Mul(bigU64(sa.Hi), bigU64(sb.Hi)),
			}
			for _, c := range corners {
				if lo == nil || c.Cmp(lo) < 0 {
					lo = c
				}
				if hi == nil || c.Cmp(hi) > 0 {
					hi = c
				}
			}
		}
	}
	m := modulus2w(w)
	lo.Mod(lo, m)
	hi.Mod(hi, m)
	return lo.Uint64(), hi.Uint64(), nil
}

// safeUDiv / safeUMod define division and modulo by zero as returning 0,
// the convention spec.md §9 leaves as "implementation's choice" and that
// the source's own wrapped-interval machinery applies uniformly.
func safeUDiv(x, y uint64) uint64 {
	if y == 0 {
		return 0
	}
	return x / y
}

func safeUMod(x, y uint64) uint64 {
	if y == 0 {
		return 0
	}
	return x % y
}

// UDiv computes unsigned a / b by taking the corner quotients over the
// unsigned bounds, the same cornering approach as Mul.
func (si StridedInterval) UDiv(o StridedInterval) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	w := si.W
	var lo, hi uint64
	first := true
	for _, sa := range si.UnsignedBounds() {
		for _, sb := range o.UnsignedBounds() {
			corners := []uint64{
				safeUDiv(sa.Lo, sb.Lo), safeUDiv(sa.Lo, sb.Hi),
				safeUDiv(sa.Hi, sb.Lo), safeUDiv(sa.Hi, sb.Hi),
			}
			for _, c := range corners {
				if first || c < lo {
					lo = c
				}
				if first || c > hi {
					hi = c
				}
				first = false
			}
		}
	}
	stride := uint64(1)
	if lo == hi {
		stride = 0
	}
	return withTaint(canonical(w, stride, lo, hi), taintOf(si, o)), nil
}

// UMod computes unsigned a % b. The result is bounded by [0, b.Max()-1]
// when that is tighter than scanning corners, matching the conservative
// "stride 1 over the bound" shape the source falls back to for mod.
func (si StridedInterval) UMod(o StridedInterval) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	if si.empty || o.empty {
		return Empty(si.W), nil
	}
	w := si.W
	taint := taintOf(si, o)
	maxMod := o.unsignedMax()
	if maxMod == 0 {
		return withTaint(Singleton(w, 0), taint), nil
	}
	upperBound := maxMod - 1
	if si.unsignedMax() < upperBound {
		upperBound = si.unsignedMax()
	}
	stride := uint64(1)
	if upperBound == 0 {
		stride = 0
	}
	return withTaint(canonical(w, stride, 0, upperBound), taint), nil
}

func checkSameWidth(a, b StridedInterval) error {
	if a.W != b.W {
		return widthMismatch(a.W, b.W)
	}
	return nil
}
