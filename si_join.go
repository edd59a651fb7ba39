package vsa

import "math/big"

// si_join.go implements the lattice join (Union) and meet (Intersection)
// operations from spec.md §4.1/§5.

// Union computes the smallest wrapped SI covering every element of both
// operands. Two covering candidates are considered (extend from si's
// lower bound through o's upper bound, or vice versa); a candidate that
// does not contain both operands is discarded, the smaller remaining one
// wins, ties broken in favor of the first candidate, and the result is
// Top_w when neither candidate covers both.
// This mirrors the "minimal covering interval" join the source's wrapped
// interval domain computes, with the join-tie-break left open by spec.md
// §9 resolved here as "prefer si's starting point".
//
// pol is accepted for API symmetry with the DSIS-aware callers above this
// layer (value.go / dsis.go decide whether to keep two far-apart SIs
// separate as a DSIS instead of calling this merge); this function always
// returns a single merged SI.
func (si StridedInterval) Union(o StridedInterval, pol Policy) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	taint := taintOf(si, o)
	if si.empty {
		return withTaint(o, taint), nil
	}
	if o.empty {
		return withTaint(si, taint), nil
	}
	if si.Identical(o) {
		return withTaint(si, taint), nil
	}
	if si.containsAll(o) {
		return withTaint(si, taint), nil
	}
	if o.containsAll(si) {
		return withTaint(o, taint), nil
	}
	w := si.W
	stride := joinStride(w, si, o)
	candA := canonical(w, stride, si.Lower, o.Upper)
	candB := canonical(w, stride, o.Lower, si.Upper)
	aCovers := candA.containsAll(si) && candA.containsAll(o)
	bCovers := candB.containsAll(si) && candB.containsAll(o)
	switch {
	case aCovers && bCovers && candB.cardinality().Cmp(candA.cardinality()) < 0:
		return withTaint(candB, taint), nil
	case aCovers:
		return withTaint(candA, taint), nil
	case bCovers:
		return withTaint(candB, taint), nil
	default:
		return withTaint(Top(w), taint), nil
	}
}

// containsAll reports whether every element of inner is also an element of
// outer (spec.md §4.1's join rule: "if one operand contains the other,
// return the larger" — skipped without this check, a wrapped operand that
// already covers the other candidate's elements can still lose them to a
// smaller-cardinality candidate arc that doesn't actually cover it).
// Containment for two strided arcs requires both a congruence match (every
// step of inner must land on one of outer's residues) and an arc-contained
// check done in outer-relative offsets, which naturally accounts for
// wrapping since offsets are already taken mod 2^w.
func (outer StridedInterval) containsAll(inner StridedInterval) bool {
	if inner.empty {
		return true
	}
	if outer.empty {
		return false
	}
	if outer.IsSingleton() {
		return inner.IsSingleton() && inner.Lower == outer.Lower
	}
	if inner.IsSingleton() {
		return outer.Contains(inner.Lower)
	}
	if inner.Stride%outer.Stride != 0 {
		return false
	}
	if subMod(outer.W, inner.Lower, outer.Lower)%outer.Stride != 0 {
		return false
	}
	span := subMod(outer.W, outer.Upper, outer.Lower)
	offLower := subMod(outer.W, inner.Lower, outer.Lower)
	offUpper := subMod(outer.W, inner.Upper, outer.Lower)
	return offLower <= span && offUpper <= span && offLower <= offUpper
}

func joinStride(w uint8, a, b StridedInterval) uint64 {
	diff := subMod(w, b.Lower, a.Lower)
	s := gcdU64(gcdU64(a.Stride, b.Stride), diff)
	if s == 0 {
		return 1
	}
	return s
}

// unionAll folds Union across a list of SIs, skipping empties, returning
// Empty if the list is empty or every member is empty.
func unionAll(sis []StridedInterval, pol Policy) (StridedInterval, error) {
	if len(sis) == 0 {
		return Empty(0), nil
	}
	acc := sis[0]
	for _, s := range sis[1:] {
		merged, err := acc.Union(s, pol)
		if err != nil {
			return StridedInterval{}, err
		}
		acc = merged
	}
	return acc, nil
}

// Intersection computes the meet: every concrete value present in both
// operands. Singleton operands are handled by direct membership; for two
// non-singleton SIs the congruence classes are combined per residue system
// (Chinese Remainder style) per unsigned-bound segment, then the surviving
// fragments are re-joined into one covering SI.
func (si StridedInterval) Intersection(o StridedInterval, pol Policy) (StridedInterval, error) {
	if err := checkSameWidth(si, o); err != nil {
		return StridedInterval{}, err
	}
	w := si.W
	taint := taintOf(si, o)
	if si.empty || o.empty {
		return withTaint(Empty(w), taint), nil
	}
	if si.IsSingleton() {
		if o.Contains(si.Lower) {
			return withTaint(si, taint), nil
		}
		return withTaint(Empty(w), taint), nil
	}
	if o.IsSingleton() {
		if si.Contains(o.Lower) {
			return withTaint(o, taint), nil
		}
		return withTaint(Empty(w), taint), nil
	}
	var fragments []StridedInterval
	for _, sa := range si.UnsignedBounds() {
		for _, sb := range o.UnsignedBounds() {
			lo, hi := max(sa.Lo, sb.Lo), min(sa.Hi, sb.Hi)
			if lo > hi {
				continue
			}
			modulus, residue, ok := crtCombine(si.Stride, si.Lower, o.Stride, o.Lower)
			if !ok {
				continue
			}
			first, ok := firstCongruent(residue, modulus, lo)
			if !ok || first > hi {
				continue
			}
			last := lastCongruent(residue, modulus, hi)
			if last < first {
				continue
			}
			fragments = append(fragments, canonical(w, modulus, first, last))
		}
	}
	if len(fragments) == 0 {
		return withTaint(Empty(w), taint), nil
	}
	result, err := unionAll(fragments, pol)
	if err != nil {
		return StridedInterval{}, err
	}
	return withTaint(result, taint), nil
}

// crtCombine solves the simultaneous congruences x = r1 (mod m1), x = r2
// (mod m2), returning the combined (modulus, residue) via the extended
// Euclidean algorithm (math/big's GCD already computes Bezout
// coefficients). A modulus of 0 denotes a single concrete residue (the
// singleton case of a congruence class).
func crtCombine(m1, r1, m2, r2 uint64) (modulus, residue uint64, ok bool) {
	if m1 == 0 && m2 == 0 {
		if r1 == r2 {
			return 0, r1, true
		}
		return 0, 0, false
	}
	if m1 == 0 {
		if r1%m2 == r2%m2 {
			return 0, r1, true
		}
		return 0, 0, false
	}
	if m2 == 0 {
		if r2%m1 == r1%m1 {
			return 0, r2, true
		}
		return 0, 0, false
	}
	bm1, br1, bm2, br2 := bigU64(m1), bigU64(r1), bigU64(m2), bigU64(r2)
	x, y, g := new(big.Int), new(big.Int), new(big.Int)
	g.GCD(x, y, bm1, bm2)
	diff := new(big.Int).Sub(br2, br1)
	qrem := new(big.Int).Mod(diff, g)
	if qrem.Sign() != 0 {
		return 0, 0, false
	}
	t := new(big.Int).Div(diff, g)
	lcm := new(big.Int).Div(new(big.Int).Mul(bm1, bm2), g)
	sol := new(big.Int).Add(br1, new(big.Int).Mul(bm1, new(big.Int).Mul(x, t)))
	sol.Mod(sol, lcm)
	if !lcm.IsUint64() || !sol.IsUint64() {
		return 0, 0, false
	}
	return lcm.Uint64(), sol.Uint64(), true
}

// firstCongruent finds the smallest value >= lo congruent to residue mod
// modulus (modulus == 0 means "exactly residue").
func firstCongruent(residue, modulus, lo uint64) (uint64, bool) {
	if modulus == 0 {
		return residue, residue >= lo
	}
	r := residue % modulus
	lom := lo % modulus
	var add uint64
	if r >= lom {
		add = r - lom
	} else {
		add = modulus - (lom - r)
	}
	return lo + add, true
}

// lastCongruent finds the largest value <= hi congruent to residue mod
// modulus, assuming the caller already validated a congruent value exists
// within range.
func lastCongruent(residue, modulus, hi uint64) uint64 {
	if modulus == 0 {
		return residue
	}
	r := residue % modulus
	him := hi % modulus
	var sub uint64
	if him >= r {
		sub = him - r
	} else {
		sub = modulus - (r - him)
	}
	return hi - sub
}
