package vsa

// si_compare.go implements the three-valued comparisons from spec.md §4.1:
// each predicate returns BoolTrue/BoolFalse only when every pair of
// concrete elements agrees, else BoolMaybe.

// Eq returns BoolTrue when both SIs are identical singletons, BoolFalse
// when their ranges cannot possibly overlap, else BoolMaybe.
func (si StridedInterval) Eq(o StridedInterval) BoolResult {
	if si.W != o.W {
		return BoolMaybe
	}
	if si.Uninitialized || o.Uninitialized {
		return BoolMaybe
	}
	if si.empty || o.empty {
		return BoolMaybe
	}
	if si.IsSingleton() && o.IsSingleton() {
		if si.Lower == o.Lower {
			return BoolTrue
		}
		return BoolFalse
	}
	if !rangesOverlap(si, o) {
		return BoolFalse
	}
	return BoolMaybe
}

// Neq is the negation of Eq.
func (si StridedInterval) Neq(o StridedInterval) BoolResult {
	return si.Eq(o).Not()
}

func rangesOverlap(a, b StridedInterval) bool {
	for _, sa := range a.UnsignedBounds() {
		for _, sb := range b.UnsignedBounds() {
			if sa.Lo <= sb.Hi && sb.Lo <= sa.Hi {
				return true
			}
		}
	}
	return false
}

// ULT/ULE/UGT/UGE compare under unsigned interpretation.
func (si StridedInterval) ULT(o StridedInterval) BoolResult {
	if si.Uninitialized || o.Uninitialized {
		return BoolMaybe
	}
	return compareBounds(si.unsignedMax(), o.unsignedMin(), si.unsignedMin(), o.unsignedMax(), true, false)
}

func (si StridedInterval) ULE(o StridedInterval) BoolResult {
	if si.Uninitialized || o.Uninitialized {
		return BoolMaybe
	}
	return compareBounds(si.unsignedMax(), o.unsignedMin(), si.unsignedMin(), o.unsignedMax(), true, true)
}

func (si StridedInterval) UGT(o StridedInterval) BoolResult {
	return o.ULT(si)
}

func (si StridedInterval) UGE(o StridedInterval) BoolResult {
	return o.ULE(si)
}

// SLT/SLE/SGT/SGE compare under signed interpretation.
func (si StridedInterval) SLT(o StridedInterval) BoolResult {
	if si.Uninitialized || o.Uninitialized {
		return BoolMaybe
	}
	return compareBounds(uint64(si.signedMax()), uint64(o.signedMin()), uint64(si.signedMin()), uint64(o.signedMax()), false, false)
}

func (si StridedInterval) SLE(o StridedInterval) BoolResult {
	if si.Uninitialized || o.Uninitialized {
		return BoolMaybe
	}
	return compareBounds(uint64(si.signedMax()), uint64(o.signedMin()), uint64(si.signedMin()), uint64(o.signedMax()), false, true)
}

func (si StridedInterval) SGT(o StridedInterval) BoolResult {
	return o.SLT(si)
}

func (si StridedInterval) SGE(o StridedInterval) BoolResult {
	return o.SLE(si)
}

// compareBounds decides "<" (or "<=" when orEqual) given each side's max
// and min under the chosen interpretation: always-true when this side's
// max is already below (or equal, for <=) the other's min; always-false
// when this side's min already exceeds the other's max; else Maybe.
// unsigned selects which raw comparison to apply to the uint64-encoded
// bound values (unsigned: direct; signed: interpreted via int64 by the
// caller already baking the sign into the uint64 bit pattern is wrong, so
// the signed callers instead pass already-computed int64 bounds cast to
// uint64 and we branch on the flag to compare them as int64).
func compareBounds(thisMax, otherMin, thisMin, otherMax uint64, unsigned, orEqual bool) BoolResult {
	var trueCase, falseCase bool
	if unsigned {
		if orEqual {
			trueCase = thisMax <= otherMin
		} else {
			trueCase = thisMax < otherMin
		}
		falseCase = thisMin > otherMax && !(orEqual && thisMin == otherMax)
		if orEqual {
			falseCase = thisMin > otherMax
		}
	} else {
		tMax, oMin, tMin, oMax := int64(thisMax), int64(otherMin), int64(thisMin), int64(otherMax)
		if orEqual {
			trueCase = tMax <= oMin
			falseCase = tMin > oMax
		} else {
			trueCase = tMax < oMin
			falseCase = tMin >= oMax
		}
	}
	if trueCase {
		return BoolTrue
	}
	if falseCase {
		return BoolFalse
	}
	return BoolMaybe
}
