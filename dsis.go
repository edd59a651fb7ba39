package vsa

import "fmt"

// DiscreteStridedIntervalSet holds a small, bounded set of SIs that are
// kept apart rather than merged into one covering SI, for precision
// (spec.md §3's DSIS, gated by Policy.AllowDSIS/DSISLimit). Once the
// member count would exceed the policy's limit, the set collapses to the
// single covering SI Union would have produced.
type DiscreteStridedIntervalSet struct {
	W       uint8
	members []StridedInterval
}

// NewDSIS builds a DSIS from a set of same-width SIs, deduplicating
// members that are already Identical.
func NewDSIS(w uint8, members ...StridedInterval) DiscreteStridedIntervalSet {
	d := DiscreteStridedIntervalSet{W: w}
	for _, m := range members {
		d = d.insert(m)
	}
	return d
}

func (d DiscreteStridedIntervalSet) insert(m StridedInterval) DiscreteStridedIntervalSet {
	if m.IsEmpty() {
		return d
	}
	for _, existing := range d.members {
		if existing.Identical(m) {
			return d
		}
	}
	d.members = append(append([]StridedInterval{}, d.members...), m)
	return d
}

// Members returns the discrete pieces, in insertion order.
func (d DiscreteStridedIntervalSet) Members() []StridedInterval { return d.members }

// Len reports how many discrete pieces the set currently holds.
func (d DiscreteStridedIntervalSet) Len() int { return len(d.members) }

// Collapse folds every member into the single smallest covering SI,
// matching what a plain Union chain across the members would produce.
func (d DiscreteStridedIntervalSet) Collapse(pol Policy) (StridedInterval, error) {
	return unionAll(d.members, pol)
}

// UnionSI merges a plain SI into the set, either appending it as a new
// discrete member (when under the policy's limit) or collapsing the
// whole set down to one covering SI once the limit would be exceeded.
// collapsed reports which case happened: when true, result holds the
// single covering SI and the returned set is a fresh one-member DSIS
// wrapping it; when false, result is the zero StridedInterval and the
// returned set holds the appended discrete member.
func (d DiscreteStridedIntervalSet) UnionSI(si StridedInterval, pol Policy) (out DiscreteStridedIntervalSet, result StridedInterval, collapsed bool, err error) {
	if si.IsEmpty() {
		return d, StridedInterval{}, false, nil
	}
	if !pol.AllowDSIS {
		covered, err := d.Collapse(pol)
		if err != nil {
			return d, StridedInterval{}, false, err
		}
		merged, err := covered.Union(si, pol)
		if err != nil {
			return d, StridedInterval{}, false, err
		}
		return NewDSIS(d.W, merged), merged, true, nil
	}
	candidate := d.insert(si)
	if candidate.Len() > pol.DSISLimit {
		merged, err := candidate.Collapse(pol)
		if err != nil {
			return d, StridedInterval{}, false, err
		}
		return NewDSIS(d.W, merged), merged, true, nil
	}
	return candidate, StridedInterval{}, false, nil
}

// applyBinary distributes a binary SI operation across the cross product
// of two DSIS's members, then re-collapses/reforms under Policy — the
// cardinality-aware fan-out shape the source's DSIS math distributes
// operations across its member SIs the same way.
func applyBinary(a, b DiscreteStridedIntervalSet, pol Policy, op func(x, y StridedInterval) (StridedInterval, error)) (DiscreteStridedIntervalSet, error) {
	out := DiscreteStridedIntervalSet{W: a.W}
	for _, x := range a.members {
		for _, y := range b.members {
			r, err := op(x, y)
			if err != nil {
				return DiscreteStridedIntervalSet{}, err
			}
			next, _, _, err := out.UnionSI(r, pol)
			if err != nil {
				return DiscreteStridedIntervalSet{}, err
			}
			out = next
		}
	}
	return out, nil
}

// Add/Sub/Mul/And/Or/Xor distribute the corresponding SI operation across
// every pair of members, per spec.md §5's "operations distribute over
// DSIS members" rule.
func (d DiscreteStridedIntervalSet) Add(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Add(y) })
}

func (d DiscreteStridedIntervalSet) Sub(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Sub(y) })
}

func (d DiscreteStridedIntervalSet) Mul(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Mul(y) })
}

func (d DiscreteStridedIntervalSet) And(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.And(y, pol) })
}

func (d DiscreteStridedIntervalSet) Or(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Or(y, pol) })
}

func (d DiscreteStridedIntervalSet) Xor(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Xor(y, pol) })
}

// Intersection distributes SI-intersection across every member pair,
// dropping pairs that don't overlap (applyBinary's UnionSI already skips
// empty results) and collapsing past the policy's limit like every other
// binary DSIS op.
func (d DiscreteStridedIntervalSet) Intersection(o DiscreteStridedIntervalSet, pol Policy) (DiscreteStridedIntervalSet, error) {
	return applyBinary(d, o, pol, func(x, y StridedInterval) (StridedInterval, error) { return x.Intersection(y, pol) })
}

// compareAll folds a per-SI comparator across every member pair of two
// DSIS's, combining the pair-level results with three-valued AND: a DSIS
// stands for one concrete value that happens to land in one of its
// member ranges, so a comparison only resolves crisply when every
// possible member pairing agrees (spec.md §4.2) — computing each pair
// directly (rather than deriving, say, <= by negating a >  computed the
// same way) is what lets r_1 <= r_2 resolve to True even when r_1 < r_2
// alone is Maybe.
func compareAll(a, b DiscreteStridedIntervalSet, cmp func(x, y StridedInterval) BoolResult) BoolResult {
	result := BoolMaybe
	first := true
	for _, x := range a.members {
		for _, y := range b.members {
			r := cmp(x, y)
			if first {
				result = r
				first = false
				continue
			}
			result = result.And(r)
		}
	}
	return result
}

func (d DiscreteStridedIntervalSet) Eq(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.Eq(y) })
}

func (d DiscreteStridedIntervalSet) Neq(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.Neq(y) })
}

func (d DiscreteStridedIntervalSet) ULT(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.ULT(y) })
}

func (d DiscreteStridedIntervalSet) ULE(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.ULE(y) })
}

func (d DiscreteStridedIntervalSet) UGT(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.UGT(y) })
}

func (d DiscreteStridedIntervalSet) UGE(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.UGE(y) })
}

func (d DiscreteStridedIntervalSet) SLT(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.SLT(y) })
}

func (d DiscreteStridedIntervalSet) SLE(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.SLE(y) })
}

func (d DiscreteStridedIntervalSet) SGT(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.SGT(y) })
}

func (d DiscreteStridedIntervalSet) SGE(o DiscreteStridedIntervalSet) BoolResult {
	return compareAll(d, o, func(x, y StridedInterval) BoolResult { return x.SGE(y) })
}

func (d DiscreteStridedIntervalSet) String() string {
	return fmt.Sprintf("DSIS<%d>%v", d.W, d.members)
}
