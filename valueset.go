package vsa

import (
	"fmt"
	"sort"
)

// ValueSet is a region -> StridedInterval map (spec.md §3): the same
// abstract value tracked separately per memory region (e.g. "global",
// stack frames, heap allocations), joined with the special "none" region
// whenever the region is unknown. ValueSet is immutable; every mutator
// returns a new map, mirroring the teacher's status struct's
// encode/decode-by-value pattern rather than in-place field mutation.
type ValueSet struct {
	W       uint8
	regions map[string]StridedInterval
}

// NewValueSet builds an empty ValueSet of width w.
func NewValueSet(w uint8) ValueSet {
	return ValueSet{W: w, regions: map[string]StridedInterval{}}
}

// SingleRegion builds a ValueSet with exactly one region populated,
// matching ValueSet(region, bits, val) used throughout the source tests.
func SingleRegion(w uint8, region string, si StridedInterval) ValueSet {
	return NewValueSet(w).MergeSI(region, si, DefaultPolicy)
}

// MergeSI joins si into the named region (creating it if absent), never
// mutating the receiver.
func (vs ValueSet) MergeSI(region string, si StridedInterval, pol Policy) ValueSet {
	next := ValueSet{W: vs.W, regions: make(map[string]StridedInterval, len(vs.regions)+1)}
	for k, v := range vs.regions {
		next.regions[k] = v
	}
	if existing, ok := next.regions[region]; ok {
		merged, err := existing.Union(si, pol)
		if err == nil {
			next.regions[region] = merged
			return next
		}
	}
	next.regions[region] = si
	return next
}

// GetSI returns the SI tracked for region, or Empty(w) if the region is
// untracked.
func (vs ValueSet) GetSI(region string) StridedInterval {
	if si, ok := vs.regions[region]; ok {
		return si
	}
	return Empty(vs.W)
}

// Regions returns the tracked region names in sorted order, for
// deterministic iteration/printing.
func (vs ValueSet) Regions() []string {
	out := make([]string, 0, len(vs.regions))
	for k := range vs.regions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len reports the bit width, matching the source's `len(value_set)
// == bits` convention.
func (vs ValueSet) Len() uint8 { return vs.W }

// CollapseSI merges every region's SI together via Union, used when a
// ValueSet needs to participate in an operation that only understands a
// flat StridedInterval (spec.md's region-mismatch soundness note: mixing
// regions during arithmetic is exactly the case this collapse avoids
// needing to special-case everywhere else).
func (vs ValueSet) CollapseSI(pol Policy) (StridedInterval, error) {
	var acc StridedInterval
	first := true
	for _, region := range vs.Regions() {
		si := vs.regions[region]
		if first {
			acc = si
			first = false
			continue
		}
		merged, err := acc.Union(si, pol)
		if err != nil {
			return StridedInterval{}, err
		}
		acc = merged
	}
	if first {
		return Empty(vs.W), nil
	}
	return acc, nil
}

// Union merges two ValueSets region-by-region.
func (vs ValueSet) Union(o ValueSet, pol Policy) (ValueSet, error) {
	if vs.W != o.W {
		return ValueSet{}, widthMismatch(vs.W, o.W)
	}
	next := vs
	for _, region := range o.Regions() {
		next = next.MergeSI(region, o.regions[region], pol)
	}
	return next, nil
}

// regionOp applies an SI-level binary op region by region: matching
// region names combine directly, while operating across two different
// non-"none" regions is a region mismatch per spec.md §7 (pointer
// arithmetic across regions isn't a sound single-region result) unless
// one side is the anonymous "none" region, which is treated as "any
// region" and broadcast against every region on the other side.
func regionOp(a, b ValueSet, op func(x, y StridedInterval) (StridedInterval, error)) (ValueSet, error) {
	if a.W != b.W {
		return ValueSet{}, widthMismatch(a.W, b.W)
	}
	out := NewValueSet(a.W)
	aRegions, bRegions := a.Regions(), b.Regions()
	switch {
	case len(aRegions) == 1 && aRegions[0] == "none":
		for _, r := range bRegions {
			si, err := op(a.regions["none"], b.regions[r])
			if err != nil {
				return ValueSet{}, err
			}
			out = out.MergeSI(r, si, DefaultPolicy)
		}
		return out, nil
	case len(bRegions) == 1 && bRegions[0] == "none":
		for _, r := range aRegions {
			si, err := op(a.regions[r], b.regions["none"])
			if err != nil {
				return ValueSet{}, err
			}
			out = out.MergeSI(r, si, DefaultPolicy)
		}
		return out, nil
	case len(aRegions) == 1 && len(bRegions) == 1 && aRegions[0] == bRegions[0]:
		r := aRegions[0]
		si, err := op(a.regions[r], b.regions[r])
		if err != nil {
			return ValueSet{}, err
		}
		out = out.MergeSI(r, si, DefaultPolicy)
		return out, nil
	default:
		return ValueSet{}, regionMismatch(fmt.Sprintf("incompatible regions %v vs %v", aRegions, bRegions))
	}
}

func (vs ValueSet) Add(o ValueSet) (ValueSet, error) {
	return regionOp(vs, o, func(x, y StridedInterval) (StridedInterval, error) { return x.Add(y) })
}

func (vs ValueSet) Sub(o ValueSet) (ValueSet, error) {
	return regionOp(vs, o, func(x, y StridedInterval) (StridedInterval, error) { return x.Sub(y) })
}

// Eq compares ValueSets structurally: True only when every region
// matches exactly, False when regions differ and neither is "none",
// Maybe otherwise (mirrors StridedInterval.Eq's shape one level up).
func (vs ValueSet) Eq(o ValueSet) BoolResult {
	if vs.W != o.W {
		return BoolMaybe
	}
	ra, rb := vs.Regions(), o.Regions()
	sameRegions := len(ra) == len(rb)
	for i := 0; sameRegions && i < len(ra); i++ {
		sameRegions = ra[i] == rb[i]
	}
	if !sameRegions {
		_, aNone := vs.regions["none"]
		_, bNone := o.regions["none"]
		if aNone || bNone {
			return BoolMaybe
		}
		return BoolFalse
	}
	result := BoolTrue
	for _, r := range ra {
		result = result.And(vs.regions[r].Eq(o.regions[r]))
	}
	return result
}

func (vs ValueSet) String() string {
	return fmt.Sprintf("VS<%d>%v", vs.W, vs.regions)
}
