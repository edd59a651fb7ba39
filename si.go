package vsa

import (
	"fmt"
	"math/big"
)

// StridedInterval is the wrapped, modular interval <w>s[l, u] from
// spec.md §3/§4.1: the set { (l + k*s) mod 2^w : 0 <= k <= card-1 }.
// Values are never mutated in place; every operation returns a fresh SI,
// matching the teacher's "never mutate, always return a new struct" style
// (nes's status/CPU types are likewise copied, not aliased, across Step()
// calls).
type StridedInterval struct {
	W             uint8
	Stride        uint64
	Lower         uint64
	Upper         uint64
	empty         bool
	Uninitialized bool
}

// Segment is a non-wrapped [Lo, Hi] unsigned range, the building block
// `unsigned_bounds`/`signed_bounds` decompose an SI into (spec.md §4.1).
type Segment struct {
	Lo, Hi uint64
}

// Empty returns the distinguished empty SI of width w (spec.md §3).
func Empty(w uint8) StridedInterval {
	return StridedInterval{W: w, empty: true}
}

// Top returns Top_w, the unique <w, 1, 0, 2^w-1> SI denoting every value.
func Top(w uint8) StridedInterval {
	return StridedInterval{W: w, Stride: 1, Lower: 0, Upper: mask(w)}
}

// Singleton builds a one-element SI from a concrete unsigned w-bit value.
func Singleton(w uint8, v uint64) StridedInterval {
	v &= mask(w)
	return StridedInterval{W: w, Stride: 0, Lower: v, Upper: v}
}

// SingletonSigned builds a singleton from a signed literal, the BVV(v, w)
// constructor from spec.md §6.
func SingletonSigned(w uint8, v int64) StridedInterval {
	return Singleton(w, ToUnsigned(w, v))
}

// New is the explicit-tuple constructor SI(w, stride, lower, upper) from
// spec.md §6. lower/upper must already be masked into [0, 2^w); use
// ToUnsigned to convert a signed literal first.
func New(w uint8, stride, lower, upper uint64) (StridedInterval, error) {
	if err := checkWidth(w); err != nil {
		return StridedInterval{}, err
	}
	m := mask(w)
	if lower&^m != 0 || upper&^m != 0 {
		return StridedInterval{}, invalidSI("lower/upper out of range for width")
	}
	if stride == 0 && lower != upper {
		return StridedInterval{}, invalidSI("zero stride requires lower == upper")
	}
	return canonical(w, stride, lower, upper), nil
}

// canonical normalizes (stride, lower, upper) into the invariants spec.md
// §3 requires: a singleton always has stride 0.
func canonical(w uint8, stride, lower, upper uint64) StridedInterval {
	lower &= mask(w)
	upper &= mask(w)
	if lower == upper {
		stride = 0
	}
	return StridedInterval{W: w, Stride: stride, Lower: lower, Upper: upper}
}

// IsEmpty reports whether this SI is the distinguished empty sentinel.
func (si StridedInterval) IsEmpty() bool { return si.empty }

// IsSingleton reports whether the SI denotes exactly one value.
func (si StridedInterval) IsSingleton() bool { return !si.empty && si.Stride == 0 }

// IsTop reports whether this is exactly Top_w; PrecisionDegraded (spec.md
// §7) is observable through this predicate, never through an error.
func (si StridedInterval) IsTop() bool {
	return !si.empty && si.W > 0 && si.Stride == 1 && si.Lower == 0 && si.Upper == mask(si.W)
}

// wrapsUnsigned reports whether the SI crosses the 2^w-1 -> 0 boundary.
func (si StridedInterval) wrapsUnsigned() bool {
	return !si.empty && si.Lower > si.Upper
}

// cardinality returns the number of elements this SI denotes.
func (si StridedInterval) cardinality() *big.Int {
	if si.empty {
		return big.NewInt(0)
	}
	if si.Stride == 0 {
		return big.NewInt(1)
	}
	diff := bigU64(subMod(si.W, si.Upper, si.Lower))
	str := bigU64(si.Stride)
	q := new(big.Int).Div(diff, str)
	return q.Add(q, big.NewInt(1))
}

// Cardinality exposes the element count for callers (e.g. the REPL).
func (si StridedInterval) Cardinality() *big.Int { return si.cardinality() }

// UnsignedBounds returns the non-wrapped unsigned segments, 1 for a
// non-wrapped SI, 2 for a wrapped one, per spec.md §4.1.
func (si StridedInterval) UnsignedBounds() []Segment {
	if si.empty {
		return nil
	}
	if !si.wrapsUnsigned() {
		return []Segment{{Lo: si.Lower, Hi: si.Upper}}
	}
	return []Segment{{Lo: si.Lower, Hi: mask(si.W)}, {Lo: 0, Hi: si.Upper}}
}

// SignedBounds splits the SI's unsigned segments again at the signed
// boundary 2^(w-1), returning up to two segments tagged by which signed
// half (non-negative vs negative) they fall in, per spec.md §4.1. Segments
// are reported in the order [non-negative, negative] to match the source
// test's `_signed_bounds` fixture.
func (si StridedInterval) SignedBounds() []Segment {
	if si.empty {
		return nil
	}
	signBit := uint64(1) << (si.W - 1)
	var nonNeg, neg []Segment
	for _, seg := range si.UnsignedBounds() {
		if seg.Hi < signBit {
			nonNeg = append(nonNeg, seg)
			continue
		}
		if seg.Lo >= signBit {
			neg = append(neg, seg)
			continue
		}
		nonNeg = append(nonNeg, Segment{Lo: seg.Lo, Hi: signBit - 1})
		neg = append(neg, Segment{Lo: signBit, Hi: seg.Hi})
	}
	out := append([]Segment{}, nonNeg...)
	return append(out, neg...)
}

// unsignedMin / unsignedMax scan the unsigned segments for extrema, used
// by the unsigned comparisons.
func (si StridedInterval) unsignedMin() uint64 {
	segs := si.UnsignedBounds()
	m := segs[0].Lo
	for _, s := range segs[1:] {
		if s.Lo < m {
			m = s.Lo
		}
	}
	return m
}

func (si StridedInterval) unsignedMax() uint64 {
	segs := si.UnsignedBounds()
	m := segs[0].Hi
	for _, s := range segs[1:] {
		if s.Hi > m {
			m = s.Hi
		}
	}
	return m
}

// signedMin / signedMax scan the signed segments for extrema (int64, since
// MaxBits caps at 64).
func (si StridedInterval) signedMin() int64 {
	segs := si.SignedBounds()
	m := ToSigned(si.W, segs[0].Lo)
	for _, s := range segs[1:] {
		if v := ToSigned(si.W, s.Lo); v < m {
			m = v
		}
	}
	return m
}

func (si StridedInterval) signedMax() int64 {
	segs := si.SignedBounds()
	m := ToSigned(si.W, segs[0].Hi)
	for _, s := range segs[1:] {
		if v := ToSigned(si.W, s.Hi); v > m {
			m = v
		}
	}
	return m
}

// Contains reports whether the concrete w-bit value v (given unsigned) is
// one of the elements of si.
func (si StridedInterval) Contains(v uint64) bool {
	if si.empty {
		return false
	}
	v &= mask(si.W)
	if si.Stride == 0 {
		return v == si.Lower
	}
	offset := subMod(si.W, v, si.Lower)
	if offset%si.Stride != 0 {
		return false
	}
	return bigU64(offset).Cmp(new(big.Int).Mul(bigU64(si.Stride), new(big.Int).Sub(si.cardinality(), big.NewInt(1)))) <= 0
}

// Eval enumerates up to n concrete elements in canonical (unsigned,
// starting at Lower, stepping by Stride, wrapping) order, per spec.md
// §4.1.
func (si StridedInterval) Eval(n int) []uint64 {
	if si.empty || n <= 0 {
		return nil
	}
	card := si.cardinality()
	limit := big.NewInt(int64(n))
	if card.Cmp(limit) < 0 {
		limit = card
	}
	count := int(limit.Int64())
	out := make([]uint64, 0, count)
	v := si.Lower
	step := si.Stride
	if step == 0 {
		return []uint64{v}
	}
	for i := 0; i < count; i++ {
		out = append(out, v)
		v = addMod(si.W, v, step)
	}
	return out
}

// Min returns the SI's minimum element under signed interpretation, Max
// under unsigned interpretation: this asymmetric choice is deliberate and
// matches the IfProxy min/max test fixture in spec.md §4.1 ("VSA uses
// signed min and unsigned max").
func (si StridedInterval) Min() int64  { return si.signedMin() }
func (si StridedInterval) Max() uint64 { return si.unsignedMax() }

func (si StridedInterval) String() string {
	if si.empty {
		return fmt.Sprintf("<%d>Empty", si.W)
	}
	if si.IsSingleton() {
		return fmt.Sprintf("<%d>0x%x", si.W, si.Lower)
	}
	return fmt.Sprintf("<%d>0x%x[0x%x, 0x%x]", si.W, si.Stride, si.Lower, si.Upper)
}

// taintOf reports whether any operand's Uninitialized flag should carry
// forward onto a value derived from it (spec.md §9: the flag propagates
// monotonically — once an operand is uninitialized, so is everything
// computed from it).
func taintOf(sis ...StridedInterval) bool {
	for _, s := range sis {
		if s.Uninitialized {
			return true
		}
	}
	return false
}

// withTaint returns si with Uninitialized forced to taint, the single
// place every operation funnels its result through before returning.
func withTaint(si StridedInterval, taint bool) StridedInterval {
	si.Uninitialized = taint
	return si
}

// Identical is structural equality over the four fields, the `identical`
// operation from spec.md §6 (distinct from the three-valued `==`).
func (si StridedInterval) Identical(o StridedInterval) bool {
	if si.W != o.W {
		return false
	}
	if si.empty != o.empty {
		return false
	}
	if si.empty {
		return true
	}
	return si.Stride == o.Stride && si.Lower == o.Lower && si.Upper == o.Upper
}
