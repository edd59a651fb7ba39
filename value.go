package vsa

import "fmt"

// Kind tags which concrete shape an AbstractValue currently holds.
type Kind int

const (
	KindSI Kind = iota
	KindDSIS
	KindVS
	KindIfProxy
)

func (k Kind) String() string {
	switch k {
	case KindSI:
		return "SI"
	case KindDSIS:
		return "DSIS"
	case KindVS:
		return "VS"
	case KindIfProxy:
		return "IfProxy"
	default:
		return "Unknown"
	}
}

// AbstractValue is the tagged-variant dispatcher unifying the four domain
// shapes (StridedInterval, DiscreteStridedIntervalSet, ValueSet, IfProxy)
// behind one type, the "AbstractValue dispatch" shape noted as a Go
// adaptation of the source's duck-typed class hierarchy. Exactly one of
// the si/dsis/vs/ifp fields is meaningful, selected by Kind — this plain
// tagged-struct form was chosen over a Go interface because every
// operation (Add, And, Union, ...) needs to pattern-match on the
// concrete pair of operand kinds to decide how to combine them, which an
// interface's single-dispatch method set can't express directly.
type AbstractValue struct {
	Kind Kind
	si   StridedInterval
	dsis DiscreteStridedIntervalSet
	vs   ValueSet
	ifp  IfProxy
}

func FromSI(si StridedInterval) AbstractValue    { return AbstractValue{Kind: KindSI, si: si} }
func FromDSIS(d DiscreteStridedIntervalSet) AbstractValue { return AbstractValue{Kind: KindDSIS, dsis: d} }
func FromVS(vs ValueSet) AbstractValue           { return AbstractValue{Kind: KindVS, vs: vs} }
func FromIfProxy(ifp IfProxy) AbstractValue      { return AbstractValue{Kind: KindIfProxy, ifp: ifp} }

func (v AbstractValue) AsSI() (StridedInterval, bool) {
	if v.Kind != KindSI {
		return StridedInterval{}, false
	}
	return v.si, true
}

func (v AbstractValue) AsDSIS() (DiscreteStridedIntervalSet, bool) {
	if v.Kind != KindDSIS {
		return DiscreteStridedIntervalSet{}, false
	}
	return v.dsis, true
}

func (v AbstractValue) AsVS() (ValueSet, bool) {
	if v.Kind != KindVS {
		return ValueSet{}, false
	}
	return v.vs, true
}

func (v AbstractValue) AsIfProxy() (IfProxy, bool) {
	if v.Kind != KindIfProxy {
		return IfProxy{}, false
	}
	return v.ifp, true
}

// Width reports the underlying bit width regardless of kind.
func (v AbstractValue) Width() uint8 {
	switch v.Kind {
	case KindSI:
		return v.si.W
	case KindDSIS:
		return v.dsis.W
	case KindVS:
		return v.vs.W
	case KindIfProxy:
		return v.ifp.Width()
	default:
		return 0
	}
}

func (v AbstractValue) String() string {
	switch v.Kind {
	case KindSI:
		return v.si.String()
	case KindDSIS:
		return v.dsis.String()
	case KindVS:
		return v.vs.String()
	case KindIfProxy:
		return v.ifp.String()
	default:
		return "<invalid AbstractValue>"
	}
}

// toSI collapses any value down to a single StridedInterval, used as the
// common ground for operand pairs that mix kinds (e.g. SI op IfProxy):
// DSIS collapses via Union, VS collapses by merging every region, IfProxy
// collapses by unioning both branches. This always loses precision
// relative to keeping the richer shape, so callers should prefer
// same-kind dispatch first and only fall back to toSI for mixed pairs.
func (v AbstractValue) toSI(pol Policy) (StridedInterval, error) {
	switch v.Kind {
	case KindSI:
		return v.si, nil
	case KindDSIS:
		return v.dsis.Collapse(pol)
	case KindVS:
		return v.vs.CollapseSI(pol)
	case KindIfProxy:
		return v.ifp.CollapseSI(pol)
	default:
		return StridedInterval{}, fmt.Errorf("invalid AbstractValue kind %v", v.Kind)
	}
}

// Add dispatches addition by kind: same-kind pairs use the kind's native
// operation; IfProxy on either side distributes over branches; any other
// mixed pair collapses both sides to a single SI first.
func (v AbstractValue) Add(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.Add(b) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.Add(b, pol) },
	)
}

func (v AbstractValue) Sub(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.Sub(b) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.Sub(b, pol) },
	)
}

func (v AbstractValue) Mul(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.Mul(b) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.Mul(b, pol) },
	)
}

func (v AbstractValue) And(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.And(b, pol) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.And(b, pol) },
	)
}

func (v AbstractValue) Or(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.Or(b, pol) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.Or(b, pol) },
	)
}

func (v AbstractValue) Xor(o AbstractValue, pol Policy) (AbstractValue, error) {
	return dispatchBinary(v, o, pol,
		func(a, b StridedInterval) (StridedInterval, error) { return a.Xor(b, pol) },
		func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error) { return a.Xor(b, pol) },
	)
}

// Union is the lattice join across any pair of kinds: same-kind SI/SI
// merges directly; anything touching an IfProxy merges via If's branch
// union; a DSIS on either side concatenates member lists under the
// policy's limit, the other operand collapsed to a one-member DSIS;
// VS/VS merges region by region; everything else collapses to SI first.
func (v AbstractValue) Union(o AbstractValue, pol Policy) (AbstractValue, error) {
	if v.Kind == KindIfProxy || o.Kind == KindIfProxy {
		va, err := v.toSI(pol)
		if err != nil {
			return AbstractValue{}, err
		}
		vb, err := o.toSI(pol)
		if err != nil {
			return AbstractValue{}, err
		}
		merged, err := va.Union(vb, pol)
		return FromSI(merged), err
	}
	if v.Kind == KindDSIS || o.Kind == KindDSIS {
		da := asDSIS(v)
		db := asDSIS(o)
		merged := NewDSIS(da.W, append(append([]StridedInterval{}, da.members...), db.members...)...)
		if merged.Len() > pol.DSISLimit {
			collapsed, err := merged.Collapse(pol)
			return FromSI(collapsed), err
		}
		return FromDSIS(merged), nil
	}
	if v.Kind == KindVS && o.Kind == KindVS {
		merged, err := v.vs.Union(o.vs, pol)
		return FromVS(merged), err
	}
	sa, err := v.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	sb, err := o.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	merged, err := sa.Union(sb, pol)
	return FromSI(merged), err
}

func asDSIS(v AbstractValue) DiscreteStridedIntervalSet {
	if d, ok := v.AsDSIS(); ok {
		return d
	}
	si, err := v.toSI(DefaultPolicy)
	if err != nil {
		return DiscreteStridedIntervalSet{}
	}
	return NewDSIS(si.W, si)
}

// dispatchBinary is the shared shape for Add/Sub/Mul/And/Or/Xor: IfProxy
// on either side distributes the whole operation over both branches of
// the If (and the cross product when both sides are IfProxy); otherwise a
// DSIS on either side uses the DSIS-native op, the other operand
// collapsed to a one-member DSIS, and anything else falls back to plain
// SI arithmetic after collapsing.
func dispatchBinary(
	v, o AbstractValue, pol Policy,
	siOp func(a, b StridedInterval) (StridedInterval, error),
	dsisOp func(a, b DiscreteStridedIntervalSet) (DiscreteStridedIntervalSet, error),
) (AbstractValue, error) {
	if v.Kind == KindIfProxy || o.Kind == KindIfProxy {
		return dispatchIfProxy(v, o, pol, siOp)
	}
	if v.Kind == KindDSIS || o.Kind == KindDSIS {
		d, err := dsisOp(asDSIS(v), asDSIS(o))
		if err != nil {
			return AbstractValue{}, err
		}
		return FromDSIS(d), nil
	}
	sa, err := v.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	sb, err := o.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	r, err := siOp(sa, sb)
	if err != nil {
		return AbstractValue{}, err
	}
	return FromSI(r), nil
}

func dispatchIfProxy(v, o AbstractValue, pol Policy, siOp func(a, b StridedInterval) (StridedInterval, error)) (AbstractValue, error) {
	apply := func(av AbstractValue) (IfProxy, error) {
		if ifp, ok := av.AsIfProxy(); ok {
			return ifp, nil
		}
		si, err := av.toSI(pol)
		if err != nil {
			return IfProxy{}, err
		}
		return crispIfProxy(si), nil
	}
	va, err := apply(v)
	if err != nil {
		return AbstractValue{}, err
	}
	vb, err := apply(o)
	if err != nil {
		return AbstractValue{}, err
	}
	result, err := va.distributeBinary(vb, pol, siOp)
	if err != nil {
		return AbstractValue{}, err
	}
	return FromIfProxy(result), nil
}
