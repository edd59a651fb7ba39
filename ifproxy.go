package vsa

import "fmt"

// IfProxy is the three-valued conditional wrapper from spec.md §3: the
// symbolic result of `If(cond, trueVal, falseVal)` kept unevaluated so
// later operations can distribute over the branches instead of eagerly
// collapsing to a single over-approximated value (spec.md's "branch-aware
// precision" motivation).
type IfProxy struct {
	Cond      BoolResult
	TrueVal   StridedInterval
	FalseVal  StridedInterval
	hasBranch bool
}

// If builds an IfProxy, collapsing immediately when cond is already crisp
// (True/False): a crisp condition needs no proxy at all, it just picks a
// branch, matching the source's IfProxy.If() which returns the bare
// branch value rather than wrapping when the condition isn't Maybe.
func If(cond BoolResult, trueVal, falseVal StridedInterval) (AbstractValue, error) {
	if trueVal.W != falseVal.W {
		return AbstractValue{}, widthMismatch(trueVal.W, falseVal.W)
	}
	switch cond {
	case BoolTrue:
		return FromSI(trueVal), nil
	case BoolFalse:
		return FromSI(falseVal), nil
	default:
		return FromIfProxy(IfProxy{Cond: BoolMaybe, TrueVal: trueVal, FalseVal: falseVal, hasBranch: true}), nil
	}
}

// crispIfProxy lifts a plain SI into the degenerate IfProxy used as the
// common ground when only one side of a binary op is actually an
// IfProxy: both branches are the same value, so distributing over them
// is equivalent to operating on the SI directly.
func crispIfProxy(si StridedInterval) IfProxy {
	return IfProxy{Cond: BoolTrue, TrueVal: si, FalseVal: si, hasBranch: true}
}

func (ifp IfProxy) Width() uint8 { return ifp.TrueVal.W }

// CollapseSI unions both branches into one covering SI, the same
// "observe, don't distinguish" fallback ValueSet.CollapseSI uses for
// regions.
func (ifp IfProxy) CollapseSI(pol Policy) (StridedInterval, error) {
	if !ifp.hasBranch {
		return Empty(0), nil
	}
	return ifp.TrueVal.Union(ifp.FalseVal, pol)
}

// distributeBinary applies a binary SI op across this IfProxy and
// another, branch by branch. When both sides carry a live condition, the
// combination is a best-effort cross merge: matching the source's
// comment that combining two independent IfProxies exactly would require
// tracking joint conditions, so the cross product's true/true and
// false/false branches are paired as the new true/false branches
// (assuming the two conditions are correlated), which is the
// conservative choice spec.md §9 leaves open ("IfProxy-combining
// policy").
func (ifp IfProxy) distributeBinary(o IfProxy, pol Policy, op func(a, b StridedInterval) (StridedInterval, error)) (IfProxy, error) {
	trueVal, err := op(ifp.TrueVal, o.TrueVal)
	if err != nil {
		return IfProxy{}, err
	}
	falseVal, err := op(ifp.FalseVal, o.FalseVal)
	if err != nil {
		return IfProxy{}, err
	}
	cond := ifp.Cond
	if cond == BoolTrue {
		cond = o.Cond
	}
	return IfProxy{Cond: cond, TrueVal: trueVal, FalseVal: falseVal, hasBranch: true}, nil
}

func (ifp IfProxy) String() string {
	if !ifp.hasBranch {
		return "IfProxy<empty>"
	}
	return fmt.Sprintf("If(%s, %s, %s)", ifp.Cond, ifp.TrueVal, ifp.FalseVal)
}
