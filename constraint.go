package vsa

// constraint.go implements the `constraint_to_si` reducer: given a free
// variable and a boolean expression over it, refine the variable's
// current StridedInterval to the (sound, possibly still imprecise) subset
// consistent with the constraint holding. This is deliberately a pattern
// matcher over a handful of shapes the source's constraint solver
// recognizes rather than a general SMT-style solver — anything outside
// those shapes falls back to returning the variable's domain unchanged
// (still sound: "constraint unknown" never excludes a real solution).

// Var is a free/symbolic leaf: the thing constraint_to_si refines,
// carrying its own current abstract domain the way a claripy BVS carries
// a name and an implicit unconstrained range.
type Var struct {
	Name   string
	Width_ uint8
	Domain StridedInterval
}

func (v Var) OpName() string   { return "Var:" + v.Name }
func (v Var) Operands() []Expr { return nil }
func (v Var) BitWidth() uint8  { return v.Width_ }

func (v Var) sameVar(e Expr) bool {
	other, ok := e.(Var)
	return ok && other.Name == v.Name
}

// ConstraintToSI refines v's domain under the assumption that constraint
// evaluates to true. pol is accepted for API symmetry; the range
// refinements intersect under DefaultPolicy and always return a single SI.
func ConstraintToSI(v Var, constraint Expr, pol Policy) (StridedInterval, error) {
	return refine(v, constraint, pol)
}

func refine(v Var, e Expr, pol Policy) (StridedInterval, error) {
	switch e.OpName() {
	case OpEq:
		return refineEq(v, e, pol)
	case OpNe:
		return refineNe(v, e, pol)
	case OpSLT:
		return refineSLT(v, e, pol)
	case OpSGE:
		return refineSGE(v, e, pol)
	case OpULT:
		return refineULT(v, e, pol)
	case OpUGE:
		return refineUGE(v, e, pol)
	default:
		return v.Domain, nil
	}
}

// refineEq recognizes two shapes:
//  1. v == k for a concrete literal k: the domain collapses to {k}.
//  2. Extract/ZeroExt/Concat(If(P(v), 1, 0)) == 1: the familiar "compiled
//     boolean" pattern used to embed a condition as a 1-bit field. The
//     collapse strips the wrapping width-conversion ops down to the If
//     node and recurses into its condition, since asserting the compiled
//     bit is 1 is exactly asserting P(v).
func refineEq(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	lhs, rhs := ops[0], ops[1]
	if v.sameVar(lhs) {
		if leaf, ok := rhs.(Leaf); ok {
			return leaf.Value, nil
		}
	}
	if v.sameVar(rhs) {
		if leaf, ok := lhs.(Leaf); ok {
			return leaf.Value, nil
		}
	}
	if cond, ok := asCompiledBoolEqOne(lhs, rhs); ok {
		return refine(v, cond, pol)
	}
	if cond, ok := asCompiledBoolEqOne(rhs, lhs); ok {
		return refine(v, cond, pol)
	}
	return v.Domain, nil
}

// refineNe mirrors refineEq for disequality: v != k excludes the single
// point k from the domain (shrinking an edge if k sits at Lower/Upper,
// otherwise leaving the domain unchanged since removing an interior
// point from a strided interval isn't expressible without a DSIS split).
// The compiled-bool pattern is handled by recursing with the condition
// negated: If(P(v),1,0) != 1 means P(v) is false.
func refineNe(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	lhs, rhs := ops[0], ops[1]
	if cond, ok := asCompiledBoolEqOne(lhs, rhs); ok {
		return refineNegated(v, cond)
	}
	if cond, ok := asCompiledBoolEqOne(rhs, lhs); ok {
		return refineNegated(v, cond)
	}
	if v.sameVar(lhs) {
		if leaf, ok := rhs.(Leaf); ok {
			return excludePoint(v.Domain, v.Width_, leaf.Value.Lower)
		}
	}
	if v.sameVar(rhs) {
		if leaf, ok := lhs.(Leaf); ok {
			return excludePoint(v.Domain, v.Width_, leaf.Value.Lower)
		}
	}
	return v.Domain, nil
}

// refineNegated refines v under the assumption that cond is false; only
// the v == k shape is recognized (excluding the point k).
func refineNegated(v Var, cond Expr) (StridedInterval, error) {
	if cond.OpName() != OpEq {
		return v.Domain, nil
	}
	ops := cond.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	if v.sameVar(ops[0]) {
		if leaf, ok := ops[1].(Leaf); ok {
			return excludePoint(v.Domain, v.Width_, leaf.Value.Lower)
		}
	}
	if v.sameVar(ops[1]) {
		if leaf, ok := ops[0].(Leaf); ok {
			return excludePoint(v.Domain, v.Width_, leaf.Value.Lower)
		}
	}
	return v.Domain, nil
}

// excludePoint removes the single value k from domain when it sits at an
// edge (Lower or Upper); an interior point can't be excluded without
// splitting into a DSIS, so the domain is left unchanged (sound, if
// imprecise).
func excludePoint(domain StridedInterval, w uint8, k uint64) (StridedInterval, error) {
	if !domain.Contains(k) {
		return domain, nil
	}
	if domain.IsSingleton() {
		return Empty(w), nil
	}
	if domain.Lower == k {
		newLower := addMod(w, domain.Lower, domain.Stride)
		return canonical(w, domain.Stride, newLower, domain.Upper), nil
	}
	if domain.Upper == k {
		newUpper := subMod(w, domain.Upper, domain.Stride)
		return canonical(w, domain.Stride, domain.Lower, newUpper), nil
	}
	return domain, nil
}

// asCompiledBoolEqOne checks whether wrapped is Extract/ZeroExt/Concat
// nested around an If(cond, 1, 0) and other is the literal 1, returning
// cond if so.
func asCompiledBoolEqOne(wrapped, other Expr) (Expr, bool) {
	leaf, ok := other.(Leaf)
	if !ok || leaf.Value.cardinality().Sign() == 0 || !leaf.Value.IsSingleton() || leaf.Value.Lower != 1 {
		return nil, false
	}
	inner := stripWidthOps(wrapped)
	ifExpr, ok := inner.(ifExprNode)
	if !ok {
		return nil, false
	}
	return ifExpr.Cond, true
}

// ifExprNode is the Expr-tree form of If(cond, 1, 0): kept separate from
// the evaluated IfProxy type since constraint reduction works over
// unevaluated expression trees.
type ifExprNode struct {
	Cond     Expr
	Width_   uint8
}

func (n ifExprNode) OpName() string   { return OpIf }
func (n ifExprNode) Operands() []Expr { return []Expr{n.Cond} }
func (n ifExprNode) BitWidth() uint8  { return n.Width_ }

// stripWidthOps unwraps Extract/ZeroExt/Concat/SignExt nodes down to
// their operand of interest: Extract/ZeroExt/SignExt have exactly one
// operand to descend into; Concat descends into whichever operand isn't
// a zero-constant (the zero-padding side).
func stripWidthOps(e Expr) Expr {
	for {
		switch e.OpName() {
		case OpExtract, OpZeroExt, OpSignExt:
			ops := e.Operands()
			if len(ops) != 1 {
				return e
			}
			e = ops[0]
		case OpConcat:
			ops := e.Operands()
			if len(ops) != 2 {
				return e
			}
			if isZeroLeaf(ops[0]) {
				e = ops[1]
				continue
			}
			if isZeroLeaf(ops[1]) {
				e = ops[0]
				continue
			}
			return e
		default:
			return e
		}
	}
}

func isZeroLeaf(e Expr) bool {
	leaf, ok := e.(Leaf)
	return ok && leaf.Value.IsSingleton() && leaf.Value.Lower == 0
}

// refineSLT handles `v SLT k` / `k SLT v` for a literal k, clamping v's
// domain to the signed half-open range consistent with the inequality via
// Intersection with the corresponding SI.
func refineSLT(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	w := v.Width_
	if v.sameVar(ops[0]) {
		if leaf, ok := ops[1].(Leaf); ok {
			k := ToSigned(w, leaf.Value.Lower)
			return clampSigned(v, w, signedMinOf(w), k-1)
		}
	}
	if v.sameVar(ops[1]) {
		if leaf, ok := ops[0].(Leaf); ok {
			k := ToSigned(w, leaf.Value.Lower)
			return clampSigned(v, w, k+1, signedMaxOf(w))
		}
	}
	return v.Domain, nil
}

func refineSGE(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	w := v.Width_
	if v.sameVar(ops[0]) {
		if leaf, ok := ops[1].(Leaf); ok {
			k := ToSigned(w, leaf.Value.Lower)
			return clampSigned(v, w, k, signedMaxOf(w))
		}
	}
	return v.Domain, nil
}

func refineULT(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	w := v.Width_
	if v.sameVar(ops[0]) {
		if leaf, ok := ops[1].(Leaf); ok && leaf.Value.Lower > 0 {
			return clampUnsigned(v, w, 0, leaf.Value.Lower-1)
		}
	}
	return v.Domain, nil
}

func refineUGE(v Var, e Expr, pol Policy) (StridedInterval, error) {
	ops := e.Operands()
	if len(ops) != 2 {
		return v.Domain, nil
	}
	w := v.Width_
	if v.sameVar(ops[0]) {
		if leaf, ok := ops[1].(Leaf); ok {
			return clampUnsigned(v, w, leaf.Value.Lower, mask(w))
		}
	}
	return v.Domain, nil
}

func signedMinOf(w uint8) int64 { return ToSigned(w, uint64(1)<<(w-1)) }
func signedMaxOf(w uint8) int64 { return ToSigned(w, (uint64(1)<<(w-1))-1) }

func clampSigned(v Var, w uint8, lo, hi int64) (StridedInterval, error) {
	if lo > hi {
		return Empty(w), nil
	}
	bound, err := New(w, 1, ToUnsigned(w, lo), ToUnsigned(w, hi))
	if err != nil {
		return StridedInterval{}, err
	}
	return v.Domain.Intersection(bound, DefaultPolicy)
}

func clampUnsigned(v Var, w uint8, lo, hi uint64) (StridedInterval, error) {
	if lo > hi {
		return Empty(w), nil
	}
	bound, err := New(w, 1, lo, hi)
	if err != nil {
		return StridedInterval{}, err
	}
	return v.Domain.Intersection(bound, DefaultPolicy)
}
