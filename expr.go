package vsa

import "github.com/golang/glog"

// Expr is the minimal contract a caller's expression-tree node must
// satisfy to be folded into a domain value (spec.md §6's Eval). Rather
// than hand a fixed AST type, the package accepts anything shaped like
// this, the same "small interface over caller data" approach the teacher
// uses for its Mapper/CPU op table indirection.
type Expr interface {
	// OpName identifies the operation: one of the constants below, or a
	// leaf op (e.g. "BVV", "BVS") with no operands.
	OpName() string
	// Operands returns the sub-expressions this node consumes, empty for
	// leaves.
	Operands() []Expr
	// BitWidth is this node's result width.
	BitWidth() uint8
}

// Operation names, matching the source test suite's operator vocabulary
// closely enough that a caller translating from claripy-style ASTs doesn't
// need a separate mapping table. Eval folds the arithmetic (add, sub, mul),
// bitwise (and, or, xor, invert), neg, comparison and If nodes; it has no
// case for OpUDiv, OpUMod, the shifts, OpExtract, OpConcat, OpZeroExt or
// OpSignExt and degrades those to Top like any unknown op.
const (
	OpAdd        = "__add__"
	OpSub        = "__sub__"
	OpMul        = "__mul__"
	OpUDiv       = "__floordiv__"
	OpUMod       = "__mod__"
	OpAnd        = "__and__"
	OpOr         = "__or__"
	OpXor        = "__xor__"
	OpNot        = "__invert__"
	OpNeg        = "__neg__"
	OpShl        = "__lshift__"
	OpLshr       = "LShR"
	OpAshr       = "__rshift__"
	OpExtract    = "Extract"
	OpConcat     = "Concat"
	OpZeroExt    = "ZeroExt"
	OpSignExt    = "SignExt"
	OpEq         = "__eq__"
	OpNe         = "__ne__"
	OpULT        = "__lt__"
	OpULE        = "__le__"
	OpUGT        = "__gt__"
	OpUGE        = "__ge__"
	OpSLT        = "SLT"
	OpSLE        = "SLE"
	OpSGT        = "SGT"
	OpSGE        = "SGE"
	OpIf         = "If"
	OpBVV        = "BVV"
)

// Leaf is a concrete literal expression, the simplest Expr a caller can
// hand in (equivalent to claripy's BVV).
type Leaf struct {
	Width uint8
	Value StridedInterval
}

func (l Leaf) OpName() string   { return OpBVV }
func (l Leaf) Operands() []Expr { return nil }
func (l Leaf) BitWidth() uint8  { return l.Width }

// Eval recursively folds an expression tree into an AbstractValue,
// dispatching on OpName. Unrecognized operations degrade soundly to
// Top_w rather than erroring, logged at Info level each time so a missing
// operator is visible without aborting the analysis — the same
// soft-degrade-and-log shape the teacher's mapper falls back to on an
// unmapped cartridge mapper id.
func Eval(e Expr, pol Policy) (AbstractValue, error) {
	if leaf, ok := e.(Leaf); ok {
		return FromSI(leaf.Value), nil
	}
	ops := e.Operands()
	switch e.OpName() {
	case OpAdd, OpSub, OpMul, OpAnd, OpOr, OpXor:
		return evalBinaryArith(e, ops, pol)
	case OpNeg:
		return evalUnaryNeg(ops, pol)
	case OpNot:
		return evalUnaryNot(ops, pol)
	case OpEq, OpNe, OpULT, OpULE, OpUGT, OpUGE, OpSLT, OpSLE, OpSGT, OpSGE:
		return evalCompare(e, ops, pol)
	case OpIf:
		return evalIf(e, ops, pol)
	default:
		glog.Infof("vsa: unrecognized op %q, degrading to Top_%d", e.OpName(), e.BitWidth())
		return FromSI(Top(e.BitWidth())), nil
	}
}

func evalBinaryArith(e Expr, ops []Expr, pol Policy) (AbstractValue, error) {
	if len(ops) != 2 {
		return AbstractValue{}, invalidSI("binary op requires exactly 2 operands")
	}
	a, err := Eval(ops[0], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	b, err := Eval(ops[1], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	switch e.OpName() {
	case OpAdd:
		return a.Add(b, pol)
	case OpSub:
		return a.Sub(b, pol)
	case OpMul:
		return a.Mul(b, pol)
	case OpAnd:
		return a.And(b, pol)
	case OpOr:
		return a.Or(b, pol)
	case OpXor:
		return a.Xor(b, pol)
	}
	return AbstractValue{}, invalidSI("unreachable binary op")
}

func evalUnaryNeg(ops []Expr, pol Policy) (AbstractValue, error) {
	if len(ops) != 1 {
		return AbstractValue{}, invalidSI("neg requires 1 operand")
	}
	a, err := Eval(ops[0], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	si, err := a.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	return FromSI(si.Neg()), nil
}

func evalUnaryNot(ops []Expr, pol Policy) (AbstractValue, error) {
	if len(ops) != 1 {
		return AbstractValue{}, invalidSI("not requires 1 operand")
	}
	a, err := Eval(ops[0], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	si, err := a.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	return FromSI(si.Not()), nil
}

// evalIf evaluates the compiled-bool `If(cond, 1, 0)` node form
// (ifExprNode) used by the constraint reducer: its Cond operand is itself
// an Expr whose evaluation collapses to a crisp or Maybe 1-bit value,
// which becomes the If's own Cond field.
func evalIf(e Expr, ops []Expr, pol Policy) (AbstractValue, error) {
	if len(ops) != 1 {
		return AbstractValue{}, invalidSI("If requires exactly 1 condition operand")
	}
	condVal, err := Eval(ops[0], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	condSI, err := condVal.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	var cond BoolResult
	switch {
	case condSI.IsSingleton() && condSI.Lower == 1:
		cond = BoolTrue
	case condSI.IsSingleton() && condSI.Lower == 0:
		cond = BoolFalse
	default:
		cond = BoolMaybe
	}
	return If(cond, Singleton(1, 1), Singleton(1, 0))
}

func evalCompare(e Expr, ops []Expr, pol Policy) (AbstractValue, error) {
	if len(ops) != 2 {
		return AbstractValue{}, invalidSI("compare requires 2 operands")
	}
	a, err := Eval(ops[0], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	b, err := Eval(ops[1], pol)
	if err != nil {
		return AbstractValue{}, err
	}
	sa, err := a.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	sb, err := b.toSI(pol)
	if err != nil {
		return AbstractValue{}, err
	}
	var result BoolResult
	switch e.OpName() {
	case OpEq:
		result = sa.Eq(sb)
	case OpNe:
		result = sa.Neq(sb)
	case OpULT:
		result = sa.ULT(sb)
	case OpULE:
		result = sa.ULE(sb)
	case OpUGT:
		result = sa.UGT(sb)
	case OpUGE:
		result = sa.UGE(sb)
	case OpSLT:
		result = sa.SLT(sb)
	case OpSLE:
		result = sa.SLE(sb)
	case OpSGT:
		result = sa.SGT(sb)
	case OpSGE:
		result = sa.SGE(sb)
	}
	// a BoolResult is reified as a 1-bit SI so it composes with the rest
	// of Eval's SI-returning machinery (mirrors the source's boolean
	// expressions being themselves bitvectors of width 1).
	switch result {
	case BoolTrue:
		return FromSI(Singleton(1, 1)), nil
	case BoolFalse:
		return FromSI(Singleton(1, 0)), nil
	default:
		return FromSI(Top(1)), nil
	}
}
