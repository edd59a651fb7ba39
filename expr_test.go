package vsa

import "testing"

func TestEvalAddTree(t *testing.T) {
	tree := node{op: OpAdd, width: 32, kids: []Expr{
		Leaf{Width: 32, Value: Singleton(32, 10)},
		Leaf{Width: 32, Value: Singleton(32, 32)},
	}}
	got, err := Eval(tree, DefaultPolicy)
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	si, ok := got.AsSI()
	if !ok {
		t.Fatalf("Eval(add): got Kind=%s, want SI", got.Kind)
	}
	if !si.Identical(Singleton(32, 42)) {
		t.Fatalf("Eval(10+32): got=%s, want=42", si)
	}
}

func TestEvalCompareReifiesAsOneBitSI(t *testing.T) {
	tree := node{op: OpSLT, width: 1, kids: []Expr{
		Leaf{Width: 32, Value: Singleton(32, ToUnsigned(32, -1))},
		Leaf{Width: 32, Value: Singleton(32, 0)},
	}}
	got, err := Eval(tree, DefaultPolicy)
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	si, _ := got.AsSI()
	if !si.Identical(Singleton(1, 1)) {
		t.Fatalf("Eval(-1 SLT 0): got=%s, want=1", si)
	}
}

func TestEvalUnrecognizedOpDegradesToTop(t *testing.T) {
	tree := node{op: "__mystery__", width: 16}
	got, err := Eval(tree, DefaultPolicy)
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	si, _ := got.AsSI()
	if !si.IsTop() {
		t.Fatalf("Eval(unrecognized op): got=%s, want Top", si)
	}
}

func TestEvalIfMaybeProducesIfProxy(t *testing.T) {
	condLeaf := Leaf{Width: 32, Value: Top(32)}
	eqTree := node{op: OpEq, width: 1, kids: []Expr{condLeaf, Leaf{Width: 32, Value: Singleton(32, 0)}}}
	ifTree := node{op: OpIf, width: 1, kids: []Expr{eqTree}}
	got, err := Eval(ifTree, DefaultPolicy)
	if err != nil {
		t.Fatalf("Eval: unexpected error: %v", err)
	}
	if got.Kind != KindIfProxy {
		t.Fatalf("Eval(If over Top==0): got Kind=%s, want IfProxy", got.Kind)
	}
}

// node is a minimal test-only Expr implementation for building expression
// trees without a parser.
type node struct {
	op    string
	width uint8
	kids  []Expr
}

func (n node) OpName() string   { return n.op }
func (n node) Operands() []Expr { return n.kids }
func (n node) BitWidth() uint8  { return n.width }
