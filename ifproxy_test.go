package vsa

import "testing"

func TestIfCrispConditionCollapsesImmediately(t *testing.T) {
	trueVal := Singleton(32, 1)
	falseVal := Singleton(32, 2)
	got, err := If(BoolTrue, trueVal, falseVal)
	if err != nil {
		t.Fatalf("If: unexpected error: %v", err)
	}
	if got.Kind != KindSI {
		t.Fatalf("If(True, ...): got Kind=%s, want SI (crisp condition should not wrap)", got.Kind)
	}
	si, _ := got.AsSI()
	if !si.Identical(trueVal) {
		t.Fatalf("If(True, ...): got=%s, want=%s", si, trueVal)
	}
}

func TestIfMaybeConditionWrapsInProxy(t *testing.T) {
	trueVal := Singleton(32, 1)
	falseVal := Singleton(32, 2)
	got, err := If(BoolMaybe, trueVal, falseVal)
	if err != nil {
		t.Fatalf("If: unexpected error: %v", err)
	}
	if got.Kind != KindIfProxy {
		t.Fatalf("If(Maybe, ...): got Kind=%s, want IfProxy", got.Kind)
	}
}

func TestIfProxyMinMaxUseSignedMinUnsignedMax(t *testing.T) {
	si := mustSI(t, 32, 1, 0, 0xffffffff)
	minusOne, err := si.Sub(Singleton(32, 1))
	if err != nil {
		t.Fatalf("Sub: unexpected error: %v", err)
	}
	av, err := If(BoolMaybe, si, minusOne)
	if err != nil {
		t.Fatalf("If: unexpected error: %v", err)
	}
	ifp, _ := av.AsIfProxy()
	collapsed, err := ifp.CollapseSI(DefaultPolicy)
	if err != nil {
		t.Fatalf("CollapseSI: unexpected error: %v", err)
	}
	if collapsed.Max() != 0xffffffff {
		t.Fatalf("collapsed.Max(): got=0x%x, want=0xffffffff", collapsed.Max())
	}
	if collapsed.Min() != ToSigned(32, 0x80000000) {
		t.Fatalf("collapsed.Min(): got=%d, want=%d", collapsed.Min(), ToSigned(32, 0x80000000))
	}
}

func TestIfProxyDistributesBinaryOp(t *testing.T) {
	mask0 := Singleton(32, 0)
	maskAll := Singleton(32, 0xffffffff)
	vs2 := SingleRegion(32, "global", Singleton(32, 0xfa7b00b))

	av, err := If(BoolMaybe, mask0, maskAll)
	if err != nil {
		t.Fatalf("If: unexpected error: %v", err)
	}
	result, err := FromVS(vs2).And(av, DefaultPolicy)
	if err != nil {
		t.Fatalf("And: unexpected error: %v", err)
	}
	if result.Kind != KindIfProxy {
		t.Fatalf("And(VS, IfProxy): got Kind=%s, want IfProxy", result.Kind)
	}
	ifp, _ := result.AsIfProxy()
	wantTrue := Singleton(32, 0)
	if !ifp.TrueVal.Identical(wantTrue) {
		t.Fatalf("trueVal: got=%s, want=%s (VS & 0 == 0)", ifp.TrueVal, wantTrue)
	}
}
