package vsa

import "testing"

func mustSI(t *testing.T, w uint8, stride, lower, upper uint64) StridedInterval {
	t.Helper()
	si, err := New(w, stride, lower, upper)
	if err != nil {
		t.Fatalf("New(%d,%d,%d,%d): unexpected error: %v", w, stride, lower, upper, err)
	}
	return si
}

func TestSignedUnsignedBounds(t *testing.T) {
	si := mustSI(t, 32, 1, 0, 0xffffffff)
	gotSigned := si.SignedBounds()
	wantSigned := []Segment{{Lo: 0, Hi: 0x7fffffff}, {Lo: 0x80000000, Hi: 0xffffffff}}
	if len(gotSigned) != len(wantSigned) {
		t.Fatalf("SignedBounds() len: got=%d, want=%d (%v)", len(gotSigned), len(wantSigned), gotSigned)
	}
	for i := range wantSigned {
		if gotSigned[i] != wantSigned[i] {
			t.Fatalf("SignedBounds()[%d]: got=%v, want=%v", i, gotSigned[i], wantSigned[i])
		}
	}
	gotUnsigned := si.UnsignedBounds()
	if len(gotUnsigned) != 1 || gotUnsigned[0] != (Segment{Lo: 0, Hi: 0xffffffff}) {
		t.Fatalf("UnsignedBounds(): got=%v, want=[{0 0xffffffff}]", gotUnsigned)
	}
}

func TestCanonicalSingletonForcesZeroStride(t *testing.T) {
	si := mustSI(t, 8, 5, 10, 10)
	if si.Stride != 0 {
		t.Fatalf("canonical singleton stride: got=%d, want=0", si.Stride)
	}
}

func TestContainsWrapped(t *testing.T) {
	si := mustSI(t, 8, 1, 0xfe, 0x01)
	for _, v := range []uint64{0xfe, 0xff, 0x00, 0x01} {
		if !si.Contains(v) {
			t.Fatalf("Contains(0x%x): got=false, want=true", v)
		}
	}
	if si.Contains(0x02) {
		t.Fatalf("Contains(0x02): got=true, want=false")
	}
}

func TestEvalEnumeratesInOrder(t *testing.T) {
	si := mustSI(t, 8, 2, 10, 20)
	got := si.Eval(100)
	want := []uint64{10, 12, 14, 16, 18, 20}
	if len(got) != len(want) {
		t.Fatalf("Eval len: got=%d, want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Eval()[%d]: got=0x%x, want=0x%x", i, got[i], want[i])
		}
	}
}

func TestIdenticalDistinguishesWrap(t *testing.T) {
	a := mustSI(t, 8, 1, 0xfe, 0x02)
	b := mustSI(t, 8, 1, 0x02, 0xfe)
	if a.Identical(b) {
		t.Fatalf("Identical: got=true, want=false (one wraps, the other doesn't)")
	}
}
