package vsa

import "testing"

func TestEqNegativeOneEqualsAllOnes(t *testing.T) {
	si1 := mustSI(t, 8, 0, ToUnsigned(8, -1), ToUnsigned(8, -1))
	si2 := mustSI(t, 8, 0, 0xff, 0xff)
	if si1.Eq(si2) != BoolTrue {
		t.Fatalf("Eq: got=%s, want=True", si1.Eq(si2))
	}
}

func TestNeqDistinctSingletons(t *testing.T) {
	si1 := mustSI(t, 8, 0, ToUnsigned(8, -2), ToUnsigned(8, -2))
	si2 := mustSI(t, 8, 0, 0xff, 0xff)
	if si1.Neq(si2) != BoolTrue {
		t.Fatalf("Neq: got=%s, want=True", si1.Neq(si2))
	}
}

func TestSignedVsUnsignedComparison(t *testing.T) {
	si1 := mustSI(t, 8, 1, 1, 2)
	si2 := mustSI(t, 8, 1, ToUnsigned(8, -2), ToUnsigned(8, -1))

	if si2.SLT(si1) != BoolTrue {
		t.Fatalf("SLT: got=%s, want=True ([-2,-1] < [1,2] signed)", si2.SLT(si1))
	}
	if si2.SLE(si1) != BoolTrue {
		t.Fatalf("SLE: got=%s, want=True", si2.SLE(si1))
	}
	if si2.UGT(si1) != BoolTrue {
		t.Fatalf("UGT: got=%s, want=True ([0xfe,0xff] > [1,2] unsigned)", si2.UGT(si1))
	}
	if si2.UGE(si1) != BoolTrue {
		t.Fatalf("UGE: got=%s, want=True", si2.UGE(si1))
	}
}
