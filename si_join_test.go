package vsa

import "testing"

func TestUnionChainGrowsStrideThenCollapsesToOne(t *testing.T) {
	a := Singleton(8, 2)
	b := Singleton(8, 10)
	c := Singleton(8, 120)
	tmp1, err := a.Union(b, DefaultPolicy)
	if err != nil {
		t.Fatalf("Union: unexpected error: %v", err)
	}
	if !tmp1.Identical(mustSI(t, 8, 8, 2, 10)) {
		t.Fatalf("a.Union(b): got=%s, want=<8>8[2,10]", tmp1)
	}
	tmp2, err := tmp1.Union(c, DefaultPolicy)
	if err != nil {
		t.Fatalf("Union: unexpected error: %v", err)
	}
	if !tmp2.Identical(mustSI(t, 8, 2, 2, 120)) {
		t.Fatalf("tmp1.Union(c): got=%s, want=<8>2[2,120]", tmp2)
	}
}

func TestIntersectionOfOverlappingStrides(t *testing.T) {
	siA := mustSI(t, 32, 2, 10, 20)
	siB := mustSI(t, 32, 2, ToUnsigned(32, -100), 200)
	got, err := siA.Intersection(siB, DefaultPolicy)
	if err != nil {
		t.Fatalf("Intersection: unexpected error: %v", err)
	}
	if !got.Identical(siA) {
		t.Fatalf("Intersection: got=%s, want=%s (siA is fully inside siB)", got, siA)
	}
}

func TestIntersectionSingletonMembership(t *testing.T) {
	si1 := Singleton(32, 10)
	siA := mustSI(t, 32, 2, 10, 20)
	got, err := si1.Intersection(siA, DefaultPolicy)
	if err != nil {
		t.Fatalf("Intersection: unexpected error: %v", err)
	}
	if !got.Identical(Singleton(32, 10)) {
		t.Fatalf("Intersection: got=%s, want=10", got)
	}
}

func TestIntersectionDisjointCongruenceIsEmpty(t *testing.T) {
	siA := mustSI(t, 32, 2, 10, 20) // even numbers
	odd := mustSI(t, 32, 2, 11, 19) // odd numbers
	got, err := siA.Intersection(odd, DefaultPolicy)
	if err != nil {
		t.Fatalf("Intersection: unexpected error: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("Intersection: got=%s, want=Empty (disjoint parities)", got)
	}
}
