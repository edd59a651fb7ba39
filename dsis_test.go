package vsa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// cmpSIOpts allows cmp to see into StridedInterval's unexported `empty`
// field, needed because it isn't comparable via exported fields alone
// (Stride/Lower/Upper stay 0 for both Empty and a zero-valued Singleton).
var cmpSIOpts = cmp.AllowUnexported(StridedInterval{})

func TestDSISAddDistributesAndCollapses(t *testing.T) {
	val1 := mustSI(t, 32, 1, 0, 10)
	val2 := mustSI(t, 32, 1, 5, 20)
	val3 := mustSI(t, 32, 1, 20, 30)
	val4 := mustSI(t, 32, 1, 25, 35)

	r1 := NewDSIS(32, val1, val2)
	r2 := NewDSIS(32, val3, val4)

	r, err := r1.Add(r2, DefaultPolicy)
	if err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	collapsed, err := r.Collapse(DefaultPolicy)
	if err != nil {
		t.Fatalf("Collapse: unexpected error: %v", err)
	}
	want := mustSI(t, 32, 1, 20, 55)
	if !collapsed.Identical(want) {
		t.Fatalf("(r1+r2).collapse(): got=%s, want=%s", collapsed, want)
	}
}

func TestDSISSubDistributesAndCollapses(t *testing.T) {
	val1 := mustSI(t, 32, 1, 0, 10)
	val2 := mustSI(t, 32, 1, 5, 20)
	val3 := mustSI(t, 32, 1, 20, 30)
	val4 := mustSI(t, 32, 1, 25, 35)

	r1 := NewDSIS(32, val1, val2)
	r2 := NewDSIS(32, val3, val4)

	r, err := r2.Sub(r1, DefaultPolicy)
	if err != nil {
		t.Fatalf("Sub: unexpected error: %v", err)
	}
	collapsed, err := r.Collapse(DefaultPolicy)
	if err != nil {
		t.Fatalf("Collapse: unexpected error: %v", err)
	}
	want := mustSI(t, 32, 1, 0, 35)
	if !collapsed.Identical(want) {
		t.Fatalf("(r2-r1).collapse(): got=%s, want=%s", collapsed, want)
	}
}

func TestDSISInsertDeduplicatesIdenticalMembers(t *testing.T) {
	si := Singleton(32, 7)
	d := NewDSIS(32, si, si, si)
	if d.Len() != 1 {
		t.Fatalf("Len() after inserting duplicates: got=%d, want=1", d.Len())
	}
	want := []StridedInterval{si}
	if diff := cmp.Diff(want, d.Members(), cmpSIOpts); diff != "" {
		t.Fatalf("Members() mismatch (-want +got):\n%s", diff)
	}
}

func TestDSISUnionSICollapsesPastLimit(t *testing.T) {
	pol := Policy{AllowDSIS: true, DSISLimit: 2}
	d := NewDSIS(32, Singleton(32, 1), Singleton(32, 100))
	out, result, collapsed, err := d.UnionSI(Singleton(32, 1000), pol)
	if err != nil {
		t.Fatalf("UnionSI: unexpected error: %v", err)
	}
	if !collapsed {
		t.Fatalf("UnionSI past DSISLimit: collapsed=false, want true")
	}
	if out.Len() != 1 {
		t.Fatalf("collapsed set Len(): got=%d, want=1", out.Len())
	}
	if !result.Contains(1) || !result.Contains(100) || !result.Contains(1000) {
		t.Fatalf("collapsed result %s should cover all three members", result)
	}
}

func TestDSISComparisonJoinsCrossProductViaThreeValuedAND(t *testing.T) {
	val1 := mustSI(t, 32, 1, 0, 10)
	val2 := mustSI(t, 32, 1, 5, 20)
	val3 := mustSI(t, 32, 1, 20, 30)
	val4 := mustSI(t, 32, 1, 25, 35)

	r1 := NewDSIS(32, val1, val2)
	r2 := NewDSIS(32, val3, val4)

	if got := r1.ULE(r2); got != BoolTrue {
		t.Fatalf("r1.ULE(r2): got=%s, want=True", got)
	}
	if got := r1.ULT(r2); got != BoolMaybe {
		t.Fatalf("r1.ULT(r2): got=%s, want=Maybe", got)
	}
	if got := r1.UGT(r2); got != BoolFalse {
		t.Fatalf("r1.UGT(r2): got=%s, want=False", got)
	}
}

func TestDSISIntersectionDropsNonOverlappingPairs(t *testing.T) {
	d1 := NewDSIS(32, Singleton(32, 1), Singleton(32, 100))
	d2 := NewDSIS(32, Singleton(32, 100), Singleton(32, 999))

	out, err := d1.Intersection(d2, DefaultPolicy)
	if err != nil {
		t.Fatalf("Intersection: unexpected error: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("Len(): got=%d, want=1", out.Len())
	}
	want := Singleton(32, 100)
	if diff := cmp.Diff([]StridedInterval{want}, out.Members(), cmpSIOpts); diff != "" {
		t.Fatalf("Members() mismatch (-want +got):\n%s", diff)
	}
}

func TestDSISUnionSIStaysDiscreteUnderLimit(t *testing.T) {
	pol := Policy{AllowDSIS: true, DSISLimit: 10}
	d := NewDSIS(32, Singleton(32, 1))
	out, _, collapsed, err := d.UnionSI(Singleton(32, 100), pol)
	if err != nil {
		t.Fatalf("UnionSI: unexpected error: %v", err)
	}
	if collapsed {
		t.Fatalf("UnionSI under DSISLimit: collapsed=true, want false")
	}
	if out.Len() != 2 {
		t.Fatalf("Len(): got=%d, want=2", out.Len())
	}
}
